package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/imgcanvas"
	"github.com/wandb/wandb/graphkit/internal/samplesource"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

type renderOptions struct {
	output   string
	zoom     string
	theme    string
	loadOpts samplesource.Options
}

func NewRenderCmd(rt *cliutil.Runtime) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render samples to a PNG image",
		Example: heredoc.Doc(`
			# Render a line chart next to the input
			$ graphkit render samples.txt

			# Render the first 25 samples as bars, 1200 pixels wide
			$ graphkit render samples.yaml --kind bar --zoom 2x --width 1200 -o bars.png
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer rt.Logger.Reraise()

			bindings := map[string]string{
				config.KeyChartKind:    "kind",
				config.KeyRenderWidth:  "width",
				config.KeyRenderHeight: "height",
			}
			for key, flag := range bindings {
				if err := rt.Config.BindFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return runRender(cmd, rt, args[0], opts)
		},
	}

	cmd.Flags().String("kind", config.KindLine, "chart kind: bar or line")
	cmd.Flags().Int("width", 800, "image width in pixels")
	cmd.Flags().Int("height", 400, "image height in pixels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default is the input name with a .png extension)")
	cmd.Flags().StringVar(&opts.zoom, "zoom", "1", "zoom, e.g. 2x or full")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the configured theme: dark or light")
	cmd.Flags().StringVar(&opts.loadOpts.Column, "column", "", "CSV column to plot")
	cmd.Flags().StringVar(&opts.loadOpts.Field, "field", "", "JSONL object field to plot (default \"value\")")

	return cmd
}

func runRender(cmd *cobra.Command, rt *cliutil.Runtime, path string, opts renderOptions) error {
	z, err := zoom.Parse(opts.zoom)
	if err != nil {
		return err
	}

	theme, err := rt.Config.Theme()
	if err != nil {
		return err
	}
	if opts.theme != "" {
		t, ok := graph.ThemeByName(opts.theme)
		if !ok {
			return fmt.Errorf("unknown theme %q", opts.theme)
		}
		theme = t
	}

	graphOpts, err := rt.Config.GraphOptions()
	if err != nil {
		return err
	}
	graphOpts = append(graphOpts, graph.WithLabelFormatter(graph.DefaultLabels{Title: filepath.Base(path)}))

	samples, err := samplesource.NewLoader(rt.Fs, opts.loadOpts).Load(path)
	if err != nil {
		return err
	}

	chart, err := cliutil.NewChart(rt.Config.Chart().Kind, samples, graphOpts...)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	if err := rt.Fs.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := rt.Fs.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer file.Close()

	z = z.Clamp(chart.ZoomLimits())
	size := rt.Config.Render()
	renderer := imgcanvas.NewRenderer(nil)
	if err := renderer.RenderChart(file, chart, graph.NewState(z), theme, size.Width, size.Height); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	rt.Logger.Info("render: wrote image", "path", output, "samples", len(samples), "zoom", z.String())
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s at zoom %s\n", output, z)
	return nil
}
