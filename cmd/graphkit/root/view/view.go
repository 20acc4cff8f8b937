package view

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/samplesource"
	"github.com/wandb/wandb/graphkit/internal/termcanvas"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

type viewOptions struct {
	watch    bool
	zoom     string
	theme    string
	loadOpts samplesource.Options
}

func NewViewCmd(rt *cliutil.Runtime) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Show samples as an interactive chart",
		Long: heredoc.Doc(`
			Show the samples in a file as a chart in the terminal.

			Hover a bar or point to highlight it, click to select it and use
			the mouse wheel or +/- to zoom. 0 resets the zoom and f shows
			every sample.
		`),
		Example: heredoc.Doc(`
			# Plot a whitespace-separated list of numbers
			$ graphkit view samples.txt

			# Plot one CSV column as bars and redraw when the file changes
			$ graphkit view metrics.csv --column loss --kind bar --watch
		`),
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{cliutil.AnnotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer rt.Logger.Reraise()

			if err := rt.Config.BindFlag(config.KeyChartKind, cmd.Flags().Lookup("kind")); err != nil {
				return err
			}
			return runView(cmd, rt, args[0], opts)
		},
	}

	cmd.Flags().String("kind", config.KindLine, "chart kind: bar or line")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the chart when the file changes")
	cmd.Flags().StringVar(&opts.zoom, "zoom", "1", "initial zoom, e.g. 2x or full")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the configured theme: dark or light")
	cmd.Flags().StringVar(&opts.loadOpts.Column, "column", "", "CSV column to plot")
	cmd.Flags().StringVar(&opts.loadOpts.Field, "field", "", "JSONL object field to plot (default \"value\")")

	return cmd
}

func runView(cmd *cobra.Command, rt *cliutil.Runtime, path string, opts viewOptions) error {
	initialZoom, err := zoom.Parse(opts.zoom)
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
	graphOpts = append(graphOpts, termcanvas.GraphOptions()...)

	loader := samplesource.NewLoader(rt.Fs, opts.loadOpts)
	samples, err := loader.Load(path)
	if err != nil {
		return err
	}
	rt.Logger.Info("view: loaded samples", "path", path, "count", len(samples))

	chart, err := cliutil.NewChart(rt.Config.Chart().Kind, samples, graphOpts...)
	if err != nil {
		return err
	}

	msgs := make(chan tea.Msg, 16)
	done := make(chan struct{})
	send := func(msg tea.Msg) {
		select {
		case msgs <- msg:
		case <-done:
		}
	}

	model := termcanvas.NewModel(termcanvas.ModelParams{
		Chart:    chart,
		Theme:    theme,
		Title:    filepath.Base(path),
		Zoom:     initialZoom,
		Samples:  len(samples),
		Messages: msgs,
		Logger:   rt.Logger,
	})
	defer model.Close()

	var watcher *samplesource.Watcher
	if opts.watch {
		watcher = samplesource.NewWatcher(samplesource.WatcherParams{
			Logger:        rt.Logger,
			PollingPeriod: rt.Config.WatchInterval(),
		})
		err := watcher.Watch(path, func() {
			reloaded, err := loader.Load(path)
			if err != nil {
				send(termcanvas.ErrorMsg{Err: err})
				return
			}
			send(termcanvas.ReloadMsg{
				Apply: func() { chart.SetSamples(slices.Values(reloaded)) },
				Count: len(reloaded),
			})
		})
		if err != nil {
			watcher.Finish()
			return err
		}
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err = program.Run()

	close(done)
	if watcher != nil {
		watcher.Finish()
	}

	if err != nil {
		rt.Logger.Error(fmt.Sprintf("view: program error: %v", err))
		return err
	}
	return nil
}
