package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/config"
	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/render"
	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/version"
	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/view"
	"github.com/wandb/wandb/graphkit/internal/cliutil"
)

// NewRootCmd builds the graphkit command tree. A nil fs uses the OS file
// system.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	rt := cliutil.NewRuntime(fs)

	cmd := &cobra.Command{
		Use:   "graphkit <command>",
		Short: "Bar and line charts for numeric samples",
		Long:  `Plot numeric samples from text, CSV, JSONL or YAML files in the terminal or as PNG images.`,
		Example: heredoc.Doc(`
			# Explore a file interactively
			$ graphkit view latency.csv --column p99

			# Render a bar chart to an image
			$ graphkit render latency.txt --kind bar -o latency.png
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rt.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(view.NewViewCmd(rt))
	cmd.AddCommand(render.NewRenderCmd(rt))
	cmd.AddCommand(config.NewConfigCmd(rt))
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
