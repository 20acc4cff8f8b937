package set

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
)

func NewSetCmd(rt *cliutil.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration value that will be persisted in the config file.`,
		Example: heredoc.Doc(`
			# Draw bar charts by default
			$ graphkit config set chart.kind bar

			# Aggregate bins by their maximum
			$ graphkit config set chart.aggregator max

			# Poll watched files every second
			$ graphkit config set watch.interval 1s
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			if err := rt.Config.SetValue(key, value); err != nil {
				return fmt.Errorf("failed to set config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}
