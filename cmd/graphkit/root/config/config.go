package config

import (
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/config/set"
	"github.com/wandb/wandb/graphkit/cmd/graphkit/root/config/show"
	"github.com/wandb/wandb/graphkit/internal/cliutil"
)

func NewConfigCmd(rt *cliutil.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Configuration commands",
		Long:  `Commands for managing the graphkit configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(set.NewSetCmd(rt))
	cmd.AddCommand(show.NewShowCmd(rt))

	return cmd
}
