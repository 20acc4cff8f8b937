package show

import (
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
)

func NewShowCmd(rt *cliutil.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show every setting after applying the config file and GRAPHKIT_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliutil.HandleOutput(cmd, rt.Config.All())
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
