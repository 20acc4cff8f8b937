package version

import (
	"github.com/spf13/cobra"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
	"github.com/wandb/wandb/graphkit/internal/version"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, and build date of graphkit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliutil.HandleOutput(cmd, map[string]any{
				"version":   version.Version,
				"gitCommit": version.GitCommit,
				"buildDate": version.BuildDate,
			})
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
