package main

import (
	"os"

	"github.com/wandb/wandb/graphkit/cmd/graphkit/root"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	cmd := root.NewRootCmd(nil)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
