package main

import (
	"os"

	"github.com/idilsaglam/activitycal/internal/cli"
	"github.com/idilsaglam/activitycal/internal/ui"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(cli.GetExitCode(err))
	}
}
