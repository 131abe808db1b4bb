package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// set at build time with -ldflags
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func versionCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the build version",
		Action: func(cCtx *cli.Context) error {
			_, err := fmt.Fprintf(ui.Out, "wikidict version %s (commit: %s)\n", BuildTag, BuildCommit)
			return err
		},
	}
}
