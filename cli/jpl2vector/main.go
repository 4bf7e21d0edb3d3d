// Package main is the jpl2vector command itself.
package main

import (
	"os"

	goutils "go.viam.com/utils"

	"github.com/nasa-ammos/vector-convert/cli"
	"github.com/nasa-ammos/vector-convert/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger := logging.NewLogger(app.Name, os.Stderr)
		logger.Errorw("command failed", "error", err)
		goutils.UncheckedError(logger.Sync())
		os.Exit(1)
	}
}
