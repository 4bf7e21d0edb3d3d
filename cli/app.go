// Package cli contains the jpl2vector command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// Flags.
const (
	debugFlag      = "debug"
	configFlag     = "config"
	tiepointsFlag  = "tiepoints"
	navigationFlag = "navigation"
	imagesFlag     = "images"
	vicarFlag      = "vicar"
	outputDirFlag  = "output-dir"
	tracksFlag     = "tracks-file"
	camerasFlag    = "cameras-file"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "jpl2vector",
		Usage:           "convert JPL tiepoint and navigation output into VECTOR documents",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "write tracks.xml and cameras.xml from a navigation run",
				UsageText: "jpl2vector convert -t <tiepoints> -n <navigation> -i <images> [-v <labels>] [other options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    configFlag,
						Aliases: []string{"c"},
						Usage:   "load configuration from `FILE`; flags override its values",
					},
					&cli.PathFlag{
						Name:    tiepointsFlag,
						Aliases: []string{"t"},
						Usage:   "tiepoint XML document",
					},
					&cli.PathFlag{
						Name:    navigationFlag,
						Aliases: []string{"n"},
						Usage:   "navigation XML document",
					},
					&cli.PathFlag{
						Name:    imagesFlag,
						Aliases: []string{"i"},
						Usage:   "directory searched recursively for images",
					},
					&cli.PathFlag{
						Name:    vicarFlag,
						Aliases: []string{"v", "labels"},
						Usage:   "directory searched recursively for VICAR label files; without it cameras have no transforms",
					},
					&cli.PathFlag{
						Name:    outputDirFlag,
						Aliases: []string{"o"},
						Usage:   "directory the documents are written to (default: current directory)",
					},
					&cli.StringFlag{
						Name:  tracksFlag,
						Usage: "name of the track document (default: tracks.xml)",
					},
					&cli.StringFlag{
						Name:  camerasFlag,
						Usage: "name of the camera document (default: cameras.xml)",
					},
				},
				Action: ConvertAction,
			},
			{
				Name:      "inspect",
				Usage:     "summarize a VECTOR track or camera document",
				ArgsUsage: "<file>",
				Action:    InspectAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: VersionAction,
			},
		},
	}
}
