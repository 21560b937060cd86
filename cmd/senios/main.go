// Command senios is a media shell for seniors: watch videos, view
// photos and create blank cards.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "senios",
		Usage:   l10n.T("Watch videos, view photos and create cards"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
				EnvVars: []string{"SENIOS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: l10n.T("Video decoding backend (reisen or ffmpeg)"),
			},
			&cli.StringFlag{
				Name:  "ffmpeg-path",
				Usage: l10n.T("Path to the ffmpeg binary"),
			},
			&cli.StringFlag{
				Name:  "media-dir",
				Usage: l10n.T("Directory listed when choosing videos and photos"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: l10n.T("Log level (debug, info, warn, error)"),
			},
		},
		Action: runGUI,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  l10n.T("Open the SeniOS window (default)"),
				Action: runGUI,
			},
			{
				Name:      "play",
				Usage:     l10n.T("Play a video without a window"),
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "snapshot-every",
						Usage: l10n.T("Write a PNG snapshot every N frames (0 = never)"),
					},
					&cli.StringFlag{
						Name:  "snapshot-dir",
						Value: ".",
						Usage: l10n.T("Directory for snapshots"),
					},
				},
				Action: runPlay,
			},
			{
				Name:      "probe",
				Usage:     l10n.T("Print the dimensions of a video"),
				ArgsUsage: "FILE",
				Action:    runProbe,
			},
			{
				Name:      "card",
				Usage:     l10n.T("Write a blank card (.png or .jpg)"),
				ArgsUsage: "OUT",
				Action:    runCard,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}
