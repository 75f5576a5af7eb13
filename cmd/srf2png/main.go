package main

import (
	"io"
	"log"
	"os"

	"github.com/bodgit/srf"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "srf2png"
	app.Usage = "convert a Garmin SRF image to PNG"
	app.ArgsUsage = "SRF PNGBASE"
	app.Version = "1.0.0"
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"SRF_CONFIG"},
			Value:   srf.OptionsPath(),
			Usage:   "path to options file",
		},
		&cli.BoolFlag{
			Name:    "mask",
			Aliases: []string{"m"},
			Usage:   "write the transparency to a separate mask image",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "overwrite existing output files",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		opts, err := srf.LoadOptions(c.String("config"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		mode := srf.Combined
		if c.Bool("mask") {
			mode = srf.Separate
		}

		conv := srf.New(opts, logger)
		if err := conv.ToPNG(c.Args().Get(0), c.Args().Get(1), mode, c.Bool("force")); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
