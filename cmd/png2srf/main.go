package main

import (
	_ "image/gif"
	_ "image/jpeg"
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

	app.Name = "png2srf"
	app.Usage = "build a Garmin SRF image from PNG"
	app.ArgsUsage = "PNGBASE SRF"
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
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "overwrite an existing output file",
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

		conv := srf.New(opts, logger)
		if err := conv.FromPNG(c.Args().Get(0), c.Args().Get(1), c.Bool("force")); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
