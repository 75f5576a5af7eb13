package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/bodgit/srf"
	"github.com/bodgit/srf/checksum"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

type sectionInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type fileInfo struct {
	File       string        `json:"file"`
	Product    string        `json:"product"`
	Version    string        `json:"version"`
	PartNumber string        `json:"part_number"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Sections   []sectionInfo `json:"sections"`
	Size       int64         `json:"size_bytes"`
	Checksum   bool          `json:"checksum_ok"`
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "srfinfo"
	app.Usage = "describe a Garmin SRF image"
	app.ArgsUsage = "SRF"
	app.Version = "1.0.0"
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "print machine-readable output",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		path := c.Args().First()

		data, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(err, 1)
		}

		cfg, err := srf.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return cli.Exit(err, 1)
		}

		info := fileInfo{
			File:       path,
			Product:    cfg.Header.Product,
			Version:    cfg.Header.Version,
			PartNumber: cfg.Header.PartNumber,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Size:       int64(len(data)),
			Checksum:   checksum.Valid(data),
		}
		for _, s := range cfg.Sections {
			info.Sections = append(info.Sections, sectionInfo{Width: s.Width, Height: s.Height})
		}

		if c.Bool("json") {
			b, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Println(string(b))
			return nil
		}

		fmt.Printf("File: %s\n", info.File)
		fmt.Printf("Product: %s\n", info.Product)
		fmt.Printf("Version: %s\n", info.Version)
		fmt.Printf("Part number: %s\n", info.PartNumber)
		fmt.Printf("Composite: %dx%d\n", info.Width, info.Height)
		fmt.Printf("Sections: %d\n", len(info.Sections))
		for i, s := range info.Sections {
			fmt.Printf("  %d: %dx%d\n", i+1, s.Width, s.Height)
		}
		fmt.Printf("Size: %d bytes\n", info.Size)
		if info.Checksum {
			fmt.Println("Checksum: ok")
		} else {
			fmt.Println("Checksum: bad")
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
