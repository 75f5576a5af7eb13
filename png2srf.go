package srf

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/srf/pixel"
	"github.com/bodgit/srf/sidecar"
)

// FromPNG rebuilds an SRF file at srfPath from base.png and its info file,
// reading the mask image named there when one was written. An existing
// output is only replaced when force is set.
func (c *Converter) FromPNG(base, srfPath string, force bool) error {
	// tolerate a base given with its extension
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".png") {
		base = base[:len(base)-len(ext)]
		c.logger.Printf("using input base %s", base)
	}

	pngName := base + ".png"
	infoName := base + c.opts.InfoSuffix

	text, err := os.ReadFile(infoName)
	if err != nil {
		return err
	}

	rec := new(sidecar.Record)
	if err := rec.UnmarshalText(text); err != nil {
		return fmt.Errorf("%s: %w", infoName, err)
	}
	if !rec.Consistent() {
		return fmt.Errorf("%w: %s disagrees with its section list", ErrDimensionMismatch, infoName)
	}

	// an extensionless destination gains the conventional extension
	if filepath.Ext(srfPath) == "" {
		srfPath += ".srf"
	}

	if err := checkTargets(force, srfPath); err != nil {
		return err
	}

	m, err := c.readImage(pngName)
	if err != nil {
		return err
	}
	if err := c.checkCovers(pngName, m, rec); err != nil {
		return err
	}

	var mask image.Image
	if rec.MaskFile != "" {
		c.logger.Printf("reading mask %s", rec.MaskFile)
		if mask, err = c.readImage(rec.MaskFile); err != nil {
			return err
		}
		if err := c.checkCovers(rec.MaskFile, mask, rec); err != nil {
			return err
		}
	}

	f := &File{
		Header: Header{
			Product:    c.opts.Product,
			Version:    c.opts.Version,
			PartNumber: c.opts.PartNumber,
		},
	}

	y := 0
	for i, d := range rec.Sections {
		c.logger.Printf("section %d: %dx%d", i+1, d.Width, d.Height)

		r := image.Rect(0, y, d.Width, y+d.Height).Add(m.Bounds().Min)
		rgb, alpha, err := pixel.Encode(m, mask, r)
		if err != nil {
			return fmt.Errorf("section %d: %w", i+1, err)
		}

		f.Sections = append(f.Sections, &Section{
			Width:  d.Width,
			Height: d.Height,
			Color:  rgb,
			Alpha:  alpha,
		})
		y += d.Height
	}

	c.logger.Printf("writing %s", srfPath)
	return writeFile(srfPath, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := Encode(bw, f); err != nil {
			return err
		}
		return bw.Flush()
	})
}

func (c *Converter) readImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// checkCovers ensures the image is at least as big as the composite the
// info file records. A larger image is tolerated and read from its
// top-left corner.
func (c *Converter) checkCovers(name string, m image.Image, rec *sidecar.Record) error {
	b := m.Bounds()
	if b.Dx() < rec.Width || b.Dy() < rec.Height {
		return fmt.Errorf("%w: %s is %dx%d, sections need %dx%d",
			ErrDimensionMismatch, name, b.Dx(), b.Dy(), rec.Width, rec.Height)
	}
	if b.Dx() > rec.Width || b.Dy() > rec.Height {
		c.logger.Printf("%s is %dx%d, using the top-left %dx%d", name, b.Dx(), b.Dy(), rec.Width, rec.Height)
	}
	return nil
}
