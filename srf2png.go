package srf

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/srf/pixel"
	"github.com/bodgit/srf/sidecar"
)

// ToPNG converts the SRF file at srfPath into a PNG image named base.png
// plus an info file recording the section layout. In Separate mode the
// transparency goes to an extra grayscale mask image instead of the alpha
// channel of the PNG. Existing outputs are only replaced when force is
// set.
func (c *Converter) ToPNG(srfPath, base string, mode Mode, force bool) error {
	// tolerate a base given with the extension it will gain anyway
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".png") {
		base = base[:len(base)-len(ext)]
		c.logger.Printf("using output base %s", base)
	}

	// tolerate a missing .srf extension if only the full name exists
	if filepath.Ext(srfPath) == "" {
		if _, err := os.Stat(srfPath); errors.Is(err, os.ErrNotExist) {
			if _, err := os.Stat(srfPath + ".srf"); err == nil {
				srfPath += ".srf"
				c.logger.Printf("reading %s", srfPath)
			}
		}
	}

	pngName := base + ".png"
	maskName := base + c.opts.MaskSuffix + ".png"
	infoName := base + c.opts.InfoSuffix

	targets := []string{pngName, infoName}
	if mode == Separate {
		targets = []string{pngName, maskName, infoName}
	}
	if err := checkTargets(force, targets...); err != nil {
		return err
	}

	in, err := os.Open(srfPath)
	if err != nil {
		return err
	}
	defer in.Close()

	f, err := Decode(bufio.NewReader(in))
	if err != nil {
		return fmt.Errorf("%s: %w", srfPath, err)
	}

	c.logger.Printf("%s: version %s, product %s, part %s, %d sections",
		srfPath, f.Header.Version, f.Header.Product, f.Header.PartNumber, len(f.Sections))

	bounds := f.Bounds()
	rec := &sidecar.Record{Width: bounds.Dx(), Height: bounds.Dy()}
	for _, s := range f.Sections {
		rec.Sections = append(rec.Sections, sidecar.Dimensions{Width: s.Width, Height: s.Height})
	}

	canvas := image.NewNRGBA(bounds)

	// sections narrower than the composite leave a margin; combined mode
	// keeps it transparent, separate mode makes it opaque black
	var mask *image.Gray
	if mode == Separate {
		rec.MaskFile = maskName
		draw.Draw(canvas, bounds, image.Black, image.Point{}, draw.Src)
		mask = image.NewGray(bounds)
	}

	y := 0
	for i, s := range f.Sections {
		c.logger.Printf("section %d: %dx%d", i+1, s.Width, s.Height)

		r := image.Rect(0, y, s.Width, y+s.Height)
		if mask != nil {
			m, err := pixel.DecodeRGB(s.Width, s.Height, s.Color)
			if err != nil {
				return fmt.Errorf("section %d: %w", i+1, err)
			}
			g, err := pixel.DecodeMask(s.Width, s.Height, s.Alpha)
			if err != nil {
				return fmt.Errorf("section %d: %w", i+1, err)
			}
			draw.Draw(canvas, r, m, image.Point{}, draw.Src)
			draw.Draw(mask, r, g, image.Point{}, draw.Src)
		} else {
			m, err := pixel.Decode(s.Width, s.Height, s.Color, s.Alpha)
			if err != nil {
				return fmt.Errorf("section %d: %w", i+1, err)
			}
			draw.Draw(canvas, r, m, image.Point{}, draw.Src)
		}
		y += s.Height
	}

	if err := c.writePNG(pngName, canvas); err != nil {
		return err
	}
	if mask != nil {
		if err := c.writePNG(maskName, mask); err != nil {
			return err
		}
	}
	return c.writeInfo(infoName, rec)
}
