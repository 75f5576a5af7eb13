/*
Package srf reads and writes the bitmap container used by Garmin GPS
devices for vehicle icons and splash screens, and converts its contents to
and from ordinary PNG files.

An SRF file is a short header followed by between one and nine image
sections. The header carries the section count and three length-prefixed
strings identifying the product the file ships with. Each section is an
independent image: a 40-byte section header with the pixel dimensions, a
plane of one transparency byte per pixel and a plane of one little-endian
RGB565 value per pixel. The file is padded with 0xFF bytes to one short of
a 256-byte boundary and closed with a check byte that brings the byte sum
of the whole file to zero modulo 256.

On the way to PNG the sections are stacked vertically into one composite
image, as wide as the widest section and as tall as all sections together,
and an info file records the section layout so the container can be
rebuilt. The transparency either stays in the alpha channel of the
composite or goes to a separate grayscale mask image.
*/
package srf

import (
	"fmt"
	"image"
)

const (
	// Magic identifies an SRF stream.
	Magic = "GARMIN BITMAP 01"

	// MaxSections is the most image sections a file may declare.
	MaxSections = 9
)

// Defaults written into the header of a freshly built file.
const (
	DefaultProduct    = "578"
	DefaultVersion    = "1.00"
	DefaultPartNumber = "006-D0578-XX"
)

// Type tags of the two pixel blocks inside a section.
const (
	alphaBlockType = 11
	colorBlockType = 1
)

// Header identifies the product an SRF file belongs to. The strings do not
// affect how the pixel data is interpreted; Decode and Encode carry them
// verbatim.
type Header struct {
	Product    string
	Version    string
	PartNumber string
}

// Section is one image inside a container.
type Section struct {
	Width  int
	Height int
	Color  []byte // Width*Height little-endian RGB565 values
	Alpha  []byte // one transparency byte per pixel
}

// validate checks that the dimensions fit the wire format and that the
// pixel buffers cover them. Width is capped at 32767 so the row byte count
// fits in its 16-bit field.
func (s *Section) validate(i int) error {
	if s.Width < 1 || s.Width > 0x7fff || s.Height < 1 || s.Height > 0xffff {
		return fmt.Errorf("%w: section %d is %dx%d", ErrDimensionMismatch, i, s.Width, s.Height)
	}
	if n := s.Width * s.Height; len(s.Color) != 2*n || len(s.Alpha) != n {
		return fmt.Errorf("%w: section %d has %d color and %d alpha bytes for %dx%d",
			ErrDimensionMismatch, i, len(s.Color), len(s.Alpha), s.Width, s.Height)
	}
	return nil
}

// File is a parsed container.
type File struct {
	Header   Header
	Sections []*Section
}

// Bounds returns the dimensions of the composite image the sections stack
// into: as wide as the widest section, as tall as all sections together.
func (f *File) Bounds() image.Rectangle {
	var w, h int
	for _, s := range f.Sections {
		if s.Width > w {
			w = s.Width
		}
		h += s.Height
	}
	return image.Rect(0, 0, w, h)
}
