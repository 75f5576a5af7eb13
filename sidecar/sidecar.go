/*
Package sidecar implements the info file written alongside every PNG
produced from an SRF image.

PNG cannot carry the section structure of the original container, so the
info file records it: the composite dimensions, the number of sections,
the dimensions of each section and, when the transparency went to a
separate mask image, the name of that file. The format is one "Key: Value"
pair per line. Keys may appear in any order and unknown keys are ignored.
*/
package sidecar

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxSections is the most sections an info file may describe,
	// matching the container limit.
	MaxSections = 9

	// noMask is the placeholder some tools write in place of a mask
	// filename when the transparency stayed in the main image.
	noMask = "<none>"
)

var (
	// ErrMissingField is returned when a required key is absent or its
	// value is unusable.
	ErrMissingField = errors.New("sidecar: missing field")

	// ErrSectionCount is returned when the declared section count is
	// outside the range 1 to MaxSections.
	ErrSectionCount = errors.New("sidecar: section count out of range")
)

// Dimensions records the pixel size of one section.
type Dimensions struct {
	Width  int
	Height int
}

// Record describes the layout of a converted image. It implements the
// encoding.TextMarshaler and encoding.TextUnmarshaler interfaces.
type Record struct {
	Width    int
	Height   int
	Sections []Dimensions
	MaskFile string // empty when the transparency is in the main image
}

// Consistent reports whether the composite dimensions agree with the
// recorded sections: the width must equal the widest section and the
// height the sum of all section heights.
func (rec *Record) Consistent() bool {
	var w, h int
	for _, s := range rec.Sections {
		if s.Width > w {
			w = s.Width
		}
		h += s.Height
	}
	return rec.Width == w && rec.Height == h
}

// MarshalText encodes the record into info file form and returns the
// result.
func (rec *Record) MarshalText() ([]byte, error) {
	if n := len(rec.Sections); n < 1 || n > MaxSections {
		return nil, fmt.Errorf("%w: %d", ErrSectionCount, n)
	}

	b := new(bytes.Buffer)

	fmt.Fprintf(b, "Width: %d\n", rec.Width)
	fmt.Fprintf(b, "Height: %d\n", rec.Height)
	fmt.Fprintf(b, "SectionCount: %d\n", len(rec.Sections))
	for i, s := range rec.Sections {
		fmt.Fprintf(b, "SectionWidth%d: %d\n", i+1, s.Width)
		fmt.Fprintf(b, "SectionHeight%d: %d\n", i+1, s.Height)
	}
	if rec.MaskFile != "" {
		fmt.Fprintf(b, "MaskFile: %s\n", rec.MaskFile)
	}

	return b.Bytes(), nil
}

// UnmarshalText decodes the record from info file form. Lines that do not
// look like a "Key: Value" pair are skipped.
func (rec *Record) UnmarshalText(text []byte) error {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(text), "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	width, err := intField(fields, "Width")
	if err != nil {
		return err
	}
	height, err := intField(fields, "Height")
	if err != nil {
		return err
	}

	v, ok := fields["SectionCount"]
	if !ok {
		return fmt.Errorf("%w: SectionCount", ErrMissingField)
	}
	count, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: SectionCount has unusable value %q", ErrMissingField, v)
	}
	if count < 1 || count > MaxSections {
		return fmt.Errorf("%w: %d", ErrSectionCount, count)
	}

	sections := make([]Dimensions, count)
	for i := range sections {
		w, err := intField(fields, fmt.Sprintf("SectionWidth%d", i+1))
		if err != nil {
			return err
		}
		h, err := intField(fields, fmt.Sprintf("SectionHeight%d", i+1))
		if err != nil {
			return err
		}
		sections[i] = Dimensions{Width: w, Height: h}
	}

	mask := fields["MaskFile"]
	if mask == noMask {
		mask = ""
	}

	rec.Width, rec.Height, rec.Sections, rec.MaskFile = width, height, sections, mask
	return nil
}

// intField returns the named field as a positive integer.
func intField(fields map[string]string, key string) (int, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s has unusable value %q", ErrMissingField, key, v)
	}
	return n, nil
}
