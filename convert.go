package srf

import (
	"io"
	"log"
)

// Mode selects how transparency leaves the container on the way to PNG.
type Mode int

const (
	// Combined writes one PNG with the transparency in its alpha channel.
	Combined Mode = iota

	// Separate writes an opaque PNG and a grayscale mask image, white for
	// opaque and black for transparent.
	Separate
)

// Converter turns SRF files into PNG images and back. It is stateless
// apart from its options and can convert any number of files.
type Converter struct {
	opts   Options
	logger *log.Logger
}

// New returns a Converter using the given options, with package defaults
// filled in for any option left empty. A nil logger discards all progress
// output.
func New(opts Options, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Product == "" {
		opts.Product = DefaultProduct
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.PartNumber == "" {
		opts.PartNumber = DefaultPartNumber
	}
	if opts.MaskSuffix == "" {
		opts.MaskSuffix = DefaultMaskSuffix
	}
	if opts.InfoSuffix == "" {
		opts.InfoSuffix = DefaultInfoSuffix
	}

	return &Converter{
		opts:   opts,
		logger: logger,
	}
}
