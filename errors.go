package srf

import "errors"

var (
	// ErrInvalidFormat is returned when a stream is not an SRF container
	// or its structure is corrupt.
	ErrInvalidFormat = errors.New("srf: invalid file format")

	// ErrSectionCount is returned when a container declares, or a caller
	// requests, a section count outside the range 1 to MaxSections.
	ErrSectionCount = errors.New("srf: section count out of range")

	// ErrDimensionMismatch is returned when pixel data disagrees with the
	// dimensions that are supposed to describe it.
	ErrDimensionMismatch = errors.New("srf: dimensions disagree with pixel data")

	// ErrExists is returned when an output file is already present and
	// overwriting was not requested.
	ErrExists = errors.New("srf: file already exists")
)
