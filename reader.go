package srf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxString bounds the length prefix of a header string; real files store
// short ASCII identifiers.
const maxString = 256

type decoder struct {
	r io.Reader

	header   Header
	sections []*Section
}

func (d *decoder) read(b []byte) error {
	_, err := io.ReadFull(d.r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (d *decoder) readUint16() (uint16, error) {
	var b [2]byte
	if err := d.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (d *decoder) readUint32() (uint32, error) {
	var b [4]byte
	if err := d.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUint32()
	if err != nil {
		return "", err
	}
	if n > maxString {
		return "", fmt.Errorf("%w: string length %d", ErrInvalidFormat, n)
	}
	b := make([]byte, n)
	if err := d.read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) skip(n int64) error {
	if _, err := io.CopyN(io.Discard, d.r, n); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func (d *decoder) readHeader() (int, error) {
	magic := make([]byte, len(Magic))
	if err := d.read(magic); err != nil {
		return 0, err
	}
	if string(magic) != Magic {
		return 0, fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, magic)
	}

	// two tag words precede the section count
	if err := d.skip(8); err != nil {
		return 0, err
	}

	count, err := d.readUint32()
	if err != nil {
		return 0, err
	}
	if count < 1 || count > MaxSections {
		return 0, fmt.Errorf("%w: %d", ErrSectionCount, count)
	}

	// each identifying string is preceded by a tag word
	for _, s := range []*string{&d.header.Product, &d.header.Version, &d.header.PartNumber} {
		if err := d.skip(4); err != nil {
			return 0, err
		}
		if *s, err = d.readString(); err != nil {
			return 0, err
		}
	}

	return int(count), nil
}

func (d *decoder) readBlock(typ, length int, configOnly bool) ([]byte, error) {
	t, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if int(t) != typ {
		return nil, fmt.Errorf("%w: block type %d, want %d", ErrInvalidFormat, t, typ)
	}

	n, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if int(n) != length {
		return nil, fmt.Errorf("%w: block length %d, want %d", ErrInvalidFormat, n, length)
	}

	if configOnly {
		return nil, d.skip(int64(length))
	}

	b := make([]byte, length)
	if err := d.read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *decoder) readSection(configOnly bool) (*Section, error) {
	// three tag words, then height before width
	if err := d.skip(12); err != nil {
		return nil, err
	}

	h, err := d.readUint16()
	if err != nil {
		return nil, err
	}
	w, err := d.readUint16()
	if err != nil {
		return nil, err
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d section", ErrInvalidFormat, w, h)
	}

	// bit depth, row byte count and a pad word; all derivable from the
	// dimensions
	if err := d.skip(8); err != nil {
		return nil, err
	}

	s := &Section{Width: int(w), Height: int(h)}

	n := int(w) * int(h)
	if s.Alpha, err = d.readBlock(alphaBlockType, n, configOnly); err != nil {
		return nil, err
	}
	if s.Color, err = d.readBlock(colorBlockType, 2*n, configOnly); err != nil {
		return nil, err
	}

	return s, nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	count, err := d.readHeader()
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: truncated header", ErrInvalidFormat)
		}
		return err
	}

	d.sections = make([]*Section, count)
	for i := range d.sections {
		s, err := d.readSection(configOnly)
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = fmt.Errorf("%w: truncated", ErrInvalidFormat)
			}
			return fmt.Errorf("section %d: %w", i+1, err)
		}
		d.sections[i] = s
	}

	return nil
}

// Decode reads an SRF container from r. Anything after the last declared
// section, including the checksummed trailer, is left unread.
func Decode(r io.Reader) (*File, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &File{Header: d.header, Sections: d.sections}, nil
}

// Dimensions is the pixel size of one section.
type Dimensions struct {
	Width  int
	Height int
}

// Config describes a container without its pixel data.
type Config struct {
	Header   Header
	Width    int
	Height   int
	Sections []Dimensions
}

// DecodeConfig returns the header, section layout and composite dimensions
// of a container without keeping any pixel data in memory.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Config{}, err
	}

	cfg := Config{Header: d.header, Sections: make([]Dimensions, len(d.sections))}
	for i, s := range d.sections {
		cfg.Sections[i] = Dimensions{Width: s.Width, Height: s.Height}
		if s.Width > cfg.Width {
			cfg.Width = s.Width
		}
		cfg.Height += s.Height
	}
	return cfg, nil
}
