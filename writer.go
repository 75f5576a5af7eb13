package srf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bodgit/srf/checksum"
)

type encoder struct {
	w io.Writer
	n int // bytes written so far
}

func (e *encoder) write(b []byte) error {
	n, err := e.w.Write(b)
	e.n += n
	return err
}

func (e *encoder) writeUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return e.write(b[:])
}

func (e *encoder) writeUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return e.write(b[:])
}

func (e *encoder) writeString(s string) error {
	if err := e.writeUint32(uint32(len(s))); err != nil {
		return err
	}
	return e.write([]byte(s))
}

func (e *encoder) writeHeader(hdr Header, sections int) error {
	if err := e.write([]byte(Magic)); err != nil {
		return err
	}

	for _, v := range []uint32{4, 4, uint32(sections)} {
		if err := e.writeUint32(v); err != nil {
			return err
		}
	}

	// each identifying string is preceded by a tag word
	for i, s := range []string{hdr.Product, hdr.Version, hdr.PartNumber} {
		if err := e.writeUint32(uint32(5 + i)); err != nil {
			return err
		}
		if err := e.writeString(s); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) writeSection(s *Section) error {
	// three tag words, then height before width
	for _, v := range []uint32{0, 16, 0} {
		if err := e.writeUint32(v); err != nil {
			return err
		}
	}
	if err := e.writeUint16(uint16(s.Height)); err != nil {
		return err
	}
	if err := e.writeUint16(uint16(s.Width)); err != nil {
		return err
	}

	// bit depth and row byte count, then a pad word
	if err := e.writeUint16(0x0810); err != nil {
		return err
	}
	if err := e.writeUint16(uint16(2 * s.Width)); err != nil {
		return err
	}
	if err := e.writeUint32(0); err != nil {
		return err
	}

	if err := e.writeBlock(alphaBlockType, s.Alpha); err != nil {
		return err
	}
	return e.writeBlock(colorBlockType, s.Color)
}

func (e *encoder) writeBlock(typ int, b []byte) error {
	if err := e.writeUint32(uint32(typ)); err != nil {
		return err
	}
	if err := e.writeUint32(uint32(len(b))); err != nil {
		return err
	}
	return e.write(b)
}

// Encode writes f to w as a complete SRF file, trailing padding and check
// byte included.
func Encode(w io.Writer, f *File) error {
	if n := len(f.Sections); n < 1 || n > MaxSections {
		return fmt.Errorf("%w: %d", ErrSectionCount, n)
	}
	for i, s := range f.Sections {
		if err := s.validate(i + 1); err != nil {
			return err
		}
	}

	sum := checksum.New()
	e := &encoder{w: io.MultiWriter(w, sum)}

	if err := e.writeHeader(f.Header, len(f.Sections)); err != nil {
		return err
	}
	for _, s := range f.Sections {
		if err := e.writeSection(s); err != nil {
			return err
		}
	}

	// pad to one byte short of a 256-byte boundary, then close with the
	// byte that brings the whole file sum to zero
	if err := e.write(bytes.Repeat([]byte{0xff}, 255-e.n%256)); err != nil {
		return err
	}
	return e.write([]byte{sum.CheckByte()})
}
