package srf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/srf/checksum"
)

func testSection(w, h int, seed byte) *Section {
	s := &Section{
		Width:  w,
		Height: h,
		Color:  make([]byte, 2*w*h),
		Alpha:  make([]byte, w*h),
	}
	for i := range s.Color {
		s.Color[i] = seed + byte(i)
	}
	for i := range s.Alpha {
		s.Alpha[i] = seed ^ byte(i)
	}
	return s
}

func testFile() *File {
	return &File{
		Header: Header{
			Product:    DefaultProduct,
			Version:    DefaultVersion,
			PartNumber: DefaultPartNumber,
		},
		Sections: []*Section{
			testSection(16, 8, 1),
			testSection(8, 4, 2),
			testSection(12, 10, 3),
		},
	}
}

// payloadLen is the encoded size of f before trailing padding.
func payloadLen(f *File) int {
	n := 52 + len(f.Header.Product) + len(f.Header.Version) + len(f.Header.PartNumber)
	for _, s := range f.Sections {
		n += 40 + 3*s.Width*s.Height
	}
	return n
}

func encode(t *testing.T, f *File) []byte {
	t.Helper()

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, f))
	return b.Bytes()
}

func TestRoundTrip(t *testing.T) {
	f := testFile()
	b := encode(t, f)

	assert.Equal(t, (payloadLen(f)/256+1)*256, len(b))
	assert.True(t, checksum.Valid(b))

	g, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, f, g)
}

func TestEncodeWireFormat(t *testing.T) {
	f := &File{
		Header:   Header{Product: "578", Version: "1.00", PartNumber: "006-D0578-XX"},
		Sections: []*Section{{Width: 1, Height: 1, Color: []byte{0xbb, 0xcc}, Alpha: []byte{0xaa}}},
	}
	b := encode(t, f)

	var want []byte
	want = append(want, Magic...)
	want = append(want,
		4, 0, 0, 0,
		4, 0, 0, 0,
		1, 0, 0, 0, // section count
		5, 0, 0, 0, 3, 0, 0, 0, '5', '7', '8',
		6, 0, 0, 0, 4, 0, 0, 0, '1', '.', '0', '0',
		7, 0, 0, 0, 12, 0, 0, 0,
	)
	want = append(want, "006-D0578-XX"...)
	want = append(want,
		0, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0,
		1, 0, // height
		1, 0, // width
		0x10, 0x08, // bit depth
		2, 0, // row bytes
		0, 0, 0, 0,
		11, 0, 0, 0, 1, 0, 0, 0, 0xaa, // alpha block
		1, 0, 0, 0, 2, 0, 0, 0, 0xbb, 0xcc, // color block
	)

	require.Greater(t, len(b), len(want))
	assert.Equal(t, want, b[:len(want)])

	// everything after the payload is 0xFF padding and the check byte
	for _, v := range b[len(want) : len(b)-1] {
		require.Equal(t, byte(0xff), v)
	}
	assert.True(t, checksum.Valid(b))
}

func TestEncodeSectionCount(t *testing.T) {
	b := new(bytes.Buffer)

	err := Encode(b, &File{})
	assert.ErrorIs(t, err, ErrSectionCount)

	err = Encode(b, &File{Sections: make([]*Section, MaxSections+1)})
	assert.ErrorIs(t, err, ErrSectionCount)
}

func TestEncodeDimensionMismatch(t *testing.T) {
	b := new(bytes.Buffer)

	s := testSection(4, 4, 0)
	s.Color = s.Color[:10]
	err := Encode(b, &File{Sections: []*Section{s}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = Encode(b, &File{Sections: []*Section{{Width: 40000, Height: 1, Color: make([]byte, 80000), Alpha: make([]byte, 40000)}}})
	assert.ErrorIs(t, err, ErrDimensionMismatch, "width must fit the row byte field")
}

func TestDecodeBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("GARMIN BITMAP 02")))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeTruncated(t *testing.T) {
	f := testFile()
	b := encode(t, f)

	_, err := Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidFormat, "empty stream")

	_, err = Decode(bytes.NewReader(b[:30]))
	assert.ErrorIs(t, err, ErrInvalidFormat, "truncated header")

	_, err = Decode(bytes.NewReader(b[:payloadLen(f)-1]))
	assert.ErrorIs(t, err, ErrInvalidFormat, "truncated section")
}

func TestDecodeSectionCount(t *testing.T) {
	b := encode(t, testFile())

	for _, count := range []byte{0, 10} {
		dup := append([]byte{}, b...)
		dup[24] = count
		_, err := Decode(bytes.NewReader(dup))
		assert.ErrorIs(t, err, ErrSectionCount, "count %d", count)
	}
}

func TestDecodeBadBlock(t *testing.T) {
	f := testFile()
	b := encode(t, f)
	header := 52 + len(f.Header.Product) + len(f.Header.Version) + len(f.Header.PartNumber)

	// corrupt the alpha block type of the first section
	dup := append([]byte{}, b...)
	dup[header+24] = 12
	_, err := Decode(bytes.NewReader(dup))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// corrupt the alpha block length of the first section
	dup = append([]byte{}, b...)
	dup[header+28]++
	_, err = Decode(bytes.NewReader(dup))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeIgnoresTrailer(t *testing.T) {
	b := encode(t, testFile())

	// anything after the last section, valid trailer or not, is unread
	_, err := Decode(bytes.NewReader(append(b, "garbage"...)))
	assert.NoError(t, err)
}

func TestDecodeConfig(t *testing.T) {
	f := testFile()
	b := encode(t, f)

	cfg, err := DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)

	assert.Equal(t, f.Header, cfg.Header)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 22, cfg.Height)
	require.Len(t, cfg.Sections, 3)
	assert.Equal(t, Dimensions{Width: 8, Height: 4}, cfg.Sections[1])
}

func TestBounds(t *testing.T) {
	f := testFile()
	b := f.Bounds()
	assert.Equal(t, 16, b.Dx())
	assert.Equal(t, 22, b.Dy())
}
