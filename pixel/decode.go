package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
)

func checkPlane(w, h, got, bpp int, plane string) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: %dx%d", ErrDimension, w, h)
	}
	if want := w * h * bpp; got != want {
		return fmt.Errorf("%w: %d %s bytes for %dx%d, want %d", ErrDimension, got, plane, w, h, want)
	}
	return nil
}

// Decode expands a section's color and alpha planes into a single
// non-premultiplied RGBA image.
func Decode(w, h int, rgb, alpha []byte) (*image.NRGBA, error) {
	if err := checkPlane(w, h, len(rgb), 2, "color"); err != nil {
		return nil, err
	}
	if err := checkPlane(w, h, len(alpha), 1, "alpha"); err != nil {
		return nil, err
	}

	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		r, g, b := DecodeColor(binary.LittleEndian.Uint16(rgb[2*i:]))
		m.Pix[4*i+0] = r
		m.Pix[4*i+1] = g
		m.Pix[4*i+2] = b
		m.Pix[4*i+3] = DecodeAlpha(alpha[i])
	}
	return m, nil
}

// DecodeRGB expands only the color plane, producing a fully opaque image.
func DecodeRGB(w, h int, rgb []byte) (*image.NRGBA, error) {
	if err := checkPlane(w, h, len(rgb), 2, "color"); err != nil {
		return nil, err
	}

	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		r, g, b := DecodeColor(binary.LittleEndian.Uint16(rgb[2*i:]))
		m.Pix[4*i+0] = r
		m.Pix[4*i+1] = g
		m.Pix[4*i+2] = b
		m.Pix[4*i+3] = 0xff
	}
	return m, nil
}

// DecodeMask expands only the alpha plane into a grayscale image, white for
// opaque and black for transparent.
func DecodeMask(w, h int, alpha []byte) (*image.Gray, error) {
	if err := checkPlane(w, h, len(alpha), 1, "alpha"); err != nil {
		return nil, err
	}

	m := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range alpha {
		m.Pix[i] = DecodeAlpha(v)
	}
	return m, nil
}
