/*
Package pixel converts between the packed per-pixel encoding used inside
SRF image sections and the standard image types.

A section stores two planes for a width by height pixel grid: one
transparency byte per pixel followed by one little-endian 16-bit RGB565
value per pixel. The transparency byte is an inverted opacity at half
resolution; 0 is fully opaque and anything from 127 up is fully
transparent, with 128 the canonical stored value. Expanding a plane to
eight bits per channel and packing it again reproduces every byte the
encoder can emit; the few transparency values it never writes collapse
to 128.
*/
package pixel

import "errors"

// ErrDimension is returned when a pixel buffer disagrees with the
// dimensions it is supposed to cover.
var ErrDimension = errors.New("pixel: buffer disagrees with dimensions")

// DecodeColor expands a packed RGB565 value to its 8-bit channels. Color is
// packed as RRRRRGGGGGGBBBBB so the low three bits of red and blue and the
// low two bits of green are always zero.
func DecodeColor(v uint16) (r, g, b uint8) {
	r = uint8(v>>11) << 3
	g = uint8(v>>5&0x3f) << 2
	b = uint8(v&0x1f) << 3
	return
}

// EncodeColor packs 8-bit channels into an RGB565 value, discarding the low
// bits of each channel.
func EncodeColor(r, g, b uint8) uint16 {
	return uint16(r)>>3<<11 | uint16(g)>>2<<5 | uint16(b)>>3
}

// DecodeAlpha expands a stored transparency byte to an 8-bit alpha value.
func DecodeAlpha(v uint8) uint8 {
	t := uint16(v) << 1
	if t >= 254 {
		t = 255
	}
	return uint8(255 - t)
}

// EncodeAlpha packs an 8-bit alpha value back into a transparency byte.
// Fully transparent pixels map to 128, not 127.
func EncodeAlpha(a uint8) uint8 {
	v := (255 - uint16(a)) >> 1
	if v == 127 {
		v = 128
	}
	return uint8(v)
}
