package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// Encode packs the pixels of m inside r into SRF color and alpha planes.
// When mask is non-nil the transparency is taken from the red channel of
// the corresponding mask pixel instead of m's alpha channel.
func Encode(m, mask image.Image, r image.Rectangle) (rgb, alpha []byte, err error) {
	if r.Empty() || !r.In(m.Bounds()) {
		return nil, nil, fmt.Errorf("%w: image %v does not contain %v", ErrDimension, m.Bounds(), r)
	}
	if mask != nil && !r.In(mask.Bounds()) {
		return nil, nil, fmt.Errorf("%w: mask %v does not contain %v", ErrDimension, mask.Bounds(), r)
	}

	w, h := r.Dx(), r.Dy()
	rgb = make([]byte, 2*w*h)
	alpha = make([]byte, w*h)

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			binary.LittleEndian.PutUint16(rgb[2*i:], EncodeColor(p.R, p.G, p.B))

			a := p.A
			if mask != nil {
				a = color.NRGBAModel.Convert(mask.At(x, y)).(color.NRGBA).R
			}
			alpha[i] = EncodeAlpha(a)
			i++
		}
	}
	return rgb, alpha, nil
}
