/*
Package reduce turns a decoded BMP into a plane of 1 or 4-bit gray levels.

Colors are converted to luminance with the ITU-R BT.601 weights and
truncated. For 4bpp output the luminance is divided into sixteen bands. For
1bpp output brightness and contrast are applied first, then optional
dithering, then a threshold at 127.
*/
package reduce

import (
	"errors"

	"github.com/ptodt/xbpp/bmp"
	"github.com/ptodt/xbpp/pack"
)

// Neutral is the brightness and contrast percentage that leaves values
// unchanged.
const Neutral = 50

const threshold = 127

// Options controls the reduction.
type Options struct {
	Depth      pack.Depth
	Dither     Method
	Brightness int
	Contrast   int
}

// Luminance returns the truncated BT.601 luminance of an RGB triple.
func Luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// Scale4 maps an 8-bit gray level to 0-15.
func Scale4(v uint8) uint8 {
	if v /= 16; v > 15 {
		v = 15
	}
	return v
}

// Scale1 maps an 8-bit gray level to 0 or 1.
func Scale1(v uint8) uint8 {
	if v > threshold {
		return 1
	}
	return 0
}

// Adjust applies contrast around the midpoint and then brightness to v.
// Both are percentages; 50 is neutral, contrast 0 flattens everything to
// mid gray and 100 doubles it, brightness 0 and 100 shift by -255 and +255.
func Adjust(v uint8, brightness, contrast int) uint8 {
	f := (float64(v)-127.5)*float64(contrast)/50 + 127.5
	f += float64(brightness-50) * 255 / 50
	switch {
	case f < 0:
		return 0
	case f > 255:
		return 255
	}
	return uint8(f)
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Gray returns the luminance plane of s. width may be larger than s.Width,
// in which case the extra columns are zero.
func Gray(s *bmp.Source, width int) *Plane {
	if width < s.Width {
		width = s.Width
	}
	p := NewPlane(width, s.Height, 255)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			b, g, r := s.BGR(x, y)
			p.Pix[y*width+x] = Luminance(r, g, b)
		}
	}
	return p
}

// Reduce converts s to a plane at the requested depth. 4bpp planes are padded
// to an even width with a zero column.
func Reduce(s *bmp.Source, o Options) (*Plane, error) {
	switch o.Depth {
	case pack.FourBit:
		p := Gray(s, s.Width+s.Width%2)
		for i, v := range p.Pix {
			p.Pix[i] = Scale4(v)
		}
		p.Max = 15
		return p, nil
	case pack.OneBit:
		p := Gray(s, s.Width)
		if o.Brightness != Neutral || o.Contrast != Neutral {
			for i, v := range p.Pix {
				p.Pix[i] = Adjust(v, o.Brightness, o.Contrast)
			}
		}
		p, err := o.Dither.Apply(p)
		if err != nil {
			return nil, err
		}
		for i, v := range p.Pix {
			p.Pix[i] = Scale1(v)
		}
		p.Max = 1
		return p, nil
	}
	return nil, errors.New("reduce: unsupported depth")
}
