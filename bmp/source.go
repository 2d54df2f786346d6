package bmp

import (
	"image"
	"image/color"
)

// ColorModel returns color.RGBAModel.
func (s *Source) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the image bounds with the origin at (0, 0).
func (s *Source) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// At returns the opaque color at (x, y). The alpha byte of 32-bit sources
// is ignored.
func (s *Source) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(s.Bounds())) {
		return color.RGBA{}
	}
	b, g, r := s.BGR(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// NewSource builds a 24-bit Source from m, composited over black.
func NewSource(m image.Image) *Source {
	bounds := m.Bounds()
	s := &Source{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		BitsPerPixel: 24,
	}
	s.RowSize = RowSize(s.Width, s.BitsPerPixel)
	s.Pix = make([]byte, s.RowSize*s.Height)

	for y := 0; y < s.Height; y++ {
		row := s.Pix[(s.Height-1-y)*s.RowSize:]
		for x := 0; x < s.Width; x++ {
			c := color.RGBAModel.Convert(m.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			row[3*x], row[3*x+1], row[3*x+2] = c.B, c.G, c.R
		}
	}
	return s
}
