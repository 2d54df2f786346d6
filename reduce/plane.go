package reduce

import (
	"image"
	"image/color"
)

// Plane is a row-major, top-down plane of gray levels. Max is the value
// representing full intensity: 255 before thresholding, 1 for 1bpp output
// and 15 for 4bpp output.
//
// Plane implements image.Image so reduced output can be inspected with the
// standard image packages.
type Plane struct {
	Width  int
	Height int
	Max    uint8
	Pix    []uint8
}

// NewPlane returns a zeroed plane.
func NewPlane(width, height int, full uint8) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Max:    full,
		Pix:    make([]uint8, width*height),
	}
}

// ColorModel returns color.GrayModel.
func (p *Plane) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the plane bounds with the origin at (0, 0).
func (p *Plane) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At returns the pixel at (x, y) scaled to 8 bits.
func (p *Plane) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return color.Gray{}
	}
	v := p.Pix[y*p.Width+x]
	if p.Max == 0 || p.Max == 255 {
		return color.Gray{Y: v}
	}
	return color.Gray{Y: uint8(int(v) * 255 / int(p.Max))}
}
