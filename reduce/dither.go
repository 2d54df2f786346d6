package reduce

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Method is a dithering method for 1bpp output.
type Method int

// Dithering methods. FloydSteinberg and Ordered are implemented here with
// integer arithmetic so their output is reproducible bit for bit; the
// remaining error diffusion kernels come from the dither package.
const (
	None Method = iota
	FloydSteinberg
	Ordered
	Atkinson
	Burkes
	Sierra
	Stucki
	JarvisJudiceNinke
)

var methods = []struct {
	flag, name string
	matrix     dither.ErrorDiffusionMatrix
}{
	None:              {"none", "None", nil},
	FloydSteinberg:    {"floyd", "Floyd-Steinberg", nil},
	Ordered:           {"o8x8", "Ordered 8x8", nil},
	Atkinson:          {"atkinson", "Atkinson", dither.Atkinson},
	Burkes:            {"burkes", "Burkes", dither.Burkes},
	Sierra:            {"sierra", "Sierra", dither.Sierra},
	Stucki:            {"stucki", "Stucki", dither.Stucki},
	JarvisJudiceNinke: {"jarvis", "Jarvis-Judice-Ninke", dither.JarvisJudiceNinke},
}

// ParseMethod returns the method with the given command line name.
func ParseMethod(s string) (Method, error) {
	for m, v := range methods {
		if strings.EqualFold(s, v.flag) {
			return Method(m), nil
		}
	}
	return None, fmt.Errorf("reduce: unknown dithering method %q", s)
}

// MethodNames returns the command line names of all methods.
func MethodNames() []string {
	names := make([]string, len(methods))
	for i, v := range methods {
		names[i] = v.flag
	}
	return names
}

// String returns the descriptive name used in generated file headers.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methods) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methods[m].name
}

// Flag returns the command line name of m.
func (m Method) Flag() string {
	if m < 0 || int(m) >= len(methods) {
		return ""
	}
	return methods[m].flag
}

// Apply dithers p in place, leaving every pixel at 0 or 255, and returns it.
// None leaves p untouched.
func (m Method) Apply(p *Plane) (*Plane, error) {
	switch m {
	case None:
		return p, nil
	case FloydSteinberg:
		return ApplyFloydSteinberg(p), nil
	case Ordered:
		return ApplyOrdered(p), nil
	}
	if m < 0 || int(m) >= len(methods) {
		return nil, fmt.Errorf("reduce: unknown dithering method %d", int(m))
	}
	return diffuse(p, methods[m].matrix), nil
}

// ApplyFloydSteinberg performs Floyd-Steinberg error diffusion in place. The
// error is distributed with truncating integer division and every neighbour
// is clamped to 0-255 as it is updated.
func ApplyFloydSteinberg(p *Plane) *Plane {
	w, h := p.Width, p.Height

	spread := func(x, y, e int) {
		if x < 0 || x >= w || y >= h {
			return
		}
		i := y*w + x
		p.Pix[i] = clamp(int(p.Pix[i]) + e)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := int(p.Pix[y*w+x])
			q := 0
			if old > threshold {
				q = 255
			}
			e := old - q
			p.Pix[y*w+x] = uint8(q)

			spread(x+1, y, e*7/16)
			spread(x-1, y+1, e*3/16)
			spread(x, y+1, e*5/16)
			spread(x+1, y+1, e*1/16)
		}
	}
	return p
}

var bayer8 = [8][8]uint8{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// ApplyOrdered thresholds p in place against the tiled 8x8 Bayer matrix.
func ApplyOrdered(p *Plane) *Plane {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			i := y*p.Width + x
			if p.Pix[i] > bayer8[y%8][x%8] {
				p.Pix[i] = 255
			} else {
				p.Pix[i] = 0
			}
		}
	}
	return p
}

var blackWhite = []color.Color{color.Gray{Y: 0}, color.Gray{Y: 255}}

func diffuse(p *Plane, m dither.ErrorDiffusionMatrix) *Plane {
	src := image.NewGray(p.Bounds())
	copy(src.Pix, p.Pix)

	d := dither.NewDitherer(blackWhite)
	d.Matrix = m

	out := d.Dither(src)
	if out == nil {
		// Nothing to diffuse, the plane is already black and white
		return p
	}

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if color.GrayModel.Convert(out.At(x, y)).(color.Gray).Y > threshold {
				p.Pix[y*p.Width+x] = 255
			} else {
				p.Pix[y*p.Width+x] = 0
			}
		}
	}
	return p
}
