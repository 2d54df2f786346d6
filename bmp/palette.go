package bmp

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorEntry is one RGBQUAD of a BMP color table, stored in blue, green,
// red, reserved order.
type ColorEntry struct {
	Blue, Green, Red, Alpha uint8
}

// Palette is a BMP color table.
type Palette []ColorEntry

// MarshalBinary returns the color table as stored in the file
func (p Palette) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, len(p)*entrySize)
	for _, c := range p {
		b = append(b, c.Blue, c.Green, c.Red, c.Alpha)
	}
	return b, nil
}

// RGB is a color given in red, green, blue order.
type RGB [3]uint8

func (c RGB) entry() ColorEntry {
	return ColorEntry{Blue: c[2], Green: c[1], Red: c[0]}
}

// ParseRGB parses a color of the form "r,g,b" with each component 0-255.
func ParseRGB(s string) (RGB, error) {
	var c RGB
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return c, fmt.Errorf("bmp: color %q is not r,g,b", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return c, fmt.Errorf("bmp: color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// Variant selects the anchor colors of a preview palette.
type Variant int

// Palette variants
const (
	BlackWhite Variant = iota
	Gray
	Green
	Portfolio
	OLEDYellow
	Custom
)

var variantNames = map[Variant]string{
	BlackWhite: "bw",
	Gray:       "gray",
	Green:      "green",
	Portfolio:  "portfolio",
	OLEDYellow: "oled",
	Custom:     "custom",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the variant with the given name.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return BlackWhite, fmt.Errorf("bmp: unknown palette %q", s)
}

// Anchors returns the first and last color of the variant's ramp. first and
// last are only used by Custom.
func (v Variant) Anchors(first, last RGB) (RGB, RGB) {
	switch v {
	case Gray:
		return RGB{30, 30, 30}, RGB{128, 128, 128}
	case Green:
		return RGB{170, 170, 120}, RGB{80, 120, 40}
	case Portfolio:
		return RGB{144, 238, 144}, RGB{72, 72, 160}
	case OLEDYellow:
		return RGB{20, 20, 20}, RGB{255, 220, 0}
	case Custom:
		return first, last
	default:
		return RGB{0, 0, 0}, RGB{255, 255, 255}
	}
}

func lerp(a, b uint8, i, n int) uint8 {
	return uint8(float64(a) + float64(int(b)-int(a))*float64(i)/float64(n))
}

// NewPalette generates a palette of count entries, 2 or 16, for variant v.
// Two color palettes hold just the anchors, sixteen color palettes
// interpolate linearly between them.
func NewPalette(v Variant, count int, first, last RGB) Palette {
	lo, hi := v.Anchors(first, last)
	c0, c1 := lo.entry(), hi.entry()

	if count <= 2 {
		return Palette{c0, c1}
	}

	p := make(Palette, count)
	for i := range p {
		p[i] = ColorEntry{
			Blue:  lerp(c0.Blue, c1.Blue, i, count-1),
			Green: lerp(c0.Green, c1.Green, i, count-1),
			Red:   lerp(c0.Red, c1.Red, i, count-1),
		}
	}
	return p
}
