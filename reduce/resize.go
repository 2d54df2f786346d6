package reduce

import (
	"fmt"
	"strings"

	"github.com/KononK/resize"
	"github.com/ptodt/xbpp/bmp"
)

// Filter is the interpolation used when scaling a source.
type Filter int

// Scaling filters
const (
	Nearest Filter = iota
	Bilinear
	Bicubic
	Lanczos
)

var filters = []struct {
	name   string
	interp resize.InterpolationFunction
}{
	Nearest:  {"nearest", resize.NearestNeighbor},
	Bilinear: {"bilinear", resize.Bilinear},
	Bicubic:  {"bicubic", resize.Bicubic},
	Lanczos:  {"lanczos", resize.Lanczos3},
}

// Valid reports whether f is one of the defined filters.
func (f Filter) Valid() bool {
	return f >= 0 && int(f) < len(filters)
}

func (f Filter) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filters[f].name
}

// FilterNames lists the names accepted by ParseFilter.
func FilterNames() []string {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.name
	}
	return names
}

// ParseFilter returns the filter with the given name.
func ParseFilter(s string) (Filter, error) {
	for i, f := range filters {
		if strings.EqualFold(s, f.name) {
			return Filter(i), nil
		}
	}
	return Nearest, fmt.Errorf("reduce: unknown filter %q", s)
}

// Resize scales s to width by height pixels. If one of width or height is
// zero it is derived from the other, keeping the aspect ratio. If both are
// zero, or s already has the requested size, s is returned unchanged.
func Resize(s *bmp.Source, width, height int, f Filter) (*bmp.Source, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("reduce: bad size %dx%d", width, height)
	}
	if !f.Valid() {
		return nil, fmt.Errorf("reduce: unknown filter %d", int(f))
	}
	if width == 0 && height == 0 || width == s.Width && height == s.Height {
		return s, nil
	}

	m := resize.Resize(uint(width), uint(height), s, filters[f].interp)
	if m.Bounds().Empty() {
		return nil, fmt.Errorf("reduce: %dx%d scales to an empty image", s.Width, s.Height)
	}
	return bmp.NewSource(m), nil
}
