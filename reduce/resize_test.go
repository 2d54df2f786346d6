package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeDimensions(t *testing.T) {
	s := newSource(8, 4, 24, uniform(128))

	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{4, 2, 4, 2},
		{16, 0, 16, 8},
		{0, 2, 4, 2},
		{3, 7, 3, 7},
	}

	for _, f := range []Filter{Nearest, Bilinear, Bicubic, Lanczos} {
		for _, tt := range tests {
			r, err := Resize(s, tt.w, tt.h, f)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, r.Width, "%s %dx%d", f, tt.w, tt.h)
			assert.Equal(t, tt.wantH, r.Height, "%s %dx%d", f, tt.w, tt.h)
			assert.Equal(t, 24, r.BitsPerPixel)
		}
	}
}

func TestResizeNearestKeepsLevels(t *testing.T) {
	r, err := Resize(newSource(6, 6, 32, uniform(128)), 3, 3, Nearest)
	require.NoError(t, err)

	p, err := Reduce(r, Options{Depth: 4})
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		8, 8, 8, 0,
		8, 8, 8, 0,
		8, 8, 8, 0,
	}, p.Pix)
}

func TestResizeNoop(t *testing.T) {
	s := newSource(5, 5, 24, uniform(10))

	r, err := Resize(s, 0, 0, Lanczos)
	require.NoError(t, err)
	assert.Same(t, s, r)

	r, err = Resize(s, 5, 5, Lanczos)
	require.NoError(t, err)
	assert.Same(t, s, r)
}

func TestResizeErrors(t *testing.T) {
	s := newSource(2, 2, 24, uniform(0))

	_, err := Resize(s, -1, 2, Nearest)
	assert.Error(t, err)
	_, err = Resize(s, 1, 1, Filter(9))
	assert.Error(t, err)
}

func TestParseFilter(t *testing.T) {
	for _, name := range FilterNames() {
		f, err := ParseFilter(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	f, err := ParseFilter("Lanczos")
	require.NoError(t, err)
	assert.Equal(t, Lanczos, f)

	assert.True(t, Lanczos.Valid())
	assert.False(t, Filter(-1).Valid())
	assert.False(t, Filter(len(filters)).Valid())

	_, err = ParseFilter("box")
	assert.Error(t, err)
	assert.Equal(t, "Filter(-1)", Filter(-1).String())
}
