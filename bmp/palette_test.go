package bmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaletteBlackWhite(t *testing.T) {
	p := NewPalette(BlackWhite, 2, RGB{}, RGB{})
	assert.Equal(t, Palette{{}, {Blue: 255, Green: 255, Red: 255}}, p)

	p = NewPalette(BlackWhite, 16, RGB{}, RGB{})
	require.Len(t, p, 16)
	assert.Equal(t, ColorEntry{}, p[0])
	assert.Equal(t, ColorEntry{Blue: 119, Green: 119, Red: 119}, p[7])
	assert.Equal(t, ColorEntry{Blue: 255, Green: 255, Red: 255}, p[15])

	for i := 1; i < len(p); i++ {
		assert.Greater(t, p[i].Red, p[i-1].Red, "ramp is increasing")
	}
}

func TestNewPaletteGreen(t *testing.T) {
	p := NewPalette(Green, 2, RGB{}, RGB{})
	assert.Equal(t, Palette{
		{Blue: 120, Green: 170, Red: 170},
		{Blue: 40, Green: 120, Red: 80},
	}, p)

	p = NewPalette(Green, 16, RGB{}, RGB{})
	assert.Equal(t, ColorEntry{Blue: 114, Green: 166, Red: 164}, p[1], "decreasing channels truncate toward the first anchor")
	assert.Equal(t, ColorEntry{Blue: 40, Green: 120, Red: 80}, p[15])
}

func TestNewPaletteCustom(t *testing.T) {
	p := NewPalette(Custom, 2, RGB{10, 20, 30}, RGB{200, 100, 50})
	assert.Equal(t, Palette{
		{Blue: 30, Green: 20, Red: 10},
		{Blue: 50, Green: 100, Red: 200},
	}, p)

	// Custom anchors are ignored by the fixed variants
	assert.Equal(t, NewPalette(OLEDYellow, 2, RGB{}, RGB{}), NewPalette(OLEDYellow, 2, RGB{1, 2, 3}, RGB{4, 5, 6}))
}

func TestPaletteMarshalBinary(t *testing.T) {
	b, err := NewPalette(Portfolio, 2, RGB{}, RGB{}).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{144, 238, 144, 0, 160, 72, 72, 0}, b)
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("255, 128,0")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 128, 0}, c)

	for _, s := range []string{"", "1,2", "1,2,3,4", "1,2,256", "a,b,c", "-1,0,0"} {
		_, err := ParseRGB(s)
		assert.Error(t, err, "%q", s)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{BlackWhite, Gray, Green, Portfolio, OLEDYellow, Custom} {
		got, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	v, err := ParseVariant("OLED")
	require.NoError(t, err)
	assert.Equal(t, OLEDYellow, v)

	_, err = ParseVariant("sepia")
	assert.Error(t, err)
	assert.Equal(t, "Variant(42)", Variant(42).String())
}
