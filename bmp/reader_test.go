package bmp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"
)

func testColor(x, y int) color.RGBA {
	return color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: uint8(x*10 + y), A: 0xff}
}

func encode24(t *testing.T, w, h int) []byte {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, testColor(x, y))
		}
	}
	b := new(bytes.Buffer)
	require.NoError(t, xbmp.Encode(b, m))
	return b.Bytes()
}

// encode32 writes a 32-bit BMP with a gap between the headers and the pixel
// data.
func encode32(t *testing.T, w, h, gap int) []byte {
	t.Helper()
	rowSize := RowSize(w, 32)
	file := FileHeader{
		Signature:  signature,
		FileSize:   uint32(headerSize + gap + rowSize*h),
		DataOffset: uint32(headerSize + gap),
	}
	info := InfoHeader{
		HeaderSize:   infoHeaderSize,
		Width:        int32(w),
		Height:       int32(h),
		Planes:       1,
		BitsPerPixel: 32,
		ImageSize:    uint32(rowSize * h),
	}

	b := new(bytes.Buffer)
	fb, err := file.MarshalBinary()
	require.NoError(t, err)
	ib, err := info.MarshalBinary()
	require.NoError(t, err)
	b.Write(fb)
	b.Write(ib)
	b.Write(make([]byte, gap))
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			c := testColor(x, y)
			b.Write([]byte{c.B, c.G, c.R, 0xff})
		}
	}
	return b.Bytes()
}

func TestRowSize(t *testing.T) {
	assert.Equal(t, 300, RowSize(100, 24))
	assert.Equal(t, 300, RowSize(99, 24))
	assert.Equal(t, 200, RowSize(50, 32))
	assert.Equal(t, 4, RowSize(9, 1))
	assert.Equal(t, 8, RowSize(9, 4))

	for _, bpp := range []int{1, 4, 24, 32} {
		for w := 1; w <= 70; w++ {
			n := RowSize(w, bpp)
			assert.Zero(t, n%4, "RowSize(%d, %d)", w, bpp)
			assert.GreaterOrEqual(t, n, (w*bpp+7)/8, "RowSize(%d, %d)", w, bpp)
			assert.Less(t, n, (w*bpp+7)/8+4, "RowSize(%d, %d)", w, bpp)
		}
	}
}

func checkPixels(t *testing.T, s *Source) {
	t.Helper()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := testColor(x, y)
			b, g, r := s.BGR(x, y)
			assert.Equal(t, [3]uint8{c.B, c.G, c.R}, [3]uint8{b, g, r}, "pixel (%d, %d)", x, y)
		}
	}
}

func TestDecode24(t *testing.T) {
	s, err := Decode(bytes.NewReader(encode24(t, 5, 3)))
	require.NoError(t, err)

	assert.Equal(t, 5, s.Width)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, 24, s.BitsPerPixel)
	assert.Equal(t, 3, s.BytesPerPixel())
	assert.Equal(t, 16, s.RowSize)
	assert.Len(t, s.Pix, 48)
	checkPixels(t, s)
}

func TestDecode32(t *testing.T) {
	s, err := Decode(bytes.NewReader(encode32(t, 3, 4, 10)))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Width)
	assert.Equal(t, 4, s.Height)
	assert.Equal(t, 32, s.BitsPerPixel)
	assert.Equal(t, 12, s.RowSize)
	checkPixels(t, s)
}

func TestDecodeConfigTooLarge(t *testing.T) {
	huge := patch(encode24(t, 4, 4), 18, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff, 0x7f)
	_, err := DecodeConfig(bytes.NewReader(huge))
	var fe FormatError
	assert.True(t, errors.As(err, &fe), "%v", err)
}

func TestDecodeConfig(t *testing.T) {
	s, err := DecodeConfig(bytes.NewReader(encode24(t, 7, 2)))
	require.NoError(t, err)
	assert.Equal(t, 7, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.Nil(t, s.Pix)
}

func patch(b []byte, off int, v ...byte) []byte {
	dup := append([]byte(nil), b...)
	copy(dup[off:], v)
	return dup
}

func TestDecodeErrors(t *testing.T) {
	good := encode24(t, 4, 4)

	tests := []struct {
		name   string
		input  []byte
		format bool
		unsupp bool
		trunc  bool
	}{
		{"empty", nil, true, false, false},
		{"short file header", good[:10], true, false, false},
		{"signature", patch(good, 0, 'P', 'K'), true, false, false},
		{"short info header", good[:30], true, false, false},
		{"8-bit", patch(good, 28, 8, 0), false, true, false},
		{"16-bit", patch(good, 28, 16, 0), false, true, false},
		{"compressed", patch(good, 30, 1, 0, 0, 0), false, true, false},
		{"truncated", good[:len(good)-1], false, false, true},
		{"zero width", patch(good, 18, 0, 0, 0, 0), true, false, false},
		{"overflowing size", patch(good, 18, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff, 0x7f), true, false, false},
		{"overflowing 32-bit", patch(patch(good, 28, 32, 0), 18, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff, 0x7f), true, false, false},
		{"larger than file", patch(good, 18, 0x60, 0xea, 0, 0, 0x60, 0xea, 0, 0), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = Decode(bytes.NewReader(tt.input)) })
			require.Error(t, err)

			var fe FormatError
			assert.Equal(t, tt.format, errors.As(err, &fe), "%v", err)
			var ue UnsupportedError
			assert.Equal(t, tt.unsupp, errors.As(err, &ue), "%v", err)
			assert.Equal(t, tt.trunc, errors.Is(err, ErrTruncated), "%v", err)
		})
	}
}
