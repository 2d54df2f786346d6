package bmp

import (
	"errors"
	"io"
	"os"

	"github.com/ptodt/xbpp/pack"
)

// Preview describes packed pixel data to be written as a BMP.
type Preview struct {
	Width  int
	Height int
	pack.Layout

	Palette     Variant
	First, Last RGB
}

type encoder struct {
	w io.Writer
	p Preview

	data []byte
}

func (e *encoder) writeHeaders(rowSize int) error {
	colors := e.p.Depth.Colors()
	offset := headerSize + colors*entrySize
	imageSize := rowSize * e.p.Height

	file := FileHeader{
		Signature:  signature,
		FileSize:   uint32(offset + imageSize),
		DataOffset: uint32(offset),
	}
	info := InfoHeader{
		HeaderSize:   infoHeaderSize,
		Width:        int32(e.p.Width),
		Height:       int32(e.p.Height),
		Planes:       1,
		BitsPerPixel: uint16(e.p.Depth),
		Compression:  compressionNone,
		ImageSize:    uint32(imageSize),
		ColorsUsed:   uint32(colors),
	}

	for _, m := range []interface {
		MarshalBinary() ([]byte, error)
	}{&file, &info, NewPalette(e.p.Palette, colors, e.p.First, e.p.Last)} {
		b, err := m.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// direct reports whether stored rows already have the BMP layout: row-major
// with the leftmost pixel in the high bits.
func (e *encoder) direct() bool {
	return e.p.Direction == pack.Horizontal && e.p.Order == pack.HighFirst
}

// row fills b with row y of the image in BMP bit order. Column-packed data
// is transposed here: 1bpp pixel (x, y) lives in byte x*colBytes+y/8 and
// 4bpp pixel (x, y) in byte x*colBytes+y/2.
func (e *encoder) row(y int, b []byte) {
	for i := range b {
		b[i] = 0
	}

	if e.direct() {
		n := (e.p.Width*int(e.p.Depth) + 7) / 8
		copy(b, e.data[y*n:(y+1)*n])
		return
	}

	for x := 0; x < e.p.Width; x++ {
		v := e.p.PixelAt(e.data, e.p.Width, e.p.Height, x, y)
		switch e.p.Depth {
		case pack.OneBit:
			b[x/8] |= v << uint(7-x%8)
		case pack.FourBit:
			b[x/2] |= v << uint(4*(1-x%2))
		}
	}
}

func (e *encoder) encode() error {
	rowSize := RowSize(e.p.Width, int(e.p.Depth))

	if err := e.writeHeaders(rowSize); err != nil {
		return err
	}

	b := make([]byte, rowSize)
	for y := e.p.Height - 1; y >= 0; y-- {
		e.row(y, b)
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes packed data described by p to w as a 1 or 4-bit BMP.
func Encode(w io.Writer, data []byte, p Preview) error {
	if !p.Depth.Valid() {
		return UnsupportedError("preview depth")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New("bmp: preview is empty")
	}
	if len(data) < p.Size(p.Width, p.Height) {
		return errors.New("bmp: not enough packed data")
	}

	e := encoder{w: w, p: p, data: data}

	return e.encode()
}

// EncodeFile writes the preview to the named file, replacing it if it exists.
func EncodeFile(name string, data []byte, p Preview) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, data, p)
}
