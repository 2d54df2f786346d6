package bmp

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// A FormatError reports that the input is not a valid BMP.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

// An UnsupportedError reports that the input uses a valid but unsupported
// feature of the BMP format.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }

// ErrTruncated is returned when the pixel data ends before the number of
// bytes declared by the headers.
var ErrTruncated = errors.New("bmp: truncated pixel data")

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Source is a decoded 24 or 32-bit image. Pix holds the rows exactly as
// stored in the file: bottom row first, BGR(A) byte order, each row RowSize
// bytes long.
type Source struct {
	Width        int
	Height       int
	BitsPerPixel int
	RowSize      int
	Pix          []byte
}

// BytesPerPixel returns 3 or 4.
func (s *Source) BytesPerPixel() int {
	return s.BitsPerPixel / 8
}

// BGR returns the blue, green and red components of the pixel at (x, y)
// where y counts from the top of the image.
func (s *Source) BGR(x, y int) (b, g, r uint8) {
	i := (s.Height-1-y)*s.RowSize + x*s.BytesPerPixel()
	return s.Pix[i], s.Pix[i+1], s.Pix[i+2]
}

type decoder struct {
	r io.ReadSeeker

	file FileHeader
	info InfoHeader

	tmp [headerSize]byte
}

func (d *decoder) readHeaders() error {
	if err := readFull(d.r, d.tmp[:fileHeaderSize]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return FormatError("short file header")
		}
		return err
	}
	if err := d.file.UnmarshalBinary(d.tmp[:fileHeaderSize]); err != nil {
		return err
	}
	if d.file.Signature != signature {
		return FormatError("not a BMP file")
	}

	if err := readFull(d.r, d.tmp[fileHeaderSize:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return FormatError("short info header")
		}
		return err
	}
	return d.info.UnmarshalBinary(d.tmp[fileHeaderSize:])
}

func (d *decoder) validate() error {
	switch d.info.BitsPerPixel {
	case 24, 32:
	default:
		return UnsupportedError(fmt.Sprintf("bit count %d", d.info.BitsPerPixel))
	}
	if d.info.Compression != compressionNone {
		return UnsupportedError(fmt.Sprintf("compression %d", d.info.Compression))
	}
	if d.info.Width <= 0 || d.info.Height <= 0 {
		return FormatError(fmt.Sprintf("bad dimensions %dx%d", d.info.Width, d.info.Height))
	}
	if d.imageSize() < 0 {
		return FormatError(fmt.Sprintf("image too large %dx%d", d.info.Width, d.info.Height))
	}
	return nil
}

// imageSize returns the length of the pixel data declared by the headers,
// or -1 if it does not fit in an int.
func (d *decoder) imageSize() int {
	row := (int64(d.info.Width)*int64(d.info.BitsPerPixel) + 31) / 32 * 4
	if row > math.MaxInt/int64(d.info.Height) {
		return -1
	}
	return int(row * int64(d.info.Height))
}

func (d *decoder) decode(r io.ReadSeeker, configOnly bool) (*Source, error) {
	d.r = r

	if err := d.readHeaders(); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	s := &Source{
		Width:        int(d.info.Width),
		Height:       int(d.info.Height),
		BitsPerPixel: int(d.info.BitsPerPixel),
	}
	s.RowSize = RowSize(s.Width, s.BitsPerPixel)

	if configOnly {
		return s, nil
	}

	size := d.imageSize()

	end, err := d.r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if end-int64(d.file.DataOffset) < int64(size) {
		return nil, ErrTruncated
	}
	if _, err := d.r.Seek(int64(d.file.DataOffset), io.SeekStart); err != nil {
		return nil, err
	}

	s.Pix = make([]byte, size)
	if err := readFull(d.r, s.Pix); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, err
	}

	return s, nil
}

// Decode reads an uncompressed 24 or 32-bit BMP from r.
func Decode(r io.ReadSeeker) (*Source, error) {
	var d decoder
	return d.decode(r, false)
}

// DecodeConfig returns the dimensions and bit depth of a BMP without reading
// the pixel data. Pix of the returned Source is nil.
func DecodeConfig(r io.ReadSeeker) (*Source, error) {
	var d decoder
	return d.decode(r, true)
}
