/*
Package bmp implements the subset of the Windows BMP format used by the
converter.

The decoder accepts only uncompressed 24 and 32-bit images stored bottom-up.
The encoder writes 1 or 4-bit paletted previews of packed pixel data, using a
palette generated from one of the ramp variants.

A BMP file is a 14 byte file header, a 40 byte BITMAPINFOHEADER, an optional
color table of 4 byte entries and finally the pixel rows, bottom row first,
each padded to a multiple of 4 bytes.
*/
package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	headerSize     = fileHeaderSize + infoHeaderSize
	entrySize      = 4

	compressionNone = 0
)

var signature = [2]byte{'B', 'M'}

var errHeaderSize = errors.New("bmp: wrong header length")

// FileHeader is the BITMAPFILEHEADER structure. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type FileHeader struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32
}

// MarshalBinary encodes the header into its 14 byte little-endian form
func (h *FileHeader) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from its 14 byte form
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) != fileHeaderSize {
		return errHeaderSize
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, h)
}

// InfoHeader is the 40 byte BITMAPINFOHEADER structure.
type InfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// MarshalBinary encodes the header into its 40 byte little-endian form
func (h *InfoHeader) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from its 40 byte form
func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) != infoHeaderSize {
		return errHeaderSize
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, h)
}

// RowSize returns the number of bytes used by one stored row of width pixels
// at the given bit depth, including the padding to a 4 byte boundary.
func RowSize(width, bitsPerPixel int) int {
	return (width*bitsPerPixel + 31) / 32 * 4
}
