/*
Package pack packs a plane of reduced gray levels into bytes.

A 4bpp byte holds two pixels and a 1bpp byte holds eight. Pixels are taken
either along rows (horizontal scan) or along columns (vertical scan) and the
pixel order decides which pixel of a group ends up in the high bits.

For horizontal scans HighFirst puts the first pixel of a group in the most
significant bits. For 1bpp vertical scans the convention is mirrored and
HighFirst puts the topmost pixel of a group in bit 0, matching page-addressed
monochrome display controllers. 4bpp vertical scans use the same nibble
placement as horizontal ones.
*/
package pack

import "fmt"

// Depth is the number of bits per output pixel.
type Depth int

// Supported output depths
const (
	OneBit  Depth = 1
	FourBit Depth = 4
)

// PixelsPerByte returns 8 or 2.
func (d Depth) PixelsPerByte() int {
	return 8 / int(d)
}

// Colors returns the number of palette entries needed for d.
func (d Depth) Colors() int {
	return 1 << uint(d)
}

// Valid reports whether d is one of the supported depths.
func (d Depth) Valid() bool {
	return d == OneBit || d == FourBit
}

// Direction is the scan direction used to serialize pixels.
type Direction int

// Scan directions
const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Order decides which pixel of a group occupies the high bits of a byte.
type Order int

// Pixel orders. HighFirst is called "little endian" on the command line and
// LowFirst "big endian".
const (
	HighFirst Order = iota
	LowFirst
)

func (o Order) String() string {
	if o == LowFirst {
		return "big endian"
	}
	return "little endian"
}

// Layout groups the parameters that determine the packed byte layout.
type Layout struct {
	Depth     Depth
	Direction Direction
	Order     Order
}

func (l Layout) String() string {
	return fmt.Sprintf("%dbpp %s %s", l.Depth, l.Direction, l.Order)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Size returns the length of the packed buffer for a width by height plane.
func (l Layout) Size(width, height int) int {
	n := l.Depth.PixelsPerByte()
	if l.Direction == Vertical {
		return ceilDiv(height, n) * width
	}
	return ceilDiv(width, n) * height
}

// Shift1 returns the bit position of the pixel at offset i (0-7) within its
// group for 1bpp data.
func (l Layout) Shift1(i int) uint {
	high := l.Order == HighFirst
	if l.Direction == Vertical {
		high = !high
	}
	if high {
		return uint(7 - i)
	}
	return uint(i)
}

// Shift4 returns the bit position of the pixel at offset i (0 or 1) within
// its pair for 4bpp data.
func (l Layout) Shift4(i int) uint {
	if (l.Order == HighFirst) == (i == 0) {
		return 4
	}
	return 0
}

// Pack packs pix, a row-major width by height plane of values already reduced
// to the range of l.Depth. Pixels past the edge of the plane pack as zero.
func Pack(pix []uint8, width, height int, l Layout) []byte {
	out := make([]byte, 0, l.Size(width, height))

	at := func(x, y int) uint8 {
		if x >= width || y >= height {
			return 0
		}
		return pix[y*width+x]
	}

	n := l.Depth.PixelsPerByte()
	group := func(x, y, dx, dy int) byte {
		var b byte
		for i := 0; i < n; i++ {
			v := at(x+i*dx, y+i*dy)
			switch l.Depth {
			case OneBit:
				if v != 0 {
					b |= 1 << l.Shift1(i)
				}
			case FourBit:
				b |= (v & 0x0f) << l.Shift4(i)
			}
		}
		return b
	}

	if l.Direction == Vertical {
		for x := 0; x < width; x++ {
			for y := 0; y < height; y += n {
				out = append(out, group(x, y, 0, 1))
			}
		}
		return out
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x += n {
			out = append(out, group(x, y, 1, 0))
		}
	}
	return out
}

// Unpack is the inverse of Pack and returns the row-major plane.
func Unpack(data []byte, width, height int, l Layout) []uint8 {
	pix := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = l.PixelAt(data, width, height, x, y)
		}
	}
	return pix
}

// PixelAt returns the value of the pixel at (x, y) from packed data.
func (l Layout) PixelAt(data []byte, width, height, x, y int) uint8 {
	n := l.Depth.PixelsPerByte()

	var i, off int
	if l.Direction == Vertical {
		i = x*ceilDiv(height, n) + y/n
		off = y % n
	} else {
		i = y*ceilDiv(width, n) + x/n
		off = x % n
	}

	if l.Depth == OneBit {
		return data[i] >> l.Shift1(off) & 1
	}
	return data[i] >> l.Shift4(off) & 0x0f
}

// Invert inverts packed data in place and returns it. 1bpp bytes are
// complemented and 4bpp nibbles n become 15-n.
func Invert(data []byte, d Depth) []byte {
	for i, b := range data {
		switch d {
		case OneBit:
			data[i] = ^b
		case FourBit:
			data[i] = (15-b>>4)<<4 | (15 - b&0x0f)
		}
	}
	return data
}
