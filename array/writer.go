package array

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ptodt/xbpp/pack"
)

const bytesPerLine = 16

// Generator is written at the top of every file.
const Generator = "BMP to xbpp Array Converter"

// Header describes the conversion that produced the data.
type Header struct {
	Version    string
	Created    time.Time
	Width      int
	Height     int
	Depth      pack.Depth
	Dithering  string
	Brightness int
	Contrast   int
	Invert     bool
}

type writer struct {
	w      *bufio.Writer
	prefix string
	err    error
}

func (w *writer) printf(format string, a ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, a...)
}

func (w *writer) header(h Header, size bool) {
	w.printf("%s Generated by %s %s\n", w.prefix, Generator, h.Version)
	w.printf("%s Created on: %s\n", w.prefix, h.Created.Format("20060102T150405"))
	if size && h.Width > 0 && h.Height > 0 {
		w.printf("%s Image size: %dx%d\n", w.prefix, h.Width, h.Height)
	}

	w.printf("%s Format: %dbpp", w.prefix, h.Depth)
	switch h.Depth {
	case pack.OneBit:
		w.printf(" (dithering: %s, brightness: %d%%, contrast: %d%%", h.Dithering, h.Brightness, h.Contrast)
		if h.Invert {
			w.printf(", inverted")
		}
		w.printf(")")
	default:
		if h.Invert {
			w.printf(" (inverted)")
		}
	}
	w.printf("\n")
}

// data writes the bytes 16 per line, each line starting with lead.
func (w *writer) data(data []byte, lead func(line int) string, item string, last bool) {
	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		items := make([]string, 0, end-i)
		for _, b := range data[i:end] {
			items = append(items, fmt.Sprintf(item, b))
		}
		sep := ""
		if last && end < len(data) {
			sep = ","
		}
		w.printf("%s%s%s\n", lead(i/bytesPerLine), strings.Join(items, ", "), sep)
	}
}

func indent(int) string { return "    " }

// Write renders data in format f to w.
func Write(w io.Writer, data []byte, f Format, h Header) error {
	aw := &writer{w: bufio.NewWriter(w), prefix: "//"}

	switch f := f.(type) {
	case CArray:
		aw.header(h, true)
		attr := ""
		if f.Progmem {
			attr = " PROGMEM"
		}
		aw.printf("const unsigned char %s[%d]%s = {\n", f.Name, len(data), attr)
		aw.data(data, indent, "0x%02X", true)
		aw.printf("};\n")
	case Raw:
		aw.header(h, false)
		aw.data(data, indent, "0x%02X", true)
	case Assembler:
		aw.prefix = ";"
		aw.header(h, true)
		aw.printf("%s:\n", f.Name)
		aw.data(data, func(int) string { return "    .db " }, "$%02X", false)
	case MASMArray:
		aw.prefix = ";"
		aw.header(h, true)
		aw.printf(".array %s[%d].byte\n", f.Name, len(data))
		aw.data(data, func(line int) string {
			if line == 0 {
				return " "
			}
			return ""
		}, "$%02X", true)
		aw.printf(".enda\n")
	default:
		return fmt.Errorf("array: unsupported format %T", f)
	}

	if aw.err != nil {
		return aw.err
	}
	return aw.w.Flush()
}

// WriteFile renders data to the named file, replacing it if it exists.
func WriteFile(name string, data []byte, f Format, h Header) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(file, data, f, h)
}
