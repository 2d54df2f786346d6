package xbpp

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ptodt/xbpp/array"
	"github.com/ptodt/xbpp/bmp"
	"github.com/ptodt/xbpp/pack"
	"github.com/ptodt/xbpp/reduce"
)

// Result is the outcome of a conversion. Width and Height are the dimensions
// of the packed plane, which for 4bpp may be one column wider than the
// source.
type Result struct {
	SourceWidth  int
	SourceHeight int
	Width        int
	Height       int
	pack.Layout
	Data []byte
}

// Convert decodes a BMP from r and returns its packed data. Inversion is
// applied to the packed bytes when configured.
func (c *Converter) Convert(r io.ReadSeeker) (*Result, error) {
	return convert(c.cfg, r)
}

func convert(cfg Config, r io.ReadSeeker) (*Result, error) {
	src, err := bmp.Decode(r)
	if err != nil {
		return nil, err
	}

	scaled, err := reduce.Resize(src, cfg.Width, cfg.Height, cfg.Filter)
	if err != nil {
		return nil, err
	}

	plane, err := reduce.Reduce(scaled, cfg.options())
	if err != nil {
		return nil, err
	}

	data := pack.Pack(plane.Pix, plane.Width, plane.Height, cfg.Layout)
	if cfg.Invert {
		data = pack.Invert(data, cfg.Depth)
	}

	return &Result{
		SourceWidth:  src.Width,
		SourceHeight: src.Height,
		Width:        plane.Width,
		Height:       plane.Height,
		Layout:       cfg.Layout,
		Data:         data,
	}, nil
}

func (c *Converter) header(cfg Config, res *Result) array.Header {
	return array.Header{
		Version:    Version,
		Created:    c.now(),
		Width:      res.Width,
		Height:     res.Height,
		Depth:      cfg.Depth,
		Dithering:  cfg.Dither.String(),
		Brightness: cfg.Brightness,
		Contrast:   cfg.Contrast,
		Invert:     cfg.Invert,
	}
}

// PreviewPath returns the path of the BMP preview written next to output.
func PreviewPath(output string) string {
	return array.ReplaceExtension(output, ".bmp")
}

// ConvertFile converts the BMP named input and writes the array to output
// and, if enabled, a preview next to it. Nothing is left on disk when any
// step fails.
func (c *Converter) ConvertFile(input, output string) (*Result, error) {
	return c.convertFile(c.cfg, input, output)
}

func (c *Converter) convertFile(cfg Config, input, output string) (*Result, error) {
	c.logger.Printf("- converting %s to %s\n", input, output)
	c.logger.Printf("  - %s, %s, dithering %s, brightness %d%%, contrast %d%%\n", cfg.Layout, array.Describe(cfg.Format), cfg.Dither.Flag(), cfg.Brightness, cfg.Contrast)

	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := convert(cfg, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	c.logger.Printf("- image size: %dx%d pixels\n", res.SourceWidth, res.SourceHeight)
	if cfg.Width > 0 || cfg.Height > 0 {
		c.logger.Printf("  - scaled to %dx%d (%s)\n", res.Width, res.Height, cfg.Filter)
	}

	b := new(bytes.Buffer)
	if err := array.Write(b, res.Data, cfg.Format, c.header(cfg, res)); err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, b.Bytes(), 0644); err != nil {
		return nil, err
	}

	if cfg.Preview {
		p := bmp.Preview{
			Width:   res.Width,
			Height:  res.Height,
			Layout:  res.Layout,
			Palette: cfg.Palette,
			First:   cfg.First,
			Last:    cfg.Last,
		}
		path := PreviewPath(output)
		if err := bmp.EncodeFile(path, res.Data, p); err != nil {
			os.Remove(path)
			os.Remove(output)
			return nil, err
		}
		c.logger.Printf("- BMP preview saved: %s\n", path)
	}

	c.logger.Printf("- packed data size: %d bytes\n", len(res.Data))

	return res, nil
}
