/*
Package xbpp converts uncompressed 24/32-bit BMP images into packed 1bpp or
4bpp grayscale data for embedding in firmware, and can write a BMP preview of
the reduced result.
*/
package xbpp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ptodt/xbpp/array"
	"github.com/ptodt/xbpp/bmp"
	"github.com/ptodt/xbpp/pack"
	"github.com/ptodt/xbpp/reduce"
)

// Version is written into generated file headers.
var Version = "1.0.0"

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every conversion option. It is built once, validated and then
// only ever passed by value.
type Config struct {
	pack.Layout

	// Width and Height scale the source before reduction; zero keeps the
	// source size or, when only one is given, the aspect ratio.
	Width  int
	Height int
	Filter reduce.Filter

	Dither     reduce.Method
	Brightness int
	Contrast   int
	Invert     bool

	Format array.Format

	Preview     bool
	Palette     bmp.Variant
	First, Last bmp.RGB
}

// DefaultConfig returns 4bpp, horizontal, little endian output as a C array
// named image_data with neutral brightness and contrast.
func DefaultConfig() Config {
	return Config{
		Layout: pack.Layout{
			Depth:     pack.FourBit,
			Direction: pack.Horizontal,
			Order:     pack.HighFirst,
		},
		Dither:     reduce.None,
		Brightness: reduce.Neutral,
		Contrast:   reduce.Neutral,
		Format:     array.CArray{Name: array.DefaultName},
		Palette:    bmp.BlackWhite,
	}
}

func percent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %d%% outside 0-100", ErrInvalidConfig, name, v)
	}
	return nil
}

// Validate checks that c describes a conversion that can be performed.
func (c Config) Validate() error {
	if !c.Depth.Valid() {
		return fmt.Errorf("%w: unsupported depth %d", ErrInvalidConfig, c.Depth)
	}
	if err := percent("brightness", c.Brightness); err != nil {
		return err
	}
	if err := percent("contrast", c.Contrast); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if !c.Filter.Valid() {
		return fmt.Errorf("%w: unknown scaling filter", ErrInvalidConfig)
	}
	if c.Dither.Flag() == "" {
		return fmt.Errorf("%w: unknown dithering method", ErrInvalidConfig)
	}
	if c.Format == nil {
		return fmt.Errorf("%w: no output format", ErrInvalidConfig)
	}
	return nil
}

func (c Config) options() reduce.Options {
	return reduce.Options{
		Depth:      c.Depth,
		Dither:     c.Dither,
		Brightness: c.Brightness,
		Contrast:   c.Contrast,
	}
}

// Converter runs conversions with a fixed configuration.
type Converter struct {
	cfg    Config
	logger *log.Logger
	now    func() time.Time
}

// New returns a Converter for cfg. A nil logger discards progress output.
func New(cfg Config, logger *log.Logger) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Config returns the configuration of c.
func (c *Converter) Config() Config {
	return c.cfg
}
