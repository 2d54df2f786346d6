package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ptodt/xbpp"
	"github.com/ptodt/xbpp/array"
	"github.com/ptodt/xbpp/bmp"
	"github.com/ptodt/xbpp/pack"
	"github.com/ptodt/xbpp/reduce"
	"github.com/urfave/cli/v2"
)

const defaultOutput = array.DefaultName

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var conversionFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "bpp",
		Value: 4,
		Usage: "output bits per pixel, 1 or 4",
	},
	&cli.BoolFlag{
		Name:  "vertical",
		Usage: "scan columns instead of rows",
	},
	&cli.BoolFlag{
		Name:    "big-endian",
		Aliases: []string{"b"},
		Usage:   "put the first pixel of each byte in the low bits",
	},
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		EnvVars: []string{"XBPP_FORMAT"},
		Value:   "c",
		Usage:   "output format: " + strings.Join(array.FormatNames, ", "),
	},
	&cli.BoolFlag{
		Name:    "progmem",
		Aliases: []string{"p"},
		Usage:   "add the PROGMEM attribute to C arrays",
	},
	&cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Value:   array.DefaultName,
		Usage:   "array name",
	},
	&cli.IntFlag{
		Name:  "width",
		Usage: "scale the input to this width before conversion",
	},
	&cli.IntFlag{
		Name:  "height",
		Usage: "scale the input to this height before conversion",
	},
	&cli.StringFlag{
		Name:  "filter",
		Value: "nearest",
		Usage: "scaling filter: " + strings.Join(reduce.FilterNames(), ", "),
	},
	&cli.StringFlag{
		Name:    "dither",
		Aliases: []string{"d"},
		Value:   "none",
		Usage:   "1bpp dithering: " + strings.Join(reduce.MethodNames(), ", "),
	},
	&cli.IntFlag{
		Name:  "brightness",
		Value: reduce.Neutral,
		Usage: "1bpp brightness in percent, 50 is neutral",
	},
	&cli.IntFlag{
		Name:  "contrast",
		Value: reduce.Neutral,
		Usage: "1bpp contrast in percent, 50 is neutral",
	},
	&cli.BoolFlag{
		Name:    "invert",
		Aliases: []string{"i"},
		Usage:   "invert the output",
	},
	&cli.BoolFlag{
		Name:  "bmp",
		Usage: "also write a BMP preview next to the output",
	},
	&cli.StringFlag{
		Name:    "palette",
		EnvVars: []string{"XBPP_PALETTE"},
		Value:   "bw",
		Usage:   "preview palette: bw, gray, green, portfolio, oled, custom",
	},
	&cli.StringFlag{
		Name:  "first",
		Value: "0,0,0",
		Usage: "first color of the custom palette as r,g,b",
	},
	&cli.StringFlag{
		Name:  "last",
		Value: "255,255,255",
		Usage: "last color of the custom palette as r,g,b",
	},
}

func config(c *cli.Context) (xbpp.Config, error) {
	cfg := xbpp.DefaultConfig()

	cfg.Depth = pack.Depth(c.Int("bpp"))
	if c.Bool("vertical") {
		cfg.Direction = pack.Vertical
	}
	if c.Bool("big-endian") {
		cfg.Order = pack.LowFirst
	}

	var err error
	if cfg.Format, err = array.ParseFormat(c.String("format"), c.String("name"), c.Bool("progmem")); err != nil {
		return cfg, err
	}
	cfg.Width = c.Int("width")
	cfg.Height = c.Int("height")
	if cfg.Filter, err = reduce.ParseFilter(c.String("filter")); err != nil {
		return cfg, err
	}
	if cfg.Dither, err = reduce.ParseMethod(c.String("dither")); err != nil {
		return cfg, err
	}
	cfg.Brightness = c.Int("brightness")
	cfg.Contrast = c.Int("contrast")
	cfg.Invert = c.Bool("invert")

	cfg.Preview = c.Bool("bmp")
	if cfg.Palette, err = bmp.ParseVariant(c.String("palette")); err != nil {
		return cfg, err
	}
	if cfg.First, err = bmp.ParseRGB(c.String("first")); err != nil {
		return cfg, err
	}
	if cfg.Last, err = bmp.ParseRGB(c.String("last")); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func newConverter(c *cli.Context) (*xbpp.Converter, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := config(c)
	if err != nil {
		return nil, err
	}

	return xbpp.New(cfg, logger)
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		cli.ShowCommandHelpAndExit(c, "convert", 1)
	}

	conv, err := newConverter(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	output := c.Args().Get(1)
	if output == "" {
		output = defaultOutput + conv.Config().Format.Extension()
	}

	res, err := conv.ConvertFile(c.Args().First(), output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "%s: %dx%d, %d bytes\n", output, res.Width, res.Height, len(res.Data))

	return nil
}

func batch(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, "batch", 1)
	}

	conv, err := newConverter(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := conv.Batch(c.Context, c.String("dir"), c.Args().Slice()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bmp2xbpp"
	app.Usage = "Convert BMP images to packed 1bpp/4bpp arrays"
	app.Version = xbpp.Version

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single BMP file",
			Description: "Writes the packed data to OUTPUT, or image_data with the format's extension.",
			ArgsUsage:   "INPUT_BMP [OUTPUT]",
			Flags:       conversionFlags,
			Action:      convert,
		},
		{
			Name:        "batch",
			Usage:       "Convert several BMP files concurrently",
			Description: "Each array is named after its input file unless --name is given.",
			ArgsUsage:   "INPUT_BMP...",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "dir",
					Value: ".",
					Usage: "output directory",
				},
			}, conversionFlags...),
			Action: batch,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
