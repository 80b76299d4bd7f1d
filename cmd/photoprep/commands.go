package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/photo"
	"github.com/urfave/cli/v2"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check an image's type and size against the upload limits",
	ArgsUsage: "IMAGE",
	Action: func(c *cli.Context) error {
		f, err := openImage(c)
		if err != nil {
			return err
		}
		if err := photo.Validate(f); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "ok: %s, %d bytes\n", f.Type(), f.Size())
		return nil
	},
}

var compressCommand = &cli.Command{
	Name:      "compress",
	Usage:     "Resize and re-encode an image as a size-bounded JPEG data URL",
	ArgsUsage: "IMAGE",
	Flags: []cli.Flag{
		&cli.Float64Flag{
			Name:  "max-size-kb",
			Usage: "Target maximum encoded size in KB",
			Value: photo.DefaultMaxSizeKB,
		},
		&cli.IntFlag{
			Name:  "max-width",
			Usage: "Maximum output width in pixels",
			Value: photo.DefaultMaxWidth,
		},
		&cli.Float64Flag{
			Name:  "quality",
			Usage: "Starting JPEG quality in [0,1]",
			Value: photo.DefaultQuality,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Write the data URL to this file instead of stdout",
		},
	},
	Action: func(c *cli.Context) error {
		f, err := openImage(c)
		if err != nil {
			return err
		}
		if err := photo.Validate(f); err != nil {
			return err
		}

		p, err := photo.Prepare(c.Context, f, photo.Options{
			MaxSizeKB: c.Float64("max-size-kb"),
			MaxWidth:  c.Int("max-width"),
			Quality:   c.Float64("quality"),
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.ErrWriter, "%dx%d at quality %.1f, ~%.1fKB after %d attempt(s)\n",
			p.Width, p.Height, p.Quality, p.SizeKB, len(p.Attempts))

		if out := c.String("out"); out != "" {
			return os.WriteFile(out, []byte(p.DataURL), 0o644)
		}
		_, err = fmt.Fprintln(c.App.Writer, p.DataURL)
		return err
	},
}

var estimateCommand = &cli.Command{
	Name:      "estimate",
	Usage:     "Print the decoded size in KB of a base64 or data URL file",
	ArgsUsage: "FILE",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("expected exactly one FILE argument", 2)
		}
		data, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%.2f\n", photo.EstimateEncodedSize(strings.TrimSpace(string(data))))
		return nil
	},
}

func openImage(c *cli.Context) (photo.File, error) {
	if c.NArg() != 1 {
		return nil, cli.Exit("expected exactly one IMAGE argument", 2)
	}
	return photo.FromPath(c.Args().First())
}
