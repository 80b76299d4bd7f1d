package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSizeKB = 500
	DefaultMaxWidth  = 1920
	DefaultQuality   = 0.8

	// Quality ladder, in JPEG percent.
	qualityStep  = 10
	qualityFloor = 10

	// MaxPixels bounds the decoded canvas; larger images are rejected from
	// their header before any pixel allocation.
	MaxPixels = 50_000_000

	// Encoded length divided by this approximates the binary size.
	base64Overhead = 1.37

	jpegDataURLPrefix = "data:image/jpeg;base64,"
)

// Options tunes Compress. Zero values select the defaults.
type Options struct {
	MaxSizeKB float64
	MaxWidth  int
	// Quality is the starting JPEG quality in [0,1].
	Quality float64
}

func (o Options) withDefaults() Options {
	if o.MaxSizeKB <= 0 {
		o.MaxSizeKB = DefaultMaxSizeKB
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	return o
}

// Prepared is a compressed image and the parameters that produced it.
type Prepared struct {
	DataURL  string
	Width    int
	Height   int
	Quality  float64
	Attempts []int
	SizeKB   float64
}

// Compress decodes f, caps its width, and re-encodes it as a JPEG data URL no
// larger than opts.MaxSizeKB.
func Compress(ctx context.Context, f File, opts Options) (string, error) {
	p, err := Prepare(ctx, f, opts)
	if err != nil {
		return "", err
	}
	return p.DataURL, nil
}

// Prepare is Compress with the output dimensions and ladder details attached.
func Prepare(ctx context.Context, f File, opts Options) (*Prepared, error) {
	opts = opts.withDefaults()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readAll(f)
	if err != nil {
		return nil, err
	}

	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(hdr.Width)*int64(hdr.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, hdr.Width, hdr.Height, MaxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if format == "jpeg" {
		src = applyOrientation(src, exifOrientation(data))
	}

	width, height := ScaledSize(src.Bounds().Dx(), src.Bounds().Dy(), opts.MaxWidth)
	canvas := render(src, width, height)

	quality := qualityPercent(opts.Quality)
	dataURL, err := encodeDataURL(canvas, quality)
	if err != nil {
		return nil, err
	}
	attempts := []int{quality}

	for encodedKB(dataURL) > opts.MaxSizeKB && quality > qualityFloor {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		quality = max(quality-qualityStep, qualityFloor)
		if dataURL, err = encodeDataURL(canvas, quality); err != nil {
			return nil, err
		}
		attempts = append(attempts, quality)
	}

	size := encodedKB(dataURL)
	if size > opts.MaxSizeKB {
		return nil, &SizeLimitError{LimitKB: opts.MaxSizeKB, Attempts: attempts}
	}

	slog.Debug("image compressed",
		"source_bytes", len(data),
		"source_format", format,
		"width", width,
		"height", height,
		"quality", quality,
		"attempts", len(attempts),
		"size_kb", size,
	)

	return &Prepared{
		DataURL:  dataURL,
		Width:    width,
		Height:   height,
		Quality:  float64(quality) / 100,
		Attempts: attempts,
		SizeKB:   size,
	}, nil
}

// EstimateEncodedSize returns the decoded size in KB of a base64 string,
// ignoring any data-URL header.
func EstimateEncodedSize(b64 string) float64 {
	payload := b64
	if parts := strings.Split(b64, ","); len(parts) > 1 && parts[1] != "" {
		payload = parts[1]
	}
	return float64(len(payload)) * 0.75 / 1024
}

// ScaledSize caps width at maxWidth and scales height to keep the aspect ratio.
// Images already narrower than maxWidth keep their size.
func ScaledSize(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	h := int(int64(height) * int64(maxWidth) / int64(width))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

func readAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return data, nil
}

// render scales src onto an opaque white canvas; JPEG has no alpha channel.
func render(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func encodeDataURL(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return jpegDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func encodedKB(dataURL string) float64 {
	return float64(len(dataURL)) / base64Overhead / 1024
}

func qualityPercent(q float64) int {
	p := int(math.Round(q * 100))
	return min(max(p, 1), 100)
}
