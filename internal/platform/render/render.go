package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"os"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// DefaultWidth is the number of columns used when none is configured.
const DefaultWidth = 64

// ramp orders characters from darkest to lightest.
const ramp = "@%#*+=-:. "

// ImageRenderer draws the image stored at path onto w.
type ImageRenderer interface {
	Render(ctx context.Context, path string, w io.Writer) error
}

// ASCIIRenderer renders images as ASCII art. It understands PNG, JPEG, GIF,
// BMP and WebP.
type ASCIIRenderer struct {
	width  int
	logger *slog.Logger
}

var _ ImageRenderer = (*ASCIIRenderer)(nil)

// NewASCIIRenderer creates a renderer producing lines of at most width
// characters. A non-positive width selects DefaultWidth.
func NewASCIIRenderer(width int, logger *slog.Logger) *ASCIIRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &ASCIIRenderer{
		width:  width,
		logger: logger.With("component", "ascii_renderer"),
	}
}

// Render decodes the file at path and writes its ASCII rendering to w.
func (r *ASCIIRenderer) Render(ctx context.Context, path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	r.logger.DebugContext(ctx, "decoded image",
		"path", path,
		"format", format,
		"bounds", img.Bounds().String())

	art, err := r.toASCII(img)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, art); err != nil {
		return fmt.Errorf("failed to write rendering: %w", err)
	}
	return nil
}

// toASCII scales img down to a grid of at most r.width columns and writes one
// character per grid cell. The grid has half as many rows per column step
// since terminal cells are about twice as tall as wide.
func (r *ASCIIRenderer) toASCII(img image.Image) (string, error) {
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return "", ErrEmptyImage
	}

	cols := min(r.width, src.Dx())
	rows := max(src.Dy()*cols/(src.Dx()*2), 1)

	grid := image.NewRGBA(image.Rect(0, 0, cols, rows))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, src, draw.Src, nil)

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sb.WriteByte(shade(grid.At(x, y).RGBA()))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// shade maps a pixel to a ramp character using Rec. 601 luma. Fully
// transparent pixels render as the lightest character.
func shade(r, g, b, a uint32) byte {
	if a == 0 {
		return ramp[len(ramp)-1]
	}
	luma := (299*r + 587*g + 114*b) / 1000 // 0..0xffff
	idx := int(luma) * (len(ramp) - 1) / 0xffff
	return ramp[idx]
}
