// Package imageio turns a rendered pixel buffer into image files
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Format names an output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// gamma applied when quantising linear radiance to 8 bits
const gamma = 2.2

// ToInt maps a linear channel value to [0,255] with gamma 2.2 and rounding
func ToInt(x float64) int {
	v := int(math.Pow(core.Clamp(x, 0, 1), 1/gamma)*255 + 0.5)
	return max(0, min(255, v))
}

// EncodePPM writes the buffer as ASCII PPM (P3), rows top to bottom, one "r g b " triple per pixel
func EncodePPM(w io.Writer, buf *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return err
	}
	for _, c := range buf.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d ", ToInt(c.X), ToInt(c.Y), ToInt(c.Z)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ToImage converts the buffer to an RGBA image using the same channel mapping as the PPM encoder
func ToImage(buf *renderer.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for row := 0; row < buf.Height; row++ {
		for col := 0; col < buf.Width; col++ {
			c := buf.At(row, col)
			img.SetRGBA(col, row, color.RGBA{
				R: uint8(ToInt(c.X)),
				G: uint8(ToInt(c.Y)),
				B: uint8(ToInt(c.Z)),
				A: 255,
			})
		}
	}
	return img
}

// EncodePNG writes the buffer as a PNG image
func EncodePNG(w io.Writer, buf *renderer.PixelBuffer) error {
	return png.Encode(w, ToImage(buf))
}

// Encode writes the buffer in the given format
func Encode(w io.Writer, buf *renderer.PixelBuffer, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, buf)
	case FormatPNG:
		return EncodePNG(w, buf)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to PPM
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", name)
	}
}

// WriteFile encodes the buffer to path, creating parent directories as needed.
// Failures are logged and returned; the buffer itself is never modified.
func WriteFile(path string, buf *renderer.PixelBuffer, logger core.Logger) error {
	if err := writeFile(path, buf); err != nil {
		logger.Printf("Error saving image: %v\n", err)
		return err
	}

	logger.Printf("Render saved as %s\n", path)
	return nil
}

func writeFile(path string, buf *renderer.PixelBuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, buf, FormatFromPath(path)); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
