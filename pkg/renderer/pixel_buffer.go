package renderer

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// PixelBuffer holds the final color of every pixel in row-major order
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewPixelBuffer creates a zero-filled buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color stored at (row, col)
func (pb *PixelBuffer) At(row, col int) core.Vec3 {
	return pb.Pixels[row*pb.Width+col]
}

// Set stores the color at (row, col)
func (pb *PixelBuffer) Set(row, col int, c core.Vec3) {
	pb.Pixels[row*pb.Width+col] = c
}
