package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	red, green, blue := core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		width    int
		height   int
		pixels   []core.Vec3
		expected float64
	}{
		// Rec. 709 weights sum to one, so the primaries plus black average to 1/4
		{"primaries and black", 2, 2, []core.Vec3{red, green, blue, {}}, 0.25},
		{"single white", 1, 1, []core.Vec3{core.NewVec3(1, 1, 1)}, 1.0},
		{"uniform gray row", 3, 1, []core.Vec3{core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5)}, 0.5},
		{"empty", 0, 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewPixelBuffer(tt.width, tt.height)
			copy(buf.Pixels, tt.pixels)

			if got := CalculateAverageLuminance(buf); math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestPixelBuffer_RowMajor(t *testing.T) {
	buf := NewPixelBuffer(3, 2)
	for _, p := range buf.Pixels {
		if p != (core.Vec3{}) {
			t.Fatalf("Expected zero-filled buffer, found %v", p)
		}
	}

	buf.Set(1, 2, core.NewVec3(0.1, 0.2, 0.3))
	if buf.Pixels[5] != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected (1,2) at index 5, got %v", buf.Pixels)
	}
	if buf.At(1, 2) != buf.Pixels[5] {
		t.Errorf("At disagrees with Set")
	}
}
