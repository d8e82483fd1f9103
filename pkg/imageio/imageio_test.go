package imageio

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input    float64
		expected int
	}{
		{0.0, 0},
		{1.0, 255},
		{-0.5, 0},
		{7.0, 255},
		{0.5, 186},  // 0.5^(1/2.2) = 0.7297 -> 186.6
		{0.25, 136}, // 0.25^(1/2.2) = 0.5325 -> 136.3
	}

	for _, tt := range tests {
		if got := ToInt(tt.input); got != tt.expected {
			t.Errorf("ToInt(%v): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestToInt_Monotonic(t *testing.T) {
	prev := ToInt(0)
	for i := 1; i <= 1000; i++ {
		v := ToInt(float64(i) / 1000)
		if v < prev || v > 255 {
			t.Fatalf("ToInt not monotonic at %d: %d after %d", i, v, prev)
		}
		prev = v
	}
}

func TestEncodePPM(t *testing.T) {
	buf := renderer.NewPixelBuffer(2, 1)
	buf.Set(0, 0, core.NewVec3(1, 0, 0.5))
	buf.Set(0, 1, core.NewVec3(0.25, 1, 0))

	var out bytes.Buffer
	if err := EncodePPM(&out, buf); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 186 136 255 0 "
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}

func TestEncodePNG_MatchesPPMChannels(t *testing.T) {
	buf := renderer.NewPixelBuffer(3, 2)
	buf.Set(1, 2, core.NewVec3(0.5, 0.25, 1))

	var out bytes.Buffer
	if err := EncodePNG(&out, buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", b)
	}

	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 186 || g>>8 != 136 || b>>8 != 255 {
		t.Errorf("Expected (186,136,255), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("PNG"); err != nil || f != FormatPNG {
		t.Errorf("Expected png, got %q, %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("Expected error for gif")
	}
	if FormatFromPath("out/a.png") != FormatPNG || FormatFromPath("image.ppm") != FormatPPM {
		t.Error("Unexpected format from path")
	}
}

func TestWriteFile(t *testing.T) {
	buf := renderer.NewPixelBuffer(1, 1)
	buf.Set(0, 0, core.NewVec3(1, 1, 1))
	logger := &recordingLogger{}

	path := filepath.Join(t.TempDir(), "nested", "image.ppm")
	if err := WriteFile(path, buf, logger); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "P3\n1 1\n255\n255 255 255 " {
		t.Errorf("Unexpected file contents %q", data)
	}
}

func TestWriteFile_FailureIsLoggedAndReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	buf := renderer.NewPixelBuffer(1, 1)
	buf.Set(0, 0, core.NewVec3(0.5, 0.5, 0.5))
	logger := &recordingLogger{}

	// A regular file in place of a directory makes creation fail
	err := WriteFile(filepath.Join(blocker, "image.ppm"), buf, logger)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "Error saving image") {
		t.Errorf("Expected the failure to be logged, got %v", logger.lines)
	}
	if buf.At(0, 0) != core.NewVec3(0.5, 0.5, 0.5) {
		t.Error("Buffer changed after a failed write")
	}
}
