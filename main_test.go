package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

func TestParseFlags(t *testing.T) {
	config, _ := parseFlags([]string{"-scene", "pinhole", "-width", "64", "-samples", "8", "-seed", "3", "-rr", "-format", "png"})

	if config.SceneType != "pinhole" || config.Width != 64 || config.Samples != 8 || config.Seed != 3 {
		t.Errorf("Unexpected config %+v", config)
	}
	if !config.Roulette || config.Format != "png" {
		t.Errorf("Expected rr and png, got %+v", config)
	}

	defaults, _ := parseFlags(nil)
	if defaults.SceneType != "cornell" || defaults.Format != "ppm" || defaults.NumWorkers != 0 {
		t.Errorf("Unexpected defaults %+v", defaults)
	}
}

func TestApplyOverrides(t *testing.T) {
	sc := scene.NewCornellScene()
	applyOverrides(sc, Config{Width: 32, Samples: 2, MaxDepth: 3, Seed: 9, Roulette: true})

	cfg := sc.SamplingConfig
	if cfg.Width != 32 || cfg.Height != 768 {
		t.Errorf("Expected only width overridden, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel != 2 || cfg.MaxDepth != 3 || cfg.Seed != 9 || !cfg.RussianRoulette {
		t.Errorf("Unexpected sampling config %+v", cfg)
	}

	untouched := scene.NewCornellScene()
	applyOverrides(untouched, Config{})
	if untouched.SamplingConfig != scene.DefaultSamplingConfig() {
		t.Errorf("Expected zero values to keep scene defaults, got %+v", untouched.SamplingConfig)
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "cornell", filepath.Join("output", "cornell")},
		{"json file path", "scenes/twin-lights.json", filepath.Join("output", "twin-lights")},
		{"scene file by name", "twin-lights", filepath.Join("output", "twin-lights")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	got := outputPath(Config{SceneType: "flat"}, "png", now)
	if want := filepath.Join("output", "flat", "render_20240305_140709.png"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := outputPath(Config{SceneType: "flat", Output: "x.ppm"}, "png", now); got != "x.ppm" {
		t.Errorf("Expected explicit output to win, got %q", got)
	}
}

func TestRun_RendersPinhole(t *testing.T) {
	output := filepath.Join(t.TempDir(), "pinhole.ppm")
	config := Config{SceneType: "pinhole", Width: 20, Height: 20, Seed: 1, NumWorkers: 2, Output: output, Format: "ppm"}

	if err := run(context.Background(), config, silentLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n20 20\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:min(len(data), 20)]))
	}
	if fields := strings.Fields(string(data)); len(fields) != 4+20*20*3 {
		t.Errorf("Expected %d PPM fields, got %d", 4+20*20*3, len(fields))
	}
}

func TestRun_SaveScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.json")
	config := Config{SceneType: "flat", Samples: 2, SaveScene: path, Format: "ppm"}

	if err := run(context.Background(), config, silentLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sc, err := scene.LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to reload saved scene: %v", err)
	}
	if sc.SamplingConfig.SamplesPerPixel != 2 || sc.Shading != scene.ShadingFlat {
		t.Errorf("Saved scene lost overrides: %+v", sc.SamplingConfig)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"unknown scene", Config{SceneType: "nonexistent", Format: "ppm"}},
		{"bad format", Config{SceneType: "pinhole", Format: "gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.config, silentLogger{}); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}
