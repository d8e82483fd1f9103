package integrator

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestDiffuseIntegrator_PinholeScene(t *testing.T) {
	sc := scene.NewPinholeScene()
	integrator := NewDiffuseIntegrator()
	cfg := sc.SamplingConfig

	tests := []struct {
		name     string
		row, col int
		expected core.Vec3
	}{
		{"center faces the light", cfg.Height / 2, cfg.Width / 2, core.NewVec3(0.25, 0.5, 0.75)},
		{"top left corner misses", 0, 0, core.NewVec3(0.25, 0.25, 0.25)},
		{"bottom right corner misses", cfg.Height - 1, cfg.Width - 1, core.NewVec3(0.25, 0.25, 0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := sc.Camera.GetRay(tt.row, tt.col, cfg.Height, cfg.Width)
			got := integrator.RayColor(ray, sc, nil)
			if !vecClose(got, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDiffuseIntegrator_DimsTowardsRim(t *testing.T) {
	sc := scene.NewPinholeScene()
	integrator := NewDiffuseIntegrator()
	cfg := sc.SamplingConfig

	center := integrator.RayColor(sc.Camera.GetRay(cfg.Height/2, cfg.Width/2, cfg.Height, cfg.Width), sc, nil)
	offCenter := integrator.RayColor(sc.Camera.GetRay(cfg.Height/2, cfg.Width/2+100, cfg.Height, cfg.Width), sc, nil)

	if offCenter.Z >= center.Z || offCenter.Z <= 0 {
		t.Errorf("Expected off-center shading in (0, %f), got %f", center.Z, offCenter.Z)
	}
}

func TestFlatIntegrator_FlatScene(t *testing.T) {
	sc := scene.NewFlatScene()
	integrator := NewFlatIntegrator()
	cfg := sc.SamplingConfig

	tests := []struct {
		name     string
		row, col int
		expected core.Vec3
	}{
		{"first sphere center", 212, 384, sc.Spheres[0].Color},
		{"second sphere center", 590, 884, sc.Spheres[1].Color},
		{"inside first sphere rim", 212 + 140, 384, sc.Spheres[0].Color},
		{"corner misses", 0, 0, core.NewVec3(0.5, 0.5, 0.5)},
		{"between spheres", 400, 634, core.NewVec3(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := sc.Camera.GetRay(tt.row, tt.col, cfg.Height, cfg.Width)
			got := integrator.RayColor(ray, sc, nil)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
