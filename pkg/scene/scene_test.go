package scene

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

func TestScene_IntersectNearest(t *testing.T) {
	s := &Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0)),
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.NewVec3(0, 1, 0)),
			geometry.NewSphere(core.NewVec3(0, 0, -20), 5, core.NewVec3(0, 0, 1)),
		},
	}

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		index     int
		distance  float64
	}{
		{"nearest of three", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), true, 1, 4},
		{"only the big one", core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1)), true, 2, 20 - 4},
		{"looking away", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), false, -1, 0},
		{"from inside the middle sphere", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)), true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := s.Intersect(tt.ray)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if hit.Index != tt.index {
				t.Errorf("Expected sphere %d, got %d", tt.index, hit.Index)
			}
			if math.Abs(hit.T-tt.distance) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", tt.distance, hit.T)
			}
		})
	}
}

func TestScene_IntersectEmpty(t *testing.T) {
	s := &Scene{}
	if _, isHit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); isHit {
		t.Error("Expected no hit in an empty scene")
	}
}

func TestCornellScene_EveryPrimaryRayHits(t *testing.T) {
	s := NewCornellScene()
	if got := s.GetPrimitiveCount(); got != 9 {
		t.Fatalf("Expected 9 spheres, got %d", got)
	}

	cfg := s.SamplingConfig
	if cfg.Width != 1024 || cfg.Height != 768 || cfg.SamplesPerPixel != 5000 || cfg.MaxDepth != 5 {
		t.Errorf("Unexpected default sampling config %+v", cfg)
	}

	// The camera sits inside the enclosing wall spheres
	for _, px := range [][2]int{{0, 0}, {384, 512}, {767, 1023}, {0, 1023}, {767, 0}} {
		ray := s.Camera.GetRay(px[0], px[1], cfg.Height, cfg.Width)
		if _, isHit := s.Intersect(ray); !isHit {
			t.Errorf("Expected pixel %v to hit a wall", px)
		}
	}
}

func TestCornellScene_OnlyLightEmits(t *testing.T) {
	s := NewCornellScene()
	for _, sp := range s.Spheres {
		emits := sp.Emission != (core.Vec3{})
		if emits != (sp.Label == "Light") {
			t.Errorf("Sphere %q: unexpected emission %v", sp.Label, sp.Emission)
		}
	}
}

func TestPinholeScene_CenterAndCorner(t *testing.T) {
	s := NewPinholeScene()
	cfg := s.SamplingConfig

	center := s.Camera.GetRay(cfg.Height/2, cfg.Width/2, cfg.Height, cfg.Width)
	if _, isHit := s.Intersect(center); !isHit {
		t.Error("Expected center ray to hit the sphere")
	}

	corner := s.Camera.GetRay(0, 0, cfg.Height, cfg.Width)
	if _, isHit := s.Intersect(corner); isHit {
		t.Error("Expected corner ray to miss the sphere")
	}

	if s.LightDirection != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected light direction +Z, got %v", s.LightDirection)
	}
}

func TestFlatScene_SphereCenters(t *testing.T) {
	s := NewFlatScene()
	cfg := s.SamplingConfig

	for i, sp := range s.Spheres {
		ray := s.Camera.GetRay(int(sp.Position.X), int(sp.Position.Y), cfg.Height, cfg.Width)
		hit, isHit := s.Intersect(ray)
		if !isHit || hit.Index != i {
			t.Errorf("Expected ray at sphere %d center to hit it, got hit=%t index=%d", i, isHit, hit.Index)
		}
	}

	if _, isHit := s.Intersect(s.Camera.GetRay(0, 0, cfg.Height, cfg.Width)); isHit {
		t.Error("Expected corner ray to miss")
	}
}

func TestSphereGridScene(t *testing.T) {
	s := NewSphereGridScene()
	if got := s.GetPrimitiveCount(); got != 103 {
		t.Fatalf("Expected sky, ground, sun and 100 grid spheres, got %d", got)
	}

	for _, sp := range s.Spheres[3:] {
		c := sp.Color
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Sphere %q color out of range: %v", sp.Label, c)
		}
		if sp.Emission != (core.Vec3{}) {
			t.Errorf("Grid sphere %q should not emit", sp.Label)
		}
	}

	// Looking at the grid center lands on a grid sphere or the ground
	cfg := s.SamplingConfig
	hit, isHit := s.Intersect(s.Camera.GetRay(cfg.Height/2, cfg.Width/2, cfg.Height, cfg.Width))
	if !isHit || hit.Index == 0 || hit.Index == 2 {
		t.Errorf("Expected the center ray to hit the ground or a grid sphere, got hit=%t index=%d", isHit, hit.Index)
	}
}

func TestOklchToRGB_Gray(t *testing.T) {
	// Zero chroma is achromatic
	c := oklchToRGB(0.6, 0, 123)
	if math.Abs(c.X-c.Y) > 1e-6 || math.Abs(c.Y-c.Z) > 1e-6 {
		t.Errorf("Expected gray, got %v", c)
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	cfg := s.SamplingConfig

	// The center of the image looks at the center sphere
	hit, isHit := s.Intersect(s.Camera.GetRay(cfg.Height/2, cfg.Width/2, cfg.Height, cfg.Width))
	if !isHit || s.Spheres[hit.Index].Label != "Center" {
		t.Errorf("Expected the center sphere at the image center, got hit=%t index=%d", isHit, hit.Index)
	}

	// Rays into the sky hit the dome instead of escaping
	if _, isHit := s.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))); !isHit {
		t.Error("Expected the sky dome to catch upward rays")
	}
}
