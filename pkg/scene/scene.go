package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Shading selects how a scene's rays are turned into colors
type Shading string

const (
	// ShadingPath is the recursive Monte-Carlo path tracer
	ShadingPath Shading = "path"
	// ShadingDiffuse colors the nearest hit by a single fixed light direction
	ShadingDiffuse Shading = "diffuse"
	// ShadingFlat colors the nearest hit with the sphere's own color
	ShadingFlat Shading = "flat"
)

// farDistance is larger than any hit the scenes can produce
const farDistance = 1e21

// Scene contains all the elements needed for rendering.
// A scene must not be modified once a render using it has started.
type Scene struct {
	Name           string
	Shading        Shading
	Spheres        []geometry.Sphere
	Camera         core.Camera
	Background     core.Vec3 // Miss color for the single-bounce shadings
	LightDirection core.Vec3 // Unit direction towards the light for diffuse shading
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width                     int   // Image width
	Height                    int   // Image height
	SamplesPerPixel           int   // Number of rays per pixel
	MaxDepth                  int   // Depth past which only emission is returned
	Seed                      int64 // Base random seed; 0 picks one at render time
	RussianRoulette           bool  // Opt-in probabilistic path termination
	RussianRouletteMinBounces int   // Minimum bounces before Russian Roulette can activate
}

// DefaultSamplingConfig returns the reference render settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:                     1024,
		Height:                    768,
		SamplesPerPixel:           5000,
		MaxDepth:                  5,
		RussianRouletteMinBounces: 3,
	}
}

// Hit identifies the nearest sphere along a ray
type Hit struct {
	T     float64 // Distance along the ray
	Index int     // Index into Scene.Spheres
}

// Intersect returns the nearest sphere hit by ray, scanning every sphere
func (s *Scene) Intersect(ray core.Ray) (Hit, bool) {
	nearest := Hit{T: farDistance, Index: -1}

	for i := range s.Spheres {
		if t, isHit := s.Spheres[i].Hit(ray); isHit && t < nearest.T {
			nearest = Hit{T: t, Index: i}
		}
	}

	return nearest, nearest.T < farDistance
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}
