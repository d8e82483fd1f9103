package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing over diffuse spheres
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single primary ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Radiance(ray, sc, sampler, 0)
}

// Radiance estimates outgoing light along ray at the given recursion depth.
// Past MaxDepth the hit sphere's emission is returned with no reflected light,
// which truncates (and biases) the light transport series.
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, sc *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := sc.Intersect(ray)
	if !isHit {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	sphere := &sc.Spheres[hit.Index]
	if depth > pt.config.MaxDepth {
		return sphere.Emission
	}

	// Apply Russian Roulette termination
	shouldTerminate, rrCompensation := pt.ApplyRussianRoulette(depth, sphere.Color, sampler.Get1D)
	if shouldTerminate {
		return sphere.Emission
	}

	sample := sampler.Get2D()

	// Normal faces against the incoming ray
	surface := sphere.Interaction(ray, hit.T)
	direction := core.SampleCosineHemisphere(surface.Normal, sample)

	incoming := pt.Radiance(core.NewRay(surface.Point, direction), sc, sampler, depth+1)

	// Cosine-weighted sampling cancels the cosine term, and the 1/π of the
	// diffuse BRDF is folded into Color
	reflected := sphere.Color.MultiplyVec(incoming).Multiply(rrCompensation)
	return sphere.Emission.Add(reflected)
}

// ApplyRussianRoulette determines if a path should be terminated and returns the compensation factor.
// It is a no-op unless RussianRoulette is enabled in the sampling config.
// Returns (shouldTerminate, compensationFactor)
func (pt *PathTracingIntegrator) ApplyRussianRoulette(depth int, color core.Vec3, draw func() float64) (bool, float64) {
	if !pt.config.RussianRoulette || depth < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	// Conservative bounds: survivalProb between 0.5 and 0.95
	survivalProb := math.Min(0.95, math.Max(0.5, color.Luminance()))

	if draw() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
