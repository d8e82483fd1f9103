package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct samplers.
type Integrator interface {
	// RayColor estimates the light arriving along ray
	RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3
}

// New returns the integrator matching the scene's shading
func New(sc *scene.Scene) (Integrator, error) {
	switch sc.Shading {
	case scene.ShadingPath, "":
		return NewPathTracingIntegrator(sc.SamplingConfig), nil
	case scene.ShadingDiffuse:
		return NewDiffuseIntegrator(), nil
	case scene.ShadingFlat:
		return NewFlatIntegrator(), nil
	default:
		return nil, fmt.Errorf("no integrator for shading %q", sc.Shading)
	}
}
