package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DiffuseIntegrator shades the nearest hit once against the scene's light direction.
// There is no recursion and no sampling; the factor is not clamped, so
// surfaces facing away from the light go negative until the final clamp.
type DiffuseIntegrator struct{}

// NewDiffuseIntegrator creates a single-bounce diffuse integrator
func NewDiffuseIntegrator() *DiffuseIntegrator {
	return &DiffuseIntegrator{}
}

// RayColor returns color·(n·light) for a hit, the scene background otherwise
func (d *DiffuseIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	hit, isHit := sc.Intersect(ray)
	if !isHit {
		return sc.Background
	}

	sphere := &sc.Spheres[hit.Index]
	surface := sphere.Interaction(ray, hit.T)
	diffuseFactor := surface.OutwardNormal.Dot(sc.LightDirection)

	return sphere.Color.Multiply(diffuseFactor)
}

// FlatIntegrator returns the nearest sphere's color unshaded
type FlatIntegrator struct{}

// NewFlatIntegrator creates a nearest-hit color integrator
func NewFlatIntegrator() *FlatIntegrator {
	return &FlatIntegrator{}
}

// RayColor returns the hit sphere's color, the scene background otherwise
func (f *FlatIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	hit, isHit := sc.Intersect(ray)
	if !isHit {
		return sc.Background
	}
	return sc.Spheres[hit.Index].Color
}
