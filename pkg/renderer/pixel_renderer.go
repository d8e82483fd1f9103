package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// PixelRenderer estimates the color of individual pixels using an integrator
type PixelRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	samples    int
}

// NewPixelRenderer creates a pixel renderer taking samplesPerPixel trials per pixel
func NewPixelRenderer(sc *scene.Scene, integratorInst integrator.Integrator, samplesPerPixel int) *PixelRenderer {
	return &PixelRenderer{
		scene:      sc,
		integrator: integratorInst,
		samples:    samplesPerPixel,
	}
}

// SamplesPerPixel returns the number of trials taken for every pixel
func (pr *PixelRenderer) SamplesPerPixel() int {
	return pr.samples
}

// RenderPixel averages the integrator's estimate over all trials and clamps each channel to [0,1].
// Every trial traces the same primary ray; only the bounce directions differ.
func (pr *PixelRenderer) RenderPixel(row, col int, sampler core.Sampler) core.Vec3 {
	cfg := pr.scene.SamplingConfig
	ray := pr.scene.Camera.GetRay(row, col, cfg.Height, cfg.Width)
	weight := 1.0 / float64(pr.samples)

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < pr.samples; sample++ {
		colorAccum = colorAccum.Add(pr.integrator.RayColor(ray, pr.scene, sampler).Multiply(weight))
	}

	return colorAccum.Clamp(0.0, 1.0)
}
