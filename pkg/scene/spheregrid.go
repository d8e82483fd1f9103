package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)

	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a grid of diffuse spheres on a ground sphere,
// lit by a warm sun sphere under a faint sky dome
func NewSphereGridScene() *Scene {
	const (
		gridSize   = 10
		targetArea = 9.0 // grid spans roughly 9x9 units around (4.5, 0, 4.5)
	)

	target := core.NewVec3(4.5, 0.8, 4.5)
	eye := core.NewVec3(4.5, 6, 18)
	camera := geometry.NewPinholeCamera(
		core.NewRay(eye, target.Subtract(eye).Normalize()),
		core.NewVec3(1, 0, 0),
		2.0,
	)

	config := DefaultSamplingConfig()
	config.Width = 400
	config.Height = 400
	config.SamplesPerPixel = 64

	s := &Scene{
		Name:           "spheregrid",
		Shading:        ShadingPath,
		Camera:         camera,
		SamplingConfig: config,
	}

	s.Spheres = append(s.Spheres,
		geometry.NewEmissiveSphere(core.NewVec3(4.5, 0, 4.5), 1e4, core.NewVec3(0.3, 0.42, 0.6), core.NewVec3(0, 0, 0)),
		geometry.NewSphere(core.NewVec3(4.5, -1e5, 4.5), 1e5, core.NewVec3(0.5, 0.5, 0.5)),
		geometry.NewEmissiveSphere(core.NewVec3(20, 25, 20), 8, core.NewVec3(12.0, 11.5, 10.0), core.NewVec3(0, 0, 0)),
	)
	s.Spheres[0].Label = "Sky"
	s.Spheres[1].Label = "Ground"
	s.Spheres[2].Label = "Sun"

	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := 0.05 + (float64(j)/float64(gridSize-1))*0.20
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			sphere := geometry.NewSphere(core.NewVec3(x, radius, z), radius, oklchToRGB(lightness, chroma, hue))
			sphere.Label = fmt.Sprintf("Grid %d,%d", i, j)
			s.Spheres = append(s.Spheres, sphere)
		}
	}

	return s
}
