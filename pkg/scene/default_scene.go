package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NewDefaultScene creates three spheres on a ground sphere under a sun and a sky dome
func NewDefaultScene() *Scene {
	eye := core.NewVec3(0, 0.75, 2)
	lookAt := core.NewVec3(0, 0.5, -1)
	camera := geometry.NewPinholeCamera(
		core.NewRay(eye, lookAt.Subtract(eye).Normalize()),
		core.NewVec3(1, 0, 0),
		2.75, // roughly a 40 degree field of view
	)

	config := DefaultSamplingConfig()
	config.Width = 400
	config.Height = 400
	config.SamplesPerPixel = 200

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, core.NewVec3(0.65, 0.25, 0.2)),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, core.NewVec3(0.8, 0.8, 0.8)),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, core.NewVec3(0.8, 0.6, 0.2)),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, core.NewVec3(0.1, 0.2, 0.5)),
		geometry.NewSphere(core.NewVec3(0, -1e4, 0), 1e4, core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)),
		geometry.NewEmissiveSphere(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0), core.NewVec3(0, 0, 0)),
		geometry.NewEmissiveSphere(core.NewVec3(0, 0, 0), 1e3, core.NewVec3(0.5, 0.7, 1.0).Multiply(0.4), core.NewVec3(0, 0, 0)),
	}
	for i, label := range []string{"Center", "Left", "Right", "Small", "Ground", "Sun", "Sky"} {
		spheres[i].Label = label
	}

	return &Scene{
		Name:           "default",
		Shading:        ShadingPath,
		Spheres:        spheres,
		Camera:         camera,
		SamplingConfig: config,
	}
}
