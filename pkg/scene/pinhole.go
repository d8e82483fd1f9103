package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NewPinholeScene creates a single sphere seen through a pinhole camera and lit head-on
func NewPinholeScene() *Scene {
	camera := geometry.NewPinholeCamera(
		core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)),
		core.NewVec3(0, 1, 0),
		1.0,
	)

	config := DefaultSamplingConfig()
	config.Width = 500
	config.Height = 500
	config.SamplesPerPixel = 1

	// Light ray from the origin along +Z; shading uses origin+direction as the light vector
	light := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	return &Scene{
		Name:    "pinhole",
		Shading: ShadingDiffuse,
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 1.41, core.NewVec3(0.25, 0.50, 0.75)),
		},
		Camera:         camera,
		Background:     core.NewVec3(0.25, 0.25, 0.25),
		LightDirection: light.Origin.Add(light.Direction).Normalize(),
		SamplingConfig: config,
	}
}

// NewFlatScene creates two spheres viewed orthographically, one ray per pixel straight down -Z
func NewFlatScene() *Scene {
	config := DefaultSamplingConfig()
	config.SamplesPerPixel = 1

	return &Scene{
		Name:    "flat",
		Shading: ShadingFlat,
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(212, 384, -1000), 150, core.NewVec3(0.25, 0.25, 0.75)),
			geometry.NewSphere(core.NewVec3(590, 884, -1000), 150, core.NewVec3(0.25, 0.50, 0.75)),
		},
		Camera:         geometry.NewOrthographicCamera(),
		Background:     core.NewVec3(0.5, 0.5, 0.5),
		SamplingConfig: config,
	}
}
