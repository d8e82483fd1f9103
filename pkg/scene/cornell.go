package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NewCornellScene creates the sphere-walled Cornell box lit by a large emissive sphere.
// Walls are huge spheres so every surface stays a sphere primitive.
func NewCornellScene() *Scene {
	camera := geometry.NewPinholeCamera(
		core.NewRay(core.NewVec3(50, 52, 295.6), core.NewVec3(0, -0.042612, -1)),
		core.NewVec3(1, 0, 0), // Up is +X, so image rows run along the box's width
		2.0,
	)

	black := core.NewVec3(0, 0, 0)
	wall := 1e5

	spheres := []geometry.Sphere{
		{Radius: wall, Position: core.NewVec3(wall+1, 40.8, 81.6), Emission: black, Color: core.NewVec3(0.75, 0.25, 0.25), Label: "Left"},
		{Radius: wall, Position: core.NewVec3(-wall+99, 40.8, 81.6), Emission: black, Color: core.NewVec3(0.25, 0.25, 0.75), Label: "Right"},
		{Radius: wall, Position: core.NewVec3(50, 40.8, wall), Emission: black, Color: core.NewVec3(0.75, 0.75, 0.75), Label: "Back"},
		{Radius: wall, Position: core.NewVec3(50, 40.8, -wall+600), Emission: black, Color: core.NewVec3(1, 1, 1), Label: "Front"},
		{Radius: wall, Position: core.NewVec3(50, wall, 81.6), Emission: black, Color: core.NewVec3(0.75, 0.75, 0.75), Label: "Bottom"},
		{Radius: wall, Position: core.NewVec3(50, -wall+81.6, 81.6), Emission: black, Color: core.NewVec3(0.75, 0.75, 0.75), Label: "Top"},
		// Named after mirror and glass balls but shaded as diffuse like everything else
		{Radius: 16.5, Position: core.NewVec3(27, 16.5, 47), Emission: black, Color: core.NewVec3(0.999, 0.999, 0.999), Label: "Mirror"},
		{Radius: 16.5, Position: core.NewVec3(73, 16.5, 78), Emission: black, Color: core.NewVec3(0.999, 0.999, 0.999), Label: "Glass"},
		{Radius: 600, Position: core.NewVec3(50, 681.6-0.27, 81.6), Emission: core.NewVec3(12, 12, 12), Color: core.NewVec3(1, 1, 1), Label: "Light"},
	}

	return &Scene{
		Name:           "cornell",
		Shading:        ShadingPath,
		Spheres:        spheres,
		Camera:         camera,
		SamplingConfig: DefaultSamplingConfig(),
	}
}
