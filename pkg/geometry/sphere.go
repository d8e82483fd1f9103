package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// HitEpsilon is the smallest accepted hit distance; closer roots are treated
// as the surface the ray just left.
const HitEpsilon = 1e-4

var _ Shape = Sphere{}

// Sphere is a diffuse, possibly light-emitting sphere
type Sphere struct {
	Radius   float64   `json:"radius"`
	Position core.Vec3 `json:"position"`
	Emission core.Vec3 `json:"emission"`
	Color    core.Vec3 `json:"color"`
	Label    string    `json:"label,omitempty"`
}

// NewSphere creates a new non-emissive sphere
func NewSphere(position core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{
		Radius:   radius,
		Position: position,
		Color:    color,
	}
}

// NewEmissiveSphere creates a sphere that emits light
func NewEmissiveSphere(position core.Vec3, radius float64, emission, color core.Vec3) Sphere {
	s := NewSphere(position, radius, color)
	s.Emission = emission
	return s
}

// Hit tests if a ray intersects with the sphere.
// Solves t²(d·d) + 2t((o−p)·d) + (o−p)·(o−p) − r² = 0 assuming a unit direction.
func (s Sphere) Hit(ray core.Ray) (float64, bool) {
	op := s.Position.Subtract(ray.Origin)
	b := op.Dot(ray.Direction)
	det := b*b - op.Dot(op) + s.Radius*s.Radius

	if det < 0 {
		return 0, false
	}
	det = math.Sqrt(det)

	// Try the closer intersection point first
	if t := b - det; t > HitEpsilon {
		return t, true
	}
	if t := b + det; t > HitEpsilon {
		return t, true
	}
	return 0, false
}

// Interaction returns the hit point and normals at distance t along ray
func (s Sphere) Interaction(ray core.Ray, t float64) HitRecord {
	rec := HitRecord{
		T:     t,
		Point: ray.At(t),
	}
	rec.SetFaceNormal(ray, rec.Point.Subtract(s.Position).Normalize())
	return rec
}
