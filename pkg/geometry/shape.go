package geometry

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point         core.Vec3 // Point of intersection
	OutwardNormal core.Vec3 // Geometric normal pointing out of the surface
	Normal        core.Vec3 // Surface normal facing against the incoming ray
	T             float64   // Parameter t along the ray
	FrontFace     bool      // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.OutwardNormal = outwardNormal
	h.FrontFace = outwardNormal.Dot(ray.Direction) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the parametric distance of the accepted intersection, if any
	Hit(ray core.Ray) (float64, bool)
	// Interaction describes the surface at distance t along ray
	Interaction(ray core.Ray, t float64) HitRecord
}
