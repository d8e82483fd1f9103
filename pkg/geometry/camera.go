package geometry

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// Screen extent of the pinhole camera in basis units
const (
	screenU0 = -1.0
	screenV0 = -1.0
	screenU1 = 1.0
	screenV1 = 1.0
)

// PinholeCamera projects pixels through a fixed screen in front of the eye
type PinholeCamera struct {
	Eye           core.Ray  // Position and viewing direction
	Right         core.Vec3 // Informational only; the basis is derived from Up
	Up            core.Vec3
	FocalDistance float64

	// Basis and screen corner depend only on the fields above
	u, v, w  core.Vec3
	corner   core.Vec3
	across   core.Vec3
	vertical core.Vec3
}

// NewPinholeCamera creates a camera and precomputes its view basis
func NewPinholeCamera(eye core.Ray, up core.Vec3, focalDistance float64) *PinholeCamera {
	c := &PinholeCamera{
		Eye:           eye,
		Up:            up,
		FocalDistance: focalDistance,
	}

	c.w = eye.Direction.Normalize().Negate()
	c.u = up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)
	c.Right = c.u

	c.across = c.u.Multiply(screenU1 - screenU0)
	c.vertical = c.v.Multiply(screenV1 - screenV0)
	c.corner = eye.Origin.
		Add(c.u.Multiply(screenU0)).
		Add(c.v.Multiply(screenV0)).
		Subtract(c.w.Multiply(focalDistance))

	return c
}

// Basis returns the camera's orthonormal frame (u, v, w), w pointing away from the view direction
func (c *PinholeCamera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// GetRay returns the primary ray through pixel (row, col).
// The row fraction moves along u, the column fraction along v.
func (c *PinholeCamera) GetRay(row, col, height, width int) core.Ray {
	an := float64(row) / float64(height)
	bn := float64(col) / float64(width)

	target := c.corner.Add(c.across.Multiply(an)).Add(c.vertical.Multiply(bn))
	return core.NewRay(c.Eye.Origin, target.Subtract(c.Eye.Origin).Normalize())
}

// OrthographicCamera shoots parallel rays from the pixel grid itself
type OrthographicCamera struct {
	Direction core.Vec3
}

// NewOrthographicCamera creates an orthographic camera looking down -Z
func NewOrthographicCamera() *OrthographicCamera {
	return &OrthographicCamera{Direction: core.NewVec3(0, 0, -1)}
}

// GetRay returns a ray starting at (row, col, 0)
func (c *OrthographicCamera) GetRay(row, col, height, width int) core.Ray {
	return core.NewRay(core.NewVec3(float64(row), float64(col), 0), c.Direction)
}
