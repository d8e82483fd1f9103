package core

import (
	"math"
	"math/rand"
)

// Vec2 holds a pair of canonical random numbers in [0, 1)
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Reseed restarts the underlying generator from seed
func (r *RandomSampler) Reseed(seed int64) {
	r.random.Seed(seed)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis builds a tangent frame (u, v, w) with w equal to normal.
// The helper axis is Y when normal leans towards X, otherwise X, so the cross product never degenerates.
func OrthonormalBasis(normal Vec3) (u, v, w Vec3) {
	w = normal
	var nt Vec3
	if math.Abs(w.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	u = nt.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v, w
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal.
// sample.X picks the azimuth (scaled to [0, 2π)), sample.Y the squared radius on the unit disk.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	r2 := sample.Y
	r := math.Sqrt(r2)

	u, v, w := OrthonormalBasis(normal)

	return u.Multiply(math.Cos(a) * r).
		Add(v.Multiply(math.Sin(a) * r)).
		Add(w.Multiply(math.Sqrt(1.0 - r2))).
		Normalize()
}
