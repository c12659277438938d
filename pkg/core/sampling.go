package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Every stochastic decision takes one so workers never share generator state.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler from a seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomAxis picks 0, 1 or 2 uniformly
func RandomAxis(sampler Sampler) int {
	return min(int(sampler.Get1D()*3), 2)
}

// RandomInRange returns a uniform value in [lo, hi)
func RandomInRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomInUnitCube returns a point in [-1, 1)³
func RandomInUnitCube(sampler Sampler) Vec3 {
	s := sampler.Get3D()
	return NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitCube(sampler)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a point inside the unit disk in the xy plane
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomCosineDirection returns a cosine-weighted direction about +Z
func RandomCosineDirection(sampler Sampler) Vec3 {
	s := sampler.Get2D()
	phi := 2 * math.Pi * s.X
	r := math.Sqrt(s.Y)
	return NewVec3(math.Cos(phi)*r, math.Sin(phi)*r, math.Sqrt(1-s.Y))
}

// RandomToSphere samples a direction about +Z uniformly within the cone
// subtended by a sphere of the given radius at squared distance distSq
func RandomToSphere(sampler Sampler, radius, distSq float64) Vec3 {
	s := sampler.Get2D()
	cosMax := math.Sqrt(max(0, 1-radius*radius/distSq))
	z := 1 + s.Y*(cosMax-1)
	phi := 2 * math.Pi * s.X
	sinTheta := math.Sqrt(max(0, 1-z*z))
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)
}
