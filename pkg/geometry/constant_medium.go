package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// ConstantMedium is a participating medium of uniform density filling a
// convex boundary
type ConstantMedium struct {
	core.Object
	notSampleable
	Density       float64
	Boundary      Geometry
	PhaseFunction material.Material
}

// NewConstantMedium creates a new constant-density volume
func NewConstantMedium(density float64, boundary Geometry, phase material.Material) *ConstantMedium {
	return &ConstantMedium{Density: density, Boundary: boundary, PhaseFunction: phase}
}

func (m *ConstantMedium) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(t0, t1)
}

// Hit samples an exponential free-flight distance and scatters inside the
// boundary when that distance is shorter than the path through it
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	enter, ok := m.Boundary.Hit(ray, -math.MaxFloat64, math.MaxFloat64, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, enter.T+0.0001, math.MaxFloat64, sampler)
	if !ok {
		return nil, false
	}

	t0, t1 := math.Max(enter.T, tMin), math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = math.Max(t0, 0)

	length := ray.Direction.Length()
	inside := (t1 - t0) * length
	// 1-u keeps the argument of Log in (0, 1]
	distance := -(1 / m.Density) * math.Log(1-sampler.Get1D())
	if distance >= inside {
		return nil, false
	}

	t := t0 + distance/length
	p := ray.At(t)
	uv := core.TextureCoordinate{}
	return &material.HitRecord{
		T:        t,
		UV:       uv,
		Position: p,
		Normal:   core.NewVec3(1, 0, 0), // volumes have no surface normal
		Material: m.PhaseFunction,
		Color:    m.PhaseFunction.ColorChannels(uv, p),
	}, true
}
