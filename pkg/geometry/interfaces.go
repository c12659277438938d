package geometry

import (
	"errors"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// ErrEmptyGeometry is returned when a collection is built from no shapes
var ErrEmptyGeometry = errors.New("geometry collection is empty")

// Geometry is implemented by every shape, volume, instance and collection.
// Implementations are immutable after construction and safe for concurrent use.
type Geometry interface {
	core.Identifiable

	// BoundingBox returns the box enclosing the geometry over the shutter
	// interval [t0, t1]; false if the geometry is unbounded
	BoundingBox(t0, t1 float64) (core.AABB, bool)

	// Hit returns the closest accepted intersection with t in (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// PDFValue is the solid angle density of Random's directions from origin
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64

	// Random returns a direction from origin towards the geometry
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// notSampleable provides the trivial light-sampling answers for geometry
// that is never a light target
type notSampleable struct{}

func (notSampleable) PDFValue(core.Vec3, core.Vec3, core.Sampler) float64 {
	return 0
}

func (notSampleable) Random(core.Vec3, core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}
