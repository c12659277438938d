package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// rectPadding keeps the bounding box of a flat rectangle from collapsing
const rectPadding = 0.0001

// Plane selects the constant axis of an axis-aligned rectangle
type Plane int

const (
	PlaneXY Plane = iota // constant z
	PlaneXZ              // constant y
	PlaneYZ              // constant x
)

// axes returns the two in-plane axes and the constant axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// Rect is an axis-aligned rectangle [A0, A1] x [B0, B1] at K on the
// constant axis of its plane. The normal points along the constant axis.
type Rect struct {
	core.Object
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle [x0,x1] x [y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *Rect {
	return newRect(PlaneXY, x0, x1, y0, y1, k, mat)
}

// NewXZRect creates a rectangle [x0,x1] x [z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *Rect {
	return newRect(PlaneXZ, x0, x1, z0, z1, k, mat)
}

// NewYZRect creates a rectangle [y0,y1] x [z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *Rect {
	return newRect(PlaneYZ, y0, y1, z0, z1, k, mat)
}

func newRect(plane Plane, a0, a1, b0, b1, k float64, mat material.Material) *Rect {
	return &Rect{
		Plane:    plane,
		A0:       math.Min(a0, a1),
		A1:       math.Max(a0, a1),
		B0:       math.Min(b0, b1),
		B1:       math.Max(b0, b1),
		K:        k,
		Material: mat,
	}
}

// Area returns the rectangle area
func (r *Rect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Normal returns the unit normal along the constant axis
func (r *Rect) Normal() core.Vec3 {
	_, _, k := r.Plane.axes()
	return core.Vec3{}.WithAxis(k, 1)
}

func (r *Rect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	ai, bi, ki := r.Plane.axes()
	t := (r.K - ray.Origin.Axis(ki)) / ray.Direction.Axis(ki)
	if math.IsNaN(t) || t <= tMin || t >= tMax {
		return nil, false
	}
	p := ray.At(t)
	a, b := p.Axis(ai), p.Axis(bi)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}
	// snap exactly onto the plane
	p = p.WithAxis(ki, r.K)
	uv := core.NewTextureCoordinate((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0))
	return material.CheckAlphaAndCreate(ray, t, uv, p, r.Normal(), r.Material, sampler)
}

// BoundingBox pads the constant axis so the box has volume
func (r *Rect) BoundingBox(float64, float64) (core.AABB, bool) {
	ai, bi, ki := r.Plane.axes()
	lo := core.Vec3{}.WithAxis(ai, r.A0).WithAxis(bi, r.B0).WithAxis(ki, r.K-rectPadding)
	hi := core.Vec3{}.WithAxis(ai, r.A1).WithAxis(bi, r.B1).WithAxis(ki, r.K+rectPadding)
	return core.NewAABB(lo, hi), true
}

// PDFValue converts the uniform area density to solid angle: dist² / (cos·area)
func (r *Rect) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.MaxFloat64, sampler)
	if !ok {
		return 0
	}
	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.Normal) / direction.Length())
	return distanceSquared / (cosine * r.Area())
}

// Random returns the vector from origin to a uniform point on the rectangle
func (r *Rect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	ai, bi, ki := r.Plane.axes()
	s := sampler.Get2D()
	p := core.Vec3{}.
		WithAxis(ai, r.A0+s.X*(r.A1-r.A0)).
		WithAxis(bi, r.B0+s.Y*(r.B1-r.B0)).
		WithAxis(ki, r.K)
	return p.Subtract(origin)
}
