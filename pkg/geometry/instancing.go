package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Translate moves a child geometry by Offset
type Translate struct {
	core.Object
	Offset core.Vec3
	Child  Geometry
}

// NewTranslate creates a translated instance
func NewTranslate(offset core.Vec3, child Geometry) *Translate {
	return &Translate{Offset: offset, Child: child}
}

func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := ray.Derive(ray.Origin.Subtract(t.Offset), ray.Direction)
	hit, ok := t.Child.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	out := *hit
	out.Displace(t.Offset)
	return &out, true
}

func (t *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := t.Child.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

func (t *Translate) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return t.Child.PDFValue(origin.Subtract(t.Offset), direction, sampler)
}

func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Child.Random(origin.Subtract(t.Offset), sampler)
}

// Axis names a rotation axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Rotate turns a child geometry about a world axis through the origin
type Rotate struct {
	core.Object
	Axis    Axis
	Degrees float64
	Child   Geometry
	toWorld mgl64.Mat3
	toLocal mgl64.Mat3
}

// NewRotateX rotates child about the x axis by degrees
func NewRotateX(degrees float64, child Geometry) *Rotate {
	return newRotate(AxisX, degrees, child)
}

// NewRotateY rotates child about the y axis by degrees
func NewRotateY(degrees float64, child Geometry) *Rotate {
	return newRotate(AxisY, degrees, child)
}

// NewRotateZ rotates child about the z axis by degrees
func NewRotateZ(degrees float64, child Geometry) *Rotate {
	return newRotate(AxisZ, degrees, child)
}

func newRotate(axis Axis, degrees float64, child Geometry) *Rotate {
	angle := mgl64.DegToRad(degrees)
	var m mgl64.Mat3
	switch axis {
	case AxisX:
		m = mgl64.Rotate3DX(angle)
	case AxisY:
		m = mgl64.Rotate3DY(angle)
	default:
		m = mgl64.Rotate3DZ(angle)
	}
	// rotation matrices are orthonormal: the inverse is the transpose
	return &Rotate{Axis: axis, Degrees: degrees, Child: child, toWorld: m, toLocal: m.Transpose()}
}

func apply(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	r := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(r[0], r[1], r[2])
}

func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	local := ray.Derive(apply(r.toLocal, ray.Origin), apply(r.toLocal, ray.Direction))
	hit, ok := r.Child.Hit(local, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	out := *hit
	out.Position = apply(r.toWorld, hit.Position)
	out.Normal = apply(r.toWorld, hit.Normal)
	return &out, true
}

// BoundingBox encloses all eight rotated corners of the child's box
func (r *Rotate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := r.Child.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	corners := box.Corners()
	for i, c := range corners {
		corners[i] = apply(r.toWorld, c)
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

func (r *Rotate) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return r.Child.PDFValue(apply(r.toLocal, origin), apply(r.toLocal, direction), sampler)
}

func (r *Rotate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return apply(r.toWorld, r.Child.Random(apply(r.toLocal, origin), sampler))
}

// FlipNormals inverts the normals reported by its child
type FlipNormals struct {
	core.Object
	Child Geometry
}

// NewFlipNormals creates a normal-flipping instance
func NewFlipNormals(child Geometry) *FlipNormals {
	return &FlipNormals{Child: child}
}

func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Child.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	out := *hit
	out.InvertNormal()
	return &out, true
}

func (f *FlipNormals) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return f.Child.BoundingBox(t0, t1)
}

func (f *FlipNormals) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return f.Child.PDFValue(origin, direction, sampler)
}

func (f *FlipNormals) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return f.Child.Random(origin, sampler)
}

