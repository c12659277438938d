package geometry

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Box is an axis-aligned cuboid made of six rectangles with outward normals
type Box struct {
	core.Object
	Min, Max core.Vec3
	sides    *List
}

// NewBox creates a box spanning the two corners
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	bounds := core.NewAABB(p0, p1)
	lo, hi := bounds.Min, bounds.Max
	sides, _ := NewList(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, mat),
		NewFlipNormals(NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, mat)),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, mat),
		NewFlipNormals(NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, mat)),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, mat),
		NewFlipNormals(NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, mat)),
	)
	return &Box{Min: lo, Max: hi, sides: sides}
}

func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

func (b *Box) BoundingBox(float64, float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}

func (b *Box) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return b.sides.PDFValue(origin, direction, sampler)
}

func (b *Box) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return b.sides.Random(origin, sampler)
}

// Sides exposes the six faces, mainly for id assignment by a scene builder
func (b *Box) Sides() []Geometry {
	return b.sides.Children
}
