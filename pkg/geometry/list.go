package geometry

import (
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// List is an unordered collection tested by linear scan
type List struct {
	core.Object
	Children []Geometry
}

// NewList creates a list over the given geometry
func NewList(children ...Geometry) (*List, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("list: %w", ErrEmptyGeometry)
	}
	return &List{Children: append([]Geometry(nil), children...)}, nil
}

// Hit returns the closest hit among all children
func (l *List) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax
	for _, child := range l.Children {
		if hit, ok := child.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}
	return closest, closest != nil
}

// BoundingBox is the union of all bounded children
func (l *List) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	var box core.AABB
	found := false
	for _, child := range l.Children {
		childBox, ok := child.BoundingBox(t0, t1)
		if !ok {
			continue
		}
		if !found {
			box, found = childBox, true
		} else {
			box = box.Union(childBox)
		}
	}
	return box, found
}

// PDFValue averages the children, matching Random's uniform child choice
func (l *List) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	sum := 0.0
	for _, child := range l.Children {
		sum += child.PDFValue(origin, direction, sampler)
	}
	return sum / float64(len(l.Children))
}

// Random delegates to a uniformly chosen child
func (l *List) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	i := min(int(sampler.Get1D()*float64(len(l.Children))), len(l.Children)-1)
	return l.Children[i].Random(origin, sampler)
}
