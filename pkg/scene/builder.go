package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Builder owns the object identity counter for one scene graph and the
// sampler used by randomized construction (BVH axes, noise lattices,
// random scene layouts). A builder is not safe for concurrent use.
type Builder struct {
	lastID  int
	sampler core.Sampler
}

// NewBuilder creates a builder whose first id is 1
func NewBuilder(sampler core.Sampler) *Builder {
	return &Builder{sampler: sampler}
}

// Sampler returns the construction sampler
func (b *Builder) Sampler() core.Sampler {
	return b.sampler
}

// NextID reserves the next identity
func (b *Builder) NextID() int {
	b.lastID++
	return b.lastID
}

// Count returns the number of identities handed out so far
func (b *Builder) Count() int {
	return b.lastID
}

// Add assigns the next id to obj and returns it
func Add[T core.Identifiable](b *Builder, obj T) T {
	obj.SetID(b.NextID())
	return obj
}

// Solid creates a registered constant color texture
func (b *Builder) Solid(r, g, bl float64) material.Texture {
	return Add(b, material.NewSolidColor(r, g, bl))
}

// Lambertian creates a registered diffuse material over a solid color
func (b *Builder) Lambertian(r, g, bl float64) material.Material {
	return Add(b, material.NewLambertian(b.Solid(r, g, bl)))
}

// Sphere creates a registered sphere
func (b *Builder) Sphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	return Add(b, geometry.NewSphere(center, radius, mat))
}

// Box creates a registered box; its faces get ids as well
func (b *Builder) Box(p0, p1 core.Vec3, mat material.Material) *geometry.Box {
	box := Add(b, geometry.NewBox(p0, p1, mat))
	for _, side := range box.Sides() {
		Add(b, side)
	}
	return box
}

// BVH builds and registers a hierarchy over shapes for the shutter interval
func (b *Builder) BVH(shapes []geometry.Geometry, time0, time1 float64) (geometry.Geometry, error) {
	root, err := geometry.NewBVH(shapes, time0, time1, b.sampler)
	if err != nil {
		return nil, err
	}
	return Add(b, root), nil
}

// List creates a registered linear list
func (b *Builder) List(children ...geometry.Geometry) (geometry.Geometry, error) {
	list, err := geometry.NewList(children...)
	if err != nil {
		return nil, err
	}
	return Add(b, list), nil
}

// Sky creates a registered gradient environment
func (b *Builder) Sky(nadir, zenith core.Vec3) Environment {
	return Add(b, NewSky(nadir, zenith))
}

// Camera registers a camera
func (b *Builder) Camera(c *Camera) *Camera {
	return Add(b, c)
}
