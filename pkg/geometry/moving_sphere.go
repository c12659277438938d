package geometry

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at
// Time0 to Center1 at Time1
type MovingSphere struct {
	core.Object
	notSampleable
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// Center returns the center at the given time, clamped to the motion interval
func (s *MovingSphere) Center(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	f := (time - s.Time0) / (s.Time1 - s.Time0)
	f = max(0, min(1, f))
	return s.Center0.Lerp(s.Center1, f)
}

func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center(ray.Time), s.Radius, s.Material, sampler)
}

// BoundingBox encloses the sphere at both ends of [t0, t1]
func (s *MovingSphere) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return sphereBox(s.Center(t0), s.Radius).Union(sphereBox(s.Center(t1), s.Radius)), true
}
