package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from two corners, normalizing min <= max per axis
func NewAABB(a, b Vec3) AABB {
	return AABB{
		Min: NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Union(AABB{Min: p, Max: p})
	}
	return box
}

// Hit tests if a ray intersects this AABB within (tMin, tMax) using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		invD := 1.0 / ray.Direction.Axis(axis)
		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		// NaN from 0 * Inf leaves the interval untouched
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB containing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: NewVec3(math.Min(aabb.Min.X, other.Min.X), math.Min(aabb.Min.Y, other.Min.Y), math.Min(aabb.Min.Z, other.Min.Z)),
		Max: NewVec3(math.Max(aabb.Max.X, other.Max.X), math.Max(aabb.Max.Y, other.Max.Y), math.Max(aabb.Max.Z, other.Max.Z)),
	}
}

// Contains reports whether p lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		corners[i] = NewVec3(
			pick(i&1 != 0, aabb.Max.X, aabb.Min.X),
			pick(i&2 != 0, aabb.Max.Y, aabb.Min.Y),
			pick(i&4 != 0, aabb.Max.Z, aabb.Min.Z),
		)
	}
	return corners
}

// Translate returns the box moved by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{Min: aabb.Min.Add(offset), Max: aabb.Max.Add(offset)}
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
