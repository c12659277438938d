package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Sphere represents a static sphere
type Sphere struct {
	core.Object
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center, s.Radius, s.Material, sampler)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(float64, float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// PDFValue is uniform over the cone the sphere subtends from origin
func (s *Sphere) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction), 0.001, math.MaxFloat64, sampler); !ok {
		return 0
	}
	cosThetaMax := math.Sqrt(1 - s.Radius*s.Radius/core.DistanceSquared(origin, s.Center))
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// Random samples a direction inside the cone the sphere subtends from origin
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.Subtract(origin)
	uvw := core.NewONBFromW(direction)
	return uvw.Local(core.RandomToSphere(sampler, s.Radius, direction.LengthSquared()))
}

// hitSphere solves the sphere quadratic, trying the nearer root first.
// The farther root is used when the nearer one is out of range or its
// hit is rejected by the alpha test.
func hitSphere(ray core.Ray, tMin, tMax float64, center core.Vec3, radius float64, mat material.Material, sampler core.Sampler) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root <= tMin || root >= tMax {
			continue
		}
		p := ray.At(root)
		normal := p.Subtract(center).Divide(radius)
		if hit, ok := material.CheckAlphaAndCreate(ray, root, core.TextureCoordinateFromSphere(normal), p, normal, mat, sampler); ok {
			return hit, true
		}
	}
	return nil, false
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := core.NewVec3(radius, radius, radius)
	return core.NewAABB(center.Subtract(r), center.Add(r))
}
