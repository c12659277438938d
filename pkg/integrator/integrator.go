package integrator

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// RayTraceColor estimates the radiance for viewport coordinates (u, v) in
// [0,1]², with v = 0 at the bottom of the image
func RayTraceColor(integrator Integrator, s *scene.Scene, u, v float64, sampler core.Sampler) core.Vec3 {
	return integrator.RayColor(s.Camera.Ray(u, v, sampler), s, sampler)
}
