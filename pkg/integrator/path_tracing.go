package integrator

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// minHitDistance keeps secondary rays from re-hitting their own surface
const minHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing. Diffuse
// bounces sample a 50/50 mixture of the material PDF and the scene's light
// sampling target, weighted by the ratio of the material's scattering PDF
// to the mixture density.
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor follows one path for at most Config.MaximumDepth bounces.
// A path absorbed by a surface ends without a background term; only rays
// that escape the scene pick up the environment. Non-finite results are
// replaced by black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	attenuation := core.NewVec3(1, 1, 1)

	for depth := 0; depth < s.Config.MaximumDepth; depth++ {
		hit, isHit := s.World.Hit(ray, minHitDistance, math.MaxFloat64, sampler)
		if !isHit {
			color = color.Add(attenuation.MultiplyVec(s.Environment.Color(ray)))
			break
		}

		color = color.Add(attenuation.MultiplyVec(hit.Material.Emitted(ray, hit)))

		scatter, didScatter := hit.ScatterRay(ray, sampler)
		if !didScatter {
			break
		}

		if scatter.Specular {
			attenuation = attenuation.MultiplyVec(scatter.Attenuation)
			ray = scatter.Ray
			continue
		}

		next, weight, ok := pt.sampleDiffuse(ray, hit, scatter, s, sampler)
		if !ok {
			break
		}
		attenuation = attenuation.MultiplyVec(scatter.Attenuation).Multiply(weight)
		ray = next
	}

	if !color.IsFinite() {
		return core.Vec3{}
	}
	return color
}

// RayColorRecursive is the recursive formulation of RayColor. It has the
// same expected value and is kept as a reference for tests.
func (pt *PathTracingIntegrator) RayColorRecursive(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	color := pt.recurse(ray, s, sampler, s.Config.MaximumDepth)
	if !color.IsFinite() {
		return core.Vec3{}
	}
	return color
}

func (pt *PathTracingIntegrator) recurse(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}
	hit, isHit := s.World.Hit(ray, minHitDistance, math.MaxFloat64, sampler)
	if !isHit {
		return s.Environment.Color(ray)
	}

	emitted := hit.Material.Emitted(ray, hit)
	scatter, didScatter := hit.ScatterRay(ray, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.Specular {
		return emitted.Add(scatter.Attenuation.MultiplyVec(pt.recurse(scatter.Ray, s, sampler, depth-1)))
	}

	next, weight, ok := pt.sampleDiffuse(ray, hit, scatter, s, sampler)
	if !ok {
		return emitted
	}
	incoming := pt.recurse(next, s, sampler, depth-1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming).Multiply(weight))
}

// sampleDiffuse picks the continuation ray of a non-specular bounce and its
// weight scatteringPDF / samplingPDF. It reports false when the sampled
// direction has no density.
func (pt *PathTracingIntegrator) sampleDiffuse(ray core.Ray, hit *material.HitRecord, scatter *material.ScatterRecord, s *scene.Scene, sampler core.Sampler) (core.Ray, float64, bool) {
	var next core.Ray
	var pdfValue float64

	if s.Lights != nil {
		mixture := material.NewMixturePDF(scatter.PDF, material.NewGeometryPDF(hit.Position, s.Lights))
		next = ray.Derive(hit.Position, mixture.Generate(sampler))
		pdfValue = mixture.Value(next.Direction, sampler)
	} else {
		next = scatter.Ray
		pdfValue = scatter.PDF.Value(next.Direction, sampler)
	}

	if pdfValue <= 0 {
		return core.Ray{}, 0, false
	}
	return next, hit.Material.ScatteringPDF(ray, hit, next) / pdfValue, true
}
