package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// sphereFieldExtent is the half width of the grid of small spheres
const sphereFieldExtent = 6

// NewSpheresScene creates a random field of small spheres around three
// large ones on a checkered ground. Diffuse spheres bounce during the
// shutter interval; some glass spheres disperse light.
func NewSpheresScene(b *Builder, opts Options) (*Scene, error) {
	sampler := b.Sampler()
	white := b.Solid(1, 1, 1)

	checker := Add(b, material.NewCheckerTexture(
		core.NewVec3(10, 10, 10),
		b.Solid(0.2, 0.3, 0.1),
		b.Solid(0.9, 0.9, 0.9),
	))
	shapes := []geometry.Geometry{
		b.Sphere(core.NewVec3(0, -1000, 0), 1000, Add(b, material.NewLambertian(checker))),
	}

	glass := Add(b, material.NewDielectric(1.5, white))
	prism := Add(b, material.NewDispersiveDielectric(1.5, 1.6, white))
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -sphereFieldExtent; a < sphereFieldExtent; a++ {
		for c := -sphereFieldExtent; c < sphereFieldExtent; c++ {
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(c)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			choose := sampler.Get1D()
			switch {
			case choose < 0.7:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				mat := b.Lambertian(albedo.X, albedo.Y, albedo.Z)
				bounce := center.Add(core.NewVec3(0, 0.5*sampler.Get1D(), 0))
				shapes = append(shapes, Add(b, geometry.NewMovingSphere(center, bounce, 0, 1, 0.2, mat)))
			case choose < 0.85:
				albedo := sampler.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				fuzz := 0.5 * sampler.Get1D()
				mat := Add(b, material.NewMetal(fuzz, b.Solid(albedo.X, albedo.Y, albedo.Z)))
				shapes = append(shapes, b.Sphere(center, 0.2, mat))
			case choose < 0.95:
				shapes = append(shapes, b.Sphere(center, 0.2, glass))
			default:
				shapes = append(shapes, b.Sphere(center, 0.2, prism))
			}
		}
	}

	shapes = append(shapes,
		b.Sphere(core.NewVec3(0, 1, 0), 1, glass),
		b.Sphere(core.NewVec3(-4, 1, 0), 1, b.Lambertian(0.4, 0.2, 0.1)),
		b.Sphere(core.NewVec3(4, 1, 0), 1, Add(b, material.NewMetal(0, b.Solid(0.7, 0.6, 0.5)))),
	)

	world, err := b.BVH(shapes, 0, 1)
	if err != nil {
		return nil, err
	}

	camera := b.Camera(NewCameraFromLookAt(
		core.NewVec3(13, 2, 3),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		20, opts.aspect(2), 0.1, 10, 0, 1,
	))
	sky := b.Sky(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1))
	return New(DefaultConfiguration(), camera, sky, world, nil)
}
