package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// NewSimpleScene creates the two-sphere scene: a reddish sphere resting on
// a huge dark ground sphere under a white-to-blue sky. Its pixel values at
// low resolution are stable enough for regression tests.
func NewSimpleScene(b *Builder, opts Options) (*Scene, error) {
	camera := b.Camera(NewCamera(
		core.NewVec3(-2, -1, -1),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 2, 0),
		core.NewVec3(0, 0, 0),
		0, 0, 0,
	))

	red := Add(b, material.NewLambertian(Add(b, material.NewConstantTexture(core.NewRGBA(0.5, 0.1, 0.1, 1)))))
	ground := Add(b, material.NewLambertian(Add(b, material.NewConstantTexture(core.NewRGBA(0.1, 0.1, 0.1, 1)))))

	world, err := b.BVH([]geometry.Geometry{
		b.Sphere(core.NewVec3(0, 0, -1), 0.5, red),
		b.Sphere(core.NewVec3(0, -100.5, -1), 100, ground),
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	sky := b.Sky(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1))
	s, err := New(DefaultConfiguration(), camera, sky, world, nil)
	if err != nil {
		return nil, err
	}
	if opts.Aspect > 0 {
		s = s.WithAspect(opts.Aspect)
	}
	return s, nil
}
