package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

type cornellRoom struct {
	white  material.Material
	shapes []geometry.Geometry
	light  geometry.Geometry
}

// newCornellRoom builds the five walls and a ceiling light spanning
// [x0,x1] x [z0,z1]. Walls facing into the room have flipped normals.
func newCornellRoom(b *Builder, x0, x1, z0, z1, emission float64) *cornellRoom {
	red := b.Lambertian(0.65, 0.05, 0.05)
	white := b.Lambertian(0.73, 0.73, 0.73)
	green := b.Lambertian(0.12, 0.45, 0.15)
	lamp := Add(b, material.NewDiffuseLight(b.Solid(emission, emission, emission)))

	flip := func(g geometry.Geometry) geometry.Geometry {
		return Add(b, geometry.NewFlipNormals(Add(b, g)))
	}

	light := flip(geometry.NewXZRect(x0, x1, z0, z1, boxSize-1, lamp))
	return &cornellRoom{
		white: white,
		light: light,
		shapes: []geometry.Geometry{
			flip(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green)),
			Add(b, geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red)),
			light,
			flip(geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white)),
			Add(b, geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white)),
			flip(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white)),
		},
	}
}

func cornellCamera(b *Builder, opts Options) *Camera {
	return b.Camera(NewCameraFromLookAt(
		core.NewVec3(278, 278, -800), // outside the box looking in
		core.NewVec3(278, 278, 0),
		core.NewVec3(0, 1, 0),
		40, opts.aspect(1), 0, 10, 0, 0,
	))
}

// placedBox rotates a box with its corner at the origin about y and moves it
func placedBox(b *Builder, size core.Vec3, degrees float64, offset core.Vec3, mat material.Material) geometry.Geometry {
	box := b.Box(core.NewVec3(0, 0, 0), size, mat)
	return Add(b, geometry.NewTranslate(offset, Add(b, geometry.NewRotateY(degrees, box))))
}

// NewCornellScene creates the Cornell box with a tall block and a glass
// sphere. Both the ceiling light and the sphere are light sampling targets.
func NewCornellScene(b *Builder, opts Options) (*Scene, error) {
	room := newCornellRoom(b, 213, 343, 227, 332, 15)

	glass := b.Sphere(core.NewVec3(190, 90, 190), 90, Add(b, material.NewDielectric(1.5, b.Solid(1, 1, 1))))
	tall := placedBox(b, core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), room.white)

	world, err := b.BVH(append(room.shapes, tall, glass), 0, 1)
	if err != nil {
		return nil, err
	}
	lights, err := b.List(room.light, glass)
	if err != nil {
		return nil, err
	}

	black := b.Sky(core.Vec3{}, core.Vec3{})
	return New(DefaultConfiguration(), cornellCamera(b, opts), black, world, lights)
}

// NewCornellSmokeScene fills the two Cornell blocks with white and black smoke
func NewCornellSmokeScene(b *Builder, opts Options) (*Scene, error) {
	room := newCornellRoom(b, 113, 443, 127, 432, 7)

	tall := placedBox(b, core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), room.white)
	short := placedBox(b, core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), room.white)

	smoke := func(boundary geometry.Geometry, r, g, bl float64) geometry.Geometry {
		phase := Add(b, material.NewIsotropic(b.Solid(r, g, bl)))
		return Add(b, geometry.NewConstantMedium(0.01, boundary, phase))
	}

	world, err := b.BVH(append(room.shapes, smoke(tall, 0, 0, 0), smoke(short, 1, 1, 1)), 0, 1)
	if err != nil {
		return nil, err
	}

	black := b.Sky(core.Vec3{}, core.Vec3{})
	return New(DefaultConfiguration(), cornellCamera(b, opts), black, world, room.light)
}
