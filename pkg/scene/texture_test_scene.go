package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// NewTexturesScene shows the procedural textures, an image texture, a
// material blend and an alpha cutout, lit by a sphere light. When
// opts.Texture is nil a generated gradient bitmap stands in for an image.
func NewTexturesScene(b *Builder, opts Options) (*Scene, error) {
	sampler := b.Sampler()

	marble := Add(b, material.NewNoiseTexture(4, material.NoiseSinZ,
		b.Solid(0.2, 0.2, 0.25), b.Solid(0.9, 0.9, 0.9), sampler))
	turbulence := Add(b, material.NewNoiseTexture(2, material.NoiseTurbulence,
		b.Solid(0.1, 0.2, 0.5), b.Solid(1, 0.9, 0.6), sampler))

	image := opts.Texture
	if image == nil {
		gradient, err := gradientBitmap(64, 32)
		if err != nil {
			return nil, err
		}
		image = Add(b, gradient)
	}

	// invert the checker colors: src² · 0 + src · -1 + 1
	inverted := Add(b, material.NewColorFilter(
		core.NewRGBA(0, 0, 0, 0),
		core.NewRGBA(-1, -1, -1, 0),
		core.NewRGBA(1, 1, 1, 1),
		Add(b, material.NewCheckerTexture(core.NewVec3(8, 8, 8), b.Solid(1, 1, 1), b.Solid(0.1, 0.1, 0.1))),
	))
	mask := Add(b, material.NewNoiseTexture(3, material.NoiseDefault,
		Add(b, material.NewConstantTexture(core.NewRGBA(0, 0, 0, 0))),
		Add(b, material.NewConstantTexture(core.NewRGBA(1, 1, 1, 1))), sampler))
	blended := Add(b, material.NewBlendTexture(b.Solid(0.8, 0.1, 0.1), b.Solid(0.1, 0.1, 0.8), mask))

	half, err := material.NewMaterialBlend(
		material.WeightedMaterial{Weight: 1, Material: Add(b, material.NewMetal(0.05, b.Solid(0.9, 0.9, 0.9)))},
		material.WeightedMaterial{Weight: 1, Material: b.Lambertian(0.9, 0.6, 0.1)},
	)
	if err != nil {
		return nil, err
	}
	Add(b, half)

	cutout := Add(b, material.NewLambertian(Add(b, material.NewConstantTexture(core.NewRGBA(0.2, 0.8, 0.2, 0.5)))))
	lamp := Add(b, material.NewDiffuseLight(b.Solid(6, 6, 6)))
	light := b.Sphere(core.NewVec3(0, 8, 2), 2, lamp)

	lambertian := func(t material.Texture) material.Material {
		return Add(b, material.NewLambertian(t))
	}
	world, err := b.BVH([]geometry.Geometry{
		b.Sphere(core.NewVec3(0, -1000, 0), 1000, lambertian(marble)),
		b.Sphere(core.NewVec3(-4.5, 1, 0), 1, lambertian(turbulence)),
		b.Sphere(core.NewVec3(-2.25, 1, 0), 1, lambertian(image)),
		b.Sphere(core.NewVec3(0, 1, 0), 1, lambertian(inverted)),
		b.Sphere(core.NewVec3(2.25, 1, 0), 1, lambertian(blended)),
		b.Sphere(core.NewVec3(4.5, 1, 0), 1, half),
		b.Box(core.NewVec3(-1, 0, 2), core.NewVec3(1, 1.5, 2.2), cutout),
		light,
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	camera := b.Camera(NewCameraFromLookAt(
		core.NewVec3(0, 3, 12),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
		40, opts.aspect(2), 0, 12, 0, 0,
	))
	sky := b.Sky(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.2, 0.25, 0.4))
	return New(DefaultConfiguration(), camera, sky, world, light)
}

// gradientBitmap creates an RGBA image fading red to blue across and dark
// to light down
func gradientBitmap(width, height int) (*material.BitmapTexture, error) {
	pixels := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			fx := float64(x) / float64(width-1)
			fy := float64(y) / float64(height-1)
			pixels[i] = uint8(255 * (1 - fx) * fy)
			pixels[i+1] = uint8(255 * 0.3 * fy)
			pixels[i+2] = uint8(255 * fx * fy)
			pixels[i+3] = 255
		}
	}
	return material.NewBitmapTexture(width, height, pixels)
}
