package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// ConstantTexture provides a uniform color
type ConstantTexture struct {
	core.Object
	Color core.RGBA
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(color core.RGBA) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// NewSolidColor creates an opaque constant texture
func NewSolidColor(r, g, b float64) *ConstantTexture {
	return NewConstantTexture(core.NewRGBA(r, g, b, 1))
}

// Value returns the constant color regardless of UV or position
func (c *ConstantTexture) Value(core.TextureCoordinate, core.Vec3) core.RGBA {
	return c.Color
}

func (c *ConstantTexture) HasAlpha() bool {
	return c.Color.A < 1
}

// CheckerTexture alternates between two textures on a 3D sine lattice
type CheckerTexture struct {
	core.Object
	Scale core.Vec3
	Even  Texture
	Odd   Texture
}

// NewCheckerTexture creates a new checker texture
func NewCheckerTexture(scale core.Vec3, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{Scale: scale, Even: even, Odd: odd}
}

func (c *CheckerTexture) Value(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	sines := math.Sin(c.Scale.X*p.X) * math.Sin(c.Scale.Y*p.Y) * math.Sin(c.Scale.Z*p.Z)
	if sines < 0 {
		return c.Odd.Value(uv, p)
	}
	return c.Even.Value(uv, p)
}

func (c *CheckerTexture) HasAlpha() bool {
	return c.Even.HasAlpha() || c.Odd.HasAlpha()
}

// ColorFilter applies src²·A + src·B + C per channel to another texture
type ColorFilter struct {
	core.Object
	A, B, C core.RGBA
	Texture Texture
}

// NewColorFilter creates a new color filter
func NewColorFilter(a, b, c core.RGBA, texture Texture) *ColorFilter {
	return &ColorFilter{A: a, B: b, C: c, Texture: texture}
}

func (f *ColorFilter) Value(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	src := f.Texture.Value(uv, p)
	return src.MultiplyRGBA(src).MultiplyRGBA(f.A).Add(src.MultiplyRGBA(f.B)).Add(f.C)
}

func (f *ColorFilter) HasAlpha() bool {
	return f.Texture.HasAlpha() || f.A.A+f.B.A+f.C.A < 0.9999
}

// BlendTexture mixes two textures by the alpha channel of a mask texture
type BlendTexture struct {
	core.Object
	First, Second Texture
	Mask          Texture
}

// NewBlendTexture creates a new blend texture
func NewBlendTexture(first, second, mask Texture) *BlendTexture {
	return &BlendTexture{First: first, Second: second, Mask: mask}
}

func (b *BlendTexture) Value(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	w := b.Mask.Value(uv, p).A
	return b.First.Value(uv, p).Lerp(b.Second.Value(uv, p), w)
}

func (b *BlendTexture) HasAlpha() bool {
	return b.First.HasAlpha() || b.Second.HasAlpha()
}
