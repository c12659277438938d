package material

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func TestTextures(t *testing.T) {
	black := NewSolidColor(0, 0, 0)
	white := NewSolidColor(1, 1, 1)
	uv := core.NewTextureCoordinate(0, 0)

	tests := []struct {
		name     string
		texture  Texture
		p        core.Vec3
		expected core.RGBA
		alpha    bool
	}{
		{
			name:     "constant",
			texture:  NewConstantTexture(core.NewRGBA(0.2, 0.3, 0.4, 1)),
			expected: core.NewRGBA(0.2, 0.3, 0.4, 1),
		},
		{
			name:     "constant translucent",
			texture:  NewConstantTexture(core.NewRGBA(0.2, 0.3, 0.4, 0.5)),
			expected: core.NewRGBA(0.2, 0.3, 0.4, 0.5),
			alpha:    true,
		},
		{
			name:     "checker even",
			texture:  NewCheckerTexture(core.NewVec3(10, 10, 10), white, black),
			p:        core.NewVec3(0.1, 0.1, 0.1),
			expected: core.NewRGBA(1, 1, 1, 1),
		},
		{
			name:     "checker odd",
			texture:  NewCheckerTexture(core.NewVec3(10, 10, 10), white, black),
			p:        core.NewVec3(-0.1, 0.1, 0.1),
			expected: core.NewRGBA(0, 0, 0, 1),
		},
		{
			name: "color filter",
			texture: NewColorFilter(
				core.NewRGBA(1, 0, 0, 0),
				core.NewRGBA(0, 1, 0, 1),
				core.NewRGBA(0, 0, 0.1, 0),
				NewConstantTexture(core.NewRGBA(0.5, 0.5, 0.5, 1))),
			expected: core.NewRGBA(0.25, 0.5, 0.1, 1),
		},
		{
			name:     "blend by mask alpha",
			texture:  NewBlendTexture(white, black, NewConstantTexture(core.NewRGBA(0, 0, 0, 0.25))),
			expected: core.NewRGBA(0.75, 0.75, 0.75, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.texture.Value(uv, tt.p)
			if got.RGB.Subtract(tt.expected.RGB).Length() > 1e-9 || math.Abs(got.A-tt.expected.A) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if tt.texture.HasAlpha() != tt.alpha {
				t.Errorf("Expected HasAlpha=%t", tt.alpha)
			}
		})
	}
}

func TestBitmapTexture_FlipsV(t *testing.T) {
	// top row red, bottom row blue
	pixels := []uint8{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	bitmap, err := NewBitmapTexture(1, 2, pixels)
	if err != nil {
		t.Fatal(err)
	}
	if c := bitmap.Value(core.NewTextureCoordinate(0.5, 0.9), core.Vec3{}); c.RGB != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red at top, got %v", c)
	}
	if c := bitmap.Value(core.NewTextureCoordinate(0.5, 0.1), core.Vec3{}); c.RGB != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected blue at bottom, got %v", c)
	}
	if bitmap.HasAlpha() {
		t.Errorf("Opaque bitmap must not report alpha")
	}
	if _, err := NewBitmapTexture(2, 2, pixels); err == nil {
		t.Errorf("Expected size mismatch error")
	}
}

func TestNoiseTexture_StaysBetweenBounds(t *testing.T) {
	sampler := core.NewSeededSampler(9)
	black := NewSolidColor(0, 0, 0)
	white := NewSolidColor(1, 1, 1)

	for _, nt := range []NoiseType{NoiseDefault, NoiseTurbulence, NoiseSinX, NoiseSinY, NoiseSinZ} {
		tex := NewNoiseTexture(4, nt, black, white, sampler)
		for i := 0; i < 200; i++ {
			p := core.RandomInUnitCube(sampler).Multiply(5)
			c := tex.Value(core.TextureCoordinate{}, p)
			if !c.RGB.IsFinite() || c.RGB.X < -0.5 || c.RGB.X > 1.6 {
				t.Fatalf("Noise type %d produced %v at %v", nt, c, p)
			}
		}
	}
}

func TestPerlin_IsSmooth(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(12))
	a := core.NewVec3(1.3, 2.7, -0.4)
	b := a.Add(core.NewVec3(1e-6, 0, 0))
	if math.Abs(p.Noise(a)-p.Noise(b)) > 1e-4 {
		t.Errorf("Noise is not continuous")
	}
	if p.Noise(core.NewVec3(3, 4, 5)) != 0 {
		t.Errorf("Noise must vanish on lattice points")
	}
}
