package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator with randomly permuted lattices
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.RandomInUnitCube(sampler).Normalize()
	}
	permute(&p.permX, sampler)
	permute(&p.permY, sampler)
	permute(&p.permZ, sampler)
	return p
}

func permute(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := int(sampler.Get1D() * float64(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smooth noise in roughly [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}
	return trilinear(&c, u, v, w)
}

func trilinear(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)
	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of noise
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseType selects how the Perlin value drives the blend
type NoiseType int

const (
	NoiseDefault NoiseType = iota
	NoiseTurbulence
	NoiseSinX
	NoiseSinY
	NoiseSinZ
)

const turbulenceDepth = 7

// NoiseTexture blends between a min and a max texture by Perlin noise
type NoiseTexture struct {
	core.Object
	Scale float64
	Type  NoiseType
	Min   Texture
	Max   Texture
	noise *Perlin
}

// NewNoiseTexture creates a noise texture whose lattice is drawn from sampler
func NewNoiseTexture(scale float64, noiseType NoiseType, minTexture, maxTexture Texture, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{
		Scale: scale,
		Type:  noiseType,
		Min:   minTexture,
		Max:   maxTexture,
		noise: NewPerlin(sampler),
	}
}

func (n *NoiseTexture) Value(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	scaled := p.Multiply(n.Scale)
	var value float64
	switch n.Type {
	case NoiseTurbulence:
		value = n.noise.Turbulence(scaled, turbulenceDepth)
	case NoiseSinX:
		value = math.Sin(n.Scale*p.X + 10*n.noise.Turbulence(scaled, turbulenceDepth))
	case NoiseSinY:
		value = math.Sin(n.Scale*p.Y + 10*n.noise.Turbulence(scaled, turbulenceDepth))
	case NoiseSinZ:
		value = math.Sin(n.Scale*p.Z + 10*n.noise.Turbulence(scaled, turbulenceDepth))
	default:
		value = n.noise.Noise(scaled)
	}
	w := value*0.5 + 0.5
	return n.Min.Value(uv, p).Lerp(n.Max.Value(uv, p), w)
}

func (n *NoiseTexture) HasAlpha() bool {
	return n.Min.HasAlpha() || n.Max.HasAlpha()
}
