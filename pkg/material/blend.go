package material

import (
	"errors"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// ErrInvalidBlend is returned for a blend without materials or positive weight
var ErrInvalidBlend = errors.New("material blend needs at least one material and a positive total weight")

// WeightedMaterial is one constituent of a MaterialBlend
type WeightedMaterial struct {
	Weight   float64
	Material Material
}

// MaterialBlend stands for one of several materials, chosen per hit in
// proportion to the configured weights
type MaterialBlend struct {
	core.Object
	Materials  []WeightedMaterial
	cumulative []float64
}

// NewMaterialBlend creates a blend; weights are normalized to a cumulative distribution
func NewMaterialBlend(materials ...WeightedMaterial) (*MaterialBlend, error) {
	total := 0.0
	for _, m := range materials {
		total += m.Weight
	}
	if len(materials) == 0 || total <= 0 {
		return nil, ErrInvalidBlend
	}
	cumulative := make([]float64, len(materials))
	sum := 0.0
	for i, m := range materials {
		sum += m.Weight
		cumulative[i] = sum / total
	}
	return &MaterialBlend{Materials: materials, cumulative: cumulative}, nil
}

// Resolve picks the first constituent whose cumulative weight covers a uniform draw
func (b *MaterialBlend) Resolve(sampler core.Sampler) Material {
	r := sampler.Get1D()
	i := 0
	for i < len(b.cumulative)-1 && r > b.cumulative[i] {
		i++
	}
	return b.Materials[i].Material
}

// The Material methods below delegate to a freshly resolved constituent.
// Hits created through CheckAlphaAndCreate never reach them.

func (b *MaterialBlend) ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	return b.Materials[0].Material.ColorChannels(uv, p)
}

func (b *MaterialBlend) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool) {
	return b.Resolve(sampler).Scatter(rayIn, hit, sampler)
}

func (b *MaterialBlend) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return b.Materials[0].Material.ScatteringPDF(rayIn, hit, scattered)
}

func (b *MaterialBlend) HasAlpha() bool {
	for _, m := range b.Materials {
		if m.Material.HasAlpha() {
			return true
		}
	}
	return false
}

func (b *MaterialBlend) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	return b.Materials[0].Material.Emitted(rayIn, hit)
}
