package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// CosinePDF samples the cosine-weighted hemisphere about a normal
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine PDF oriented along w
func NewCosinePDF(w core.Vec3) *CosinePDF {
	return &CosinePDF{uvw: core.NewONBFromW(w)}
}

func (p *CosinePDF) Value(direction core.Vec3, _ core.Sampler) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

func (p *CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.Local(core.RandomCosineDirection(sampler))
}

// GeometryPDF samples directions towards a target geometry from an origin
type GeometryPDF struct {
	Origin core.Vec3
	Target Sampleable
}

// NewGeometryPDF creates a PDF that aims at target
func NewGeometryPDF(origin core.Vec3, target Sampleable) *GeometryPDF {
	return &GeometryPDF{Origin: origin, Target: target}
}

func (p *GeometryPDF) Value(direction core.Vec3, sampler core.Sampler) float64 {
	return p.Target.PDFValue(p.Origin, direction, sampler)
}

func (p *GeometryPDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.Target.Random(p.Origin, sampler)
}

// MixturePDF picks either PDF with equal probability
type MixturePDF struct {
	First, Second PDF
}

// NewMixturePDF creates an equal-weight mixture
func NewMixturePDF(first, second PDF) *MixturePDF {
	return &MixturePDF{First: first, Second: second}
}

func (p *MixturePDF) Value(direction core.Vec3, sampler core.Sampler) float64 {
	return 0.5*p.First.Value(direction, sampler) + 0.5*p.Second.Value(direction, sampler)
}

func (p *MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return p.First.Generate(sampler)
	}
	return p.Second.Generate(sampler)
}
