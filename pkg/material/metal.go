package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Metal represents a reflective material with optional fuzz
type Metal struct {
	core.Object
	Fuzz   float64
	Albedo Texture
}

// NewMetal creates a new metal material; fuzz is clamped to [0, 1]
func NewMetal(fuzz float64, albedo Texture) *Metal {
	return &Metal{Fuzz: math.Max(0, math.Min(fuzz, 1)), Albedo: albedo}
}

func (m *Metal) ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	return m.Albedo.Value(uv, p)
}

// Scatter reflects about the normal facing the incoming ray. Fuzzed
// directions that end up below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool) {
	nv := hit.Normal
	if rayIn.Direction.Dot(hit.Normal) > 0 {
		nv = nv.Negate()
	}
	reflected := rayIn.Direction.Reflect(nv)
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	if direction.Dot(nv) <= 0 {
		return nil, false
	}
	return &ScatterRecord{
		Ray:         rayIn.Derive(hit.Position, direction),
		Specular:    true,
		Attenuation: hit.Color.RGB,
		Alpha:       hit.Color.A,
		Material:    m,
	}, true
}

func (m *Metal) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 1
}

func (m *Metal) HasAlpha() bool {
	return m.Albedo.HasAlpha()
}

func (m *Metal) Emitted(core.Ray, *HitRecord) core.Vec3 {
	return core.Vec3{}
}
