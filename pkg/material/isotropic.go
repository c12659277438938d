package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly into the whole sphere
type Isotropic struct {
	core.Object
	Albedo Texture
}

// NewIsotropic creates a new isotropic material
func NewIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

func (i *Isotropic) ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	return i.Albedo.Value(uv, p)
}

func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool) {
	return &ScatterRecord{
		Ray:         rayIn.Derive(hit.Position, core.RandomInUnitSphere(sampler)),
		Specular:    true,
		Attenuation: hit.Color.RGB,
		Alpha:       hit.Color.A,
		Material:    i,
	}, true
}

func (i *Isotropic) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 1
}

func (i *Isotropic) HasAlpha() bool {
	return i.Albedo.HasAlpha()
}

func (i *Isotropic) Emitted(core.Ray, *HitRecord) core.Vec3 {
	return core.Vec3{}
}
