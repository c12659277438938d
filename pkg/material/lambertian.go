package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	core.Object
	Albedo Texture
}

// NewLambertian creates a new Lambertian material
func NewLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

func (l *Lambertian) ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	return l.Albedo.Value(uv, p)
}

// Scatter samples a cosine-weighted direction and reports the matching PDF
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool) {
	pdf := NewCosinePDF(hit.Normal)
	direction := pdf.Generate(sampler).Normalize()
	albedo := l.Albedo.Value(hit.UV, hit.Position)
	return &ScatterRecord{
		Ray:         rayIn.Derive(hit.Position, direction),
		Specular:    false,
		Attenuation: albedo.RGB,
		Alpha:       albedo.A,
		PDF:         pdf,
		Material:    l,
	}, true
}

// ScatteringPDF is cos(θ)/π above the surface and zero below
func (l *Lambertian) ScatteringPDF(_ core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	cosine := hit.Normal.Dot(scattered.Direction.Normalize())
	if cosine < 0 {
		return 0
	}
	return cosine / math.Pi
}

func (l *Lambertian) HasAlpha() bool {
	return l.Albedo.HasAlpha()
}

func (l *Lambertian) Emitted(core.Ray, *HitRecord) core.Vec3 {
	return core.Vec3{}
}
