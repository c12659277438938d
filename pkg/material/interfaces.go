package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Texture maps a surface coordinate and world position to a color
type Texture interface {
	core.Identifiable
	Value(uv core.TextureCoordinate, p core.Vec3) core.RGBA
	// HasAlpha reports whether any returned color can be partially transparent
	HasAlpha() bool
}

// Material interface for surfaces and volumes that scatter or emit light
type Material interface {
	core.Identifiable

	// ColorChannels returns the surface color and opacity at a point
	ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA

	// Scatter decides how rayIn continues; false means the ray is absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool)

	// ScatteringPDF evaluates the material's own density for a concrete outgoing ray
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64

	HasAlpha() bool

	Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3
}

// Resolver is implemented by materials that stand for one of several
// constituents and must be resolved before use
type Resolver interface {
	Resolve(sampler core.Sampler) Material
}

// Sampleable is a target that can be importance-sampled from a point.
// Every geometry satisfies it.
type Sampleable interface {
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// PDF generates and evaluates scatter directions
type PDF interface {
	Value(direction core.Vec3, sampler core.Sampler) float64
	Generate(sampler core.Sampler) core.Vec3
}

// ScatterRecord describes one scatter event. PDF is non-nil exactly when
// the event is non-specular.
type ScatterRecord struct {
	Ray         core.Ray
	Specular    bool
	Attenuation core.Vec3
	Alpha       float64
	PDF         PDF
	Material    Material
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64
	UV       core.TextureCoordinate
	Position core.Vec3
	Normal   core.Vec3
	Material Material
	Color    core.RGBA
	// Scatter is set when the scatter outcome was already evaluated while
	// creating the hit, so the integrator does not evaluate it twice
	Scatter *ScatterRecord
}
