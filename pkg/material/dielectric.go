package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// dispersionThreshold is the smallest index range treated as dispersive
const dispersionThreshold = 0.00001

// Dielectric represents a transparent material like glass. When the
// refractive index spans a range, each path picks a dispersion value w on
// first contact, tints by the matching hue and keeps w for later bounces.
type Dielectric struct {
	core.Object
	IndexMin float64
	IndexMax float64
	Albedo   Texture
}

// NewDielectric creates a dielectric with a single refractive index
func NewDielectric(refractiveIndex float64, albedo Texture) *Dielectric {
	return NewDispersiveDielectric(refractiveIndex, refractiveIndex, albedo)
}

// NewDispersiveDielectric creates a dielectric whose index varies over [indexMin, indexMax]
func NewDispersiveDielectric(indexMin, indexMax float64, albedo Texture) *Dielectric {
	return &Dielectric{IndexMin: indexMin, IndexMax: indexMax, Albedo: albedo}
}

func (d *Dielectric) ColorChannels(uv core.TextureCoordinate, p core.Vec3) core.RGBA {
	return d.Albedo.Value(uv, p)
}

// Scatter chooses between reflection and refraction with Schlick's approximation
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (*ScatterRecord, bool) {
	albedo := d.Albedo.Value(hit.UV, hit.Position)
	out := rayIn
	if d.IndexMax > d.IndexMin+dispersionThreshold && !rayIn.HasW {
		w := sampler.Get1D()
		albedo = albedo.MultiplyRGBA(HueToRGB((1 - w) * 300 / 360))
		out = out.WithW(w)
	}
	refIdx := d.IndexMin
	if out.HasW {
		refIdx = d.IndexMin + (d.IndexMax-d.IndexMin)*out.W
	}

	rDotN := rayIn.Direction.Dot(hit.Normal)
	length := rayIn.Direction.Length()
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if rDotN > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = refIdx
		cosine = refIdx * rDotN / length
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1 / refIdx
		cosine = -rDotN / length
	}

	direction := rayIn.Direction.Reflect(hit.Normal)
	if refracted, ok := core.Refract(rayIn.Direction, outwardNormal, niOverNt); ok {
		if sampler.Get1D() >= core.Schlick(cosine, refIdx) {
			direction = refracted
		}
	}

	return &ScatterRecord{
		Ray:         out.Derive(hit.Position, direction),
		Specular:    true,
		Attenuation: albedo.RGB,
		Alpha:       albedo.A,
		Material:    d,
	}, true
}

func (d *Dielectric) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 1
}

func (d *Dielectric) HasAlpha() bool {
	return d.Albedo.HasAlpha()
}

func (d *Dielectric) Emitted(core.Ray, *HitRecord) core.Vec3 {
	return core.Vec3{}
}

// HueToRGB converts a hue in [0, 1] to a saturated opaque color
func HueToRGB(h float64) core.RGBA {
	clamp := func(x float64) float64 { return math.Max(0, math.Min(1, x)) }
	return core.NewRGBA(
		clamp(math.Abs(h*6-3)-1),
		clamp(2-math.Abs(h*6-2)),
		clamp(2-math.Abs(h*6-4)),
		1,
	)
}
