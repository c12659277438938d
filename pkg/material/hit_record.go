package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// CheckAlphaAndCreate builds the hit record for a candidate intersection.
// Blend materials are resolved to one constituent first. When the resolved
// material has an alpha channel, the hit survives with probability equal
// to its opacity, so an alpha of 1 is always accepted.
func CheckAlphaAndCreate(rayIn core.Ray, t float64, uv core.TextureCoordinate, position, normal core.Vec3, mat Material, sampler core.Sampler) (*HitRecord, bool) {
	if r, ok := mat.(Resolver); ok {
		mat = r.Resolve(sampler)
	}
	color := mat.ColorChannels(uv, position)
	if mat.HasAlpha() && sampler.Get1D() >= color.A {
		return nil, false
	}
	return &HitRecord{
		T:        t,
		UV:       uv,
		Position: position,
		Normal:   normal,
		Material: mat,
		Color:    color,
	}, true
}

// InvertNormal flips the surface normal
func (h *HitRecord) InvertNormal() {
	h.Normal = h.Normal.Negate()
}

// Displace moves the hit position by offset
func (h *HitRecord) Displace(offset core.Vec3) {
	h.Position = h.Position.Add(offset)
}

// ScatterRay returns the cached scatter outcome or evaluates the material
func (h *HitRecord) ScatterRay(rayIn core.Ray, sampler core.Sampler) (*ScatterRecord, bool) {
	if h.Scatter != nil {
		return h.Scatter, true
	}
	return h.Material.Scatter(rayIn, h, sampler)
}
