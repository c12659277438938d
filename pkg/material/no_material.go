package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// NoMaterial is fully transparent: every hit on it is rejected by the
// alpha test, which makes shapes that carry it invisible
type NoMaterial struct {
	core.Object
}

// NewNoMaterial creates a new transparent placeholder material
func NewNoMaterial() *NoMaterial {
	return &NoMaterial{}
}

func (n *NoMaterial) ColorChannels(core.TextureCoordinate, core.Vec3) core.RGBA {
	return core.RGBA{}
}

func (n *NoMaterial) Scatter(core.Ray, *HitRecord, core.Sampler) (*ScatterRecord, bool) {
	return nil, false
}

func (n *NoMaterial) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 1
}

func (n *NoMaterial) HasAlpha() bool {
	return true
}

func (n *NoMaterial) Emitted(core.Ray, *HitRecord) core.Vec3 {
	return core.Vec3{}
}
