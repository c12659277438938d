package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// DiffuseLight emits its texture from the side its normal faces and never scatters
type DiffuseLight struct {
	core.Object
	Emit Texture
}

// NewDiffuseLight creates a new emissive material
func NewDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

func (d *DiffuseLight) ColorChannels(core.TextureCoordinate, core.Vec3) core.RGBA {
	return core.NewRGBA(0, 0, 0, 1)
}

func (d *DiffuseLight) Scatter(core.Ray, *HitRecord, core.Sampler) (*ScatterRecord, bool) {
	return nil, false
}

func (d *DiffuseLight) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 1
}

func (d *DiffuseLight) HasAlpha() bool {
	return false
}

// Emitted returns the emission only for rays arriving against the normal
func (d *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if rayIn.Direction.Dot(hit.Normal) < 0 {
		return d.Emit.Value(hit.UV, hit.Position).RGB
	}
	return core.Vec3{}
}
