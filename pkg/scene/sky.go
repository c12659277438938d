package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Environment supplies the radiance of rays that leave the scene
type Environment interface {
	core.Identifiable
	Color(ray core.Ray) core.Vec3
}

// Sky is a vertical gradient from Nadir (straight down) to Zenith (straight up)
type Sky struct {
	core.Object
	Nadir  core.Vec3
	Zenith core.Vec3
}

// NewSky creates a gradient sky
func NewSky(nadir, zenith core.Vec3) *Sky {
	return &Sky{Nadir: nadir, Zenith: zenith}
}

func (s *Sky) Color(ray core.Ray) core.Vec3 {
	t := 0.5*ray.Direction.Normalize().Y + 0.5
	return s.Nadir.Lerp(s.Zenith, t)
}
