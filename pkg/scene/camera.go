package scene

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Camera generates primary rays through a rectangular viewport. Rays start
// on a thin lens of radius LensRadius around Origin and carry a time drawn
// uniformly from the shutter interval [Time0, Time1].
type Camera struct {
	core.Object
	LowerLeftCorner core.Vec3
	Horizontal      core.Vec3
	Vertical        core.Vec3
	Origin          core.Vec3
	U, V, W         core.Vec3 // orthonormal lens basis
	LensRadius      float64
	Time0, Time1    float64
}

// NewCamera creates a camera from an explicit viewport
func NewCamera(lowerLeftCorner, horizontal, vertical, origin core.Vec3, lensRadius, time0, time1 float64) *Camera {
	center := lowerLeftCorner.Add(horizontal.Multiply(0.5)).Add(vertical.Multiply(0.5))
	return &Camera{
		LowerLeftCorner: lowerLeftCorner,
		Horizontal:      horizontal,
		Vertical:        vertical,
		Origin:          origin,
		U:               horizontal.Normalize(),
		V:               vertical.Normalize(),
		W:               origin.Subtract(center).Normalize(),
		LensRadius:      lensRadius,
		Time0:           time0,
		Time1:           time1,
	}
}

// NewCameraFromVerticalField creates a pinhole camera at the origin looking
// down -z with the given vertical field of view in degrees
func NewCameraFromVerticalField(vfov, aspect float64) *Camera {
	halfHeight := math.Tan(vfov * math.Pi / 180 / 2)
	halfWidth := halfHeight * aspect
	return NewCamera(
		core.NewVec3(-halfWidth, -halfHeight, -1),
		core.NewVec3(2*halfWidth, 0, 0),
		core.NewVec3(0, 2*halfHeight, 0),
		core.NewVec3(0, 0, 0),
		0, 0, 0,
	)
}

// NewCameraFromLookAt creates a camera at from looking at at. The viewport
// sits focusDistance in front of the lens; aperture is the lens diameter.
func NewCameraFromLookAt(from, at, vup core.Vec3, vfov, aspect, aperture, focusDistance, time0, time1 float64) *Camera {
	halfHeight := math.Tan(vfov * math.Pi / 180 / 2)
	halfWidth := halfHeight * aspect
	w := from.Subtract(at).Normalize()
	u := vup.Cross(w)
	v := w.Cross(u)

	lowerLeft := from.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	c := NewCamera(
		lowerLeft,
		u.Multiply(2*halfWidth*focusDistance),
		v.Multiply(2*halfHeight*focusDistance),
		from,
		aperture/2,
		time0, time1,
	)
	c.U, c.V, c.W = u.Normalize(), v.Normalize(), w
	return c
}

// Ray returns the primary ray through viewport coordinates (u, v) in [0,1]²
func (c *Camera) Ray(u, v float64, sampler core.Sampler) core.Ray {
	origin := c.Origin
	if c.LensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.LensRadius)
		origin = origin.Add(c.U.Multiply(rd.X)).Add(c.V.Multiply(rd.Y))
	}
	time := c.Time0
	if c.Time1 != c.Time0 {
		time = core.RandomInRange(sampler, c.Time0, c.Time1)
	}
	direction := c.LowerLeftCorner.
		Add(c.Horizontal.Multiply(u)).
		Add(c.Vertical.Multiply(v)).
		Subtract(origin)
	return core.NewRayAtTime(origin, direction, time)
}

// WithAspect returns a copy whose viewport width is rescaled to the given
// aspect ratio around the same center. The vertical extent is kept.
func (c *Camera) WithAspect(aspect float64) *Camera {
	out := *c
	width := c.Horizontal.Length()
	newWidth := c.Vertical.Length() * aspect
	dir := c.Horizontal.Normalize()
	out.Horizontal = dir.Multiply(newWidth)
	out.LowerLeftCorner = c.LowerLeftCorner.Add(dir.Multiply((width - newWidth) / 2))
	return &out
}
