package core

// Ray represents a ray with an origin, direction, shutter time and an
// optional dispersion parameter W. Rays are values; derived rays keep
// Time and W so dispersive materials stay consistent along a path.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
	W         float64
	HasW      bool
}

// NewRay creates a new ray at time 0 without dispersion
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray at the given shutter time
func NewRayAtTime(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Derive returns a new ray with the same time and dispersion
func (r Ray) Derive(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Time: r.Time, W: r.W, HasW: r.HasW}
}

// WithW returns a copy of the ray carrying dispersion parameter w
func (r Ray) WithW(w float64) Ray {
	r.W = w
	r.HasW = true
	return r
}
