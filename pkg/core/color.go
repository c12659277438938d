package core

import "math"

// RGBA is a linear color with an alpha (opacity) channel
type RGBA struct {
	RGB Vec3
	A   float64
}

// NewRGBA creates a new RGBA color
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{RGB: NewVec3(r, g, b), A: a}
}

// Multiply scales all four channels
func (c RGBA) Multiply(s float64) RGBA {
	return RGBA{RGB: c.RGB.Multiply(s), A: c.A * s}
}

// MultiplyRGBA multiplies channel-wise
func (c RGBA) MultiplyRGBA(other RGBA) RGBA {
	return RGBA{RGB: c.RGB.MultiplyVec(other.RGB), A: c.A * other.A}
}

// Add adds channel-wise
func (c RGBA) Add(other RGBA) RGBA {
	return RGBA{RGB: c.RGB.Add(other.RGB), A: c.A + other.A}
}

// Lerp blends c towards other by t
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// TextureCoordinate is a surface (u, v) parameterisation
type TextureCoordinate struct {
	U, V float64
}

// NewTextureCoordinate creates a new TextureCoordinate
func NewTextureCoordinate(u, v float64) TextureCoordinate {
	return TextureCoordinate{U: u, V: v}
}

// TextureCoordinateFromSphere maps a point on the unit sphere to (u, v)
func TextureCoordinateFromSphere(p Vec3) TextureCoordinate {
	phi := math.Atan2(p.Z, p.X)
	theta := math.Asin(max(-1, min(1, p.Y)))
	return TextureCoordinate{
		U: 1 - (phi+math.Pi)/(2*math.Pi),
		V: (theta + math.Pi/2) / math.Pi,
	}
}
