package core

import "math"

// ONB is an orthonormal basis used to move samples from local to world space
type ONB struct {
	U, V, W Vec3
}

// NewONBFromW builds a basis whose W axis is the normalized input
func NewONBFromW(n Vec3) ONB {
	w := n.Normalize()
	a := NewVec3(1, 0, 0)
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local transforms local coordinates into world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}
