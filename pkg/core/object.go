package core

// Object carries the identity a scene builder assigns to shapes, materials
// and textures. The zero value means "not registered".
type Object struct {
	id int
}

// ID returns the assigned identity
func (o *Object) ID() int {
	return o.id
}

// SetID assigns the identity. Only scene builders call it, before the
// graph is shared with render workers.
func (o *Object) SetID(id int) {
	o.id = id
}

// Identifiable is implemented by every scene graph node
type Identifiable interface {
	ID() int
	SetID(id int)
}
