package core

import (
	"math/rand"
	"testing"
)

func TestAABB_UnionContainsBothAndIsTight(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	randomBox := func() AABB {
		a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		return NewAABB(a, b)
	}

	for i := 0; i < 200; i++ {
		b1, b2 := randomBox(), randomBox()
		u := b1.Union(b2)

		for _, c := range b1.Corners() {
			if !u.Contains(c) {
				t.Fatalf("Union %v does not contain corner %v of %v", u, c, b1)
			}
		}
		for _, c := range b2.Corners() {
			if !u.Contains(c) {
				t.Fatalf("Union %v does not contain corner %v of %v", u, c, b2)
			}
		}

		for axis := 0; axis < 3; axis++ {
			wantMin := min(b1.Min.Axis(axis), b2.Min.Axis(axis))
			wantMax := max(b1.Max.Axis(axis), b2.Max.Axis(axis))
			if u.Min.Axis(axis) != wantMin || u.Max.Axis(axis) != wantMax {
				t.Fatalf("Union is not tight on axis %d: %v", axis, u)
			}
		}

		if b2.Union(b1) != u {
			t.Fatalf("Union is not commutative")
		}
	}
}

func TestAABB_NewNormalizesCorners(t *testing.T) {
	box := NewAABB(NewVec3(1, -1, 3), NewVec3(-1, 1, 2))
	if box.Min != NewVec3(-1, -1, 2) || box.Max != NewVec3(1, 1, 3) {
		t.Errorf("Expected normalized box, got %v", box)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0.001, 100, true},
		{"miss above", NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), 0.001, 100, false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), 0.001, 100, false},
		{"interval too short", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0.001, 3, false},
		{"axis parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), 0.001, 100, true},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), 0.001, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}
