package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

func TestConstantMedium_ScatterFraction(t *testing.T) {
	boundary := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), solid(1, 1, 1))
	phase := material.NewIsotropic(material.NewSolidColor(1, 1, 1))

	tests := []struct {
		name    string
		density float64
	}{
		{"thin", 0.1},
		{"medium", 0.5},
		{"thick", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium := NewConstantMedium(tt.density, boundary, phase)
			sampler := core.NewSeededSampler(11)
			ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

			const n = 20000
			hits := 0
			for i := 0; i < n; i++ {
				hit, ok := medium.Hit(ray, 0.001, math.MaxFloat64, sampler)
				if !ok {
					continue
				}
				hits++
				if hit.Position.Z < -1-1e-9 || hit.Position.Z > 1+1e-9 {
					t.Fatalf("Scatter point %v outside the boundary", hit.Position)
				}
				if hit.Material != phase {
					t.Fatalf("Expected phase function material")
				}
			}

			// path length through the box is 2
			expected := 1 - math.Exp(-2*tt.density)
			got := float64(hits) / n
			if math.Abs(got-expected) > 0.02 {
				t.Errorf("Expected scatter fraction %.3f, got %.3f", expected, got)
			}
		})
	}
}

func TestConstantMedium_RayStartingInside(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, solid(1, 1, 1))
	medium := NewConstantMedium(1000, boundary, material.NewIsotropic(material.NewSolidColor(1, 1, 1)))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit, ok := medium.Hit(ray, 0.001, math.MaxFloat64, core.NewSeededSampler(3))
	if !ok {
		t.Fatal("Expected dense medium to scatter")
	}
	if hit.T < 0 || hit.T > 0.1 {
		t.Errorf("Expected scatter close to the origin, got t=%f", hit.T)
	}
}
