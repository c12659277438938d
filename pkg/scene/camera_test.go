package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func assertVecNear(t *testing.T, name string, got, expected core.Vec3, tolerance float64) {
	t.Helper()
	if got.Subtract(expected).Length() > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

func TestCamera_Ray(t *testing.T) {
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name     string
		camera   *Camera
		expected core.Vec3
	}{
		{
			name:     "vertical field",
			camera:   NewCameraFromVerticalField(90, 1),
			expected: core.NewVec3(0, 0, -1),
		},
		{
			name: "look at",
			camera: NewCameraFromLookAt(
				core.NewVec3(0, 0, -1),
				core.NewVec3(2, 0, 0),
				core.NewVec3(0, 1, 0),
				90, 1, 0, 1, 0, 0,
			),
			expected: core.NewVec3(0.8944, 0, 0.4472),
		},
		{
			name: "explicit viewport",
			camera: NewCamera(
				core.NewVec3(-1, -1, 0),
				core.NewVec3(2, 0, 0),
				core.NewVec3(0, 2, 0),
				core.NewVec3(0, 0, -1),
				0, 0, 0,
			),
			expected: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.camera.Ray(0.5, 0.5, sampler)
			assertVecNear(t, "direction", ray.Direction, tt.expected, 0.001)
		})
	}
}

func TestCamera_WithAspect(t *testing.T) {
	c := NewCamera(
		core.NewVec3(-1, -0.5, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -1),
		0, 0, 0,
	)
	wide := c.WithAspect(1.5)

	assertVecNear(t, "horizontal", wide.Horizontal, core.NewVec3(1.5, 0, 0), 0.001)
	assertVecNear(t, "lower left", wide.LowerLeftCorner, core.NewVec3(-0.75, -0.5, 0), 0.001)
	assertVecNear(t, "original untouched", c.Horizontal, core.NewVec3(2, 0, 0), 0)
}

func TestCamera_LensAndShutter(t *testing.T) {
	c := NewCameraFromLookAt(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		60, 1, 0.5, 4, 2, 3,
	)
	sampler := core.NewSeededSampler(5)
	focus := c.Ray(0.5, 0.5, sampler).At(1)

	for i := 0; i < 200; i++ {
		ray := c.Ray(0.5, 0.5, sampler)
		if ray.Time < 2 || ray.Time > 3 {
			t.Fatalf("Ray time %f outside shutter", ray.Time)
		}
		if ray.Origin.Subtract(c.Origin).Length() > c.LensRadius+1e-12 {
			t.Fatalf("Ray origin %v outside lens", ray.Origin)
		}
		if math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Lens offset must stay in the lens plane, got %v", ray.Origin)
		}
		// every lens sample converges on the same focus point
		assertVecNear(t, "focus point", ray.At(1), focus, 1e-9)
	}
}

func TestSky_Color(t *testing.T) {
	sky := NewSky(core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		direction core.Vec3
		expected  core.Vec3
	}{
		{core.NewVec3(0, 0, 1), core.NewVec3(1, 0.5, 0.5)},
		{core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)},
		{core.NewVec3(0, -2, 0), core.NewVec3(1, 0, 0)},
	}
	for _, tt := range tests {
		got := sky.Color(core.NewRay(core.Vec3{}, tt.direction))
		assertVecNear(t, "sky", got, tt.expected, 0.001)
	}
}

func TestNew_Validation(t *testing.T) {
	b := NewBuilder(core.NewSeededSampler(1))
	camera := NewCameraFromVerticalField(90, 1)
	sky := NewSky(core.Vec3{}, core.Vec3{})
	world := b.Sphere(core.NewVec3(0, 0, -1), 0.5, b.Lambertian(1, 1, 1))

	tests := []struct {
		name        string
		config      Configuration
		camera      *Camera
		environment Environment
		expected    error
	}{
		{"valid", DefaultConfiguration(), camera, sky, nil},
		{"no camera", DefaultConfiguration(), nil, sky, ErrMissingCamera},
		{"no environment", DefaultConfiguration(), camera, nil, ErrMissingEnvironment},
		{"zero depth", Configuration{}, camera, sky, ErrInvalidDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config, tt.camera, tt.environment, world, nil)
			if tt.expected == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	if _, err := New(DefaultConfiguration(), camera, sky, nil, nil); !errors.Is(err, ErrMissingWorld) {
		t.Errorf("Expected ErrMissingWorld, got %v", err)
	}
}
