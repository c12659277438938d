package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

func solid(r, g, b float64) material.Texture {
	return material.NewSolidColor(r, g, b)
}

// createTestScene wraps world in a scene with a uniform environment
func createTestScene(t *testing.T, world, lights geometry.Geometry, sky core.Vec3, depth int) *scene.Scene {
	t.Helper()
	s, err := scene.New(
		scene.Configuration{MaximumDepth: depth},
		scene.NewCameraFromVerticalField(90, 1),
		scene.NewSky(sky, sky),
		world,
		lights,
	)
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}
	return s
}

func averageColor(integrator func(core.Ray, *scene.Scene, core.Sampler) core.Vec3, ray core.Ray, s *scene.Scene, samples int, seed int64) core.Vec3 {
	sampler := core.NewSeededSampler(seed)
	sum := core.Vec3{}
	for i := 0; i < samples; i++ {
		sum = sum.Add(integrator(ray, s, sampler))
	}
	return sum.Divide(float64(samples))
}

func TestPathTracing_MissReturnsEnvironment(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(solid(0.5, 0.5, 0.5)))
	s := createTestScene(t, sphere, nil, core.NewVec3(0.2, 0.4, 0.6), 10)
	pt := NewPathTracingIntegrator()

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), s, core.NewSeededSampler(1))
	if color != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("Expected environment color, got %v", color)
	}
}

func TestPathTracing_AbsorbedPathHasNoBackground(t *testing.T) {
	// the light only emits on its front (+z) side
	light := geometry.NewXYRect(-1, 1, -1, 1, -2, material.NewDiffuseLight(solid(4, 4, 4)))
	s := createTestScene(t, light, nil, core.NewVec3(1, 1, 1), 10)
	pt := NewPathTracingIntegrator()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name     string
		ray      core.Ray
		expected core.Vec3
	}{
		{"front side emits", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec3(4, 4, 4)},
		{"back side is black", core.NewRay(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1)), core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pt.RayColor(tt.ray, s, sampler); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got := pt.RayColorRecursive(tt.ray, s, sampler); got != tt.expected {
				t.Errorf("Recursive: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracing_DepthTermination(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 1, material.NewLambertian(solid(0.5, 0.5, 0.5)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	pt := NewPathTracingIntegrator()

	s := createTestScene(t, sphere, nil, core.NewVec3(1, 1, 1), 1)
	if got := pt.RayColor(ray, s, core.NewSeededSampler(1)); got != (core.Vec3{}) {
		t.Errorf("Expected black with a single bounce, got %v", got)
	}

	s = createTestScene(t, sphere, nil, core.NewVec3(1, 1, 1), 2)
	if got := pt.RayColor(ray, s, core.NewSeededSampler(1)); got == (core.Vec3{}) {
		t.Errorf("Expected light after two bounces, got %v", got)
	}
}

func TestPathTracing_ConvexFurnace(t *testing.T) {
	// rays leaving a convex diffuse sphere never hit it again, so every
	// sample is exactly albedo times the uniform environment
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(solid(0.5, 0.25, 0.125)))
	s := createTestScene(t, sphere, nil, core.NewVec3(1, 1, 1), 50)
	pt := NewPathTracingIntegrator()
	sampler := core.NewSeededSampler(9)

	for i := 0; i < 100; i++ {
		ray := s.Camera.Ray(0.4+0.2*sampler.Get1D(), 0.4+0.2*sampler.Get1D(), sampler)
		got := pt.RayColor(ray, s, sampler)
		if got.Subtract(core.NewVec3(0.5, 0.25, 0.125)).Length() > 1e-9 {
			t.Fatalf("Expected albedo, got %v", got)
		}
	}
}

// nanMaterial reflects with a non-finite attenuation
type nanMaterial struct {
	core.Object
}

func (n *nanMaterial) ColorChannels(core.TextureCoordinate, core.Vec3) core.RGBA {
	return core.NewRGBA(1, 1, 1, 1)
}

func (n *nanMaterial) Scatter(rayIn core.Ray, hit *material.HitRecord, _ core.Sampler) (*material.ScatterRecord, bool) {
	return &material.ScatterRecord{
		Ray:         rayIn.Derive(hit.Position, rayIn.Direction.Reflect(hit.Normal)),
		Specular:    true,
		Attenuation: core.NewVec3(math.NaN(), 1, 1),
		Material:    n,
	}, true
}

func (n *nanMaterial) ScatteringPDF(core.Ray, *material.HitRecord, core.Ray) float64 {
	return 0
}

func (n *nanMaterial) HasAlpha() bool {
	return false
}

func (n *nanMaterial) Emitted(core.Ray, *material.HitRecord) core.Vec3 {
	return core.Vec3{}
}

func TestPathTracing_NonFiniteIsBlack(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 1, &nanMaterial{})
	s := createTestScene(t, sphere, nil, core.NewVec3(1, 1, 1), 10)
	pt := NewPathTracingIntegrator()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if got := pt.RayColor(ray, s, core.NewSeededSampler(1)); got != (core.Vec3{}) {
		t.Errorf("Expected black for NaN path, got %v", got)
	}
	if got := pt.RayColorRecursive(ray, s, core.NewSeededSampler(1)); got != (core.Vec3{}) {
		t.Errorf("Recursive: expected black for NaN path, got %v", got)
	}
}

// litRoom is a diffuse floor under a small sphere light with a dim sky
func litRoom(t *testing.T, withLights bool) *scene.Scene {
	t.Helper()
	floor := geometry.NewXZRect(-5, 5, -5, 5, 0, material.NewLambertian(solid(0.7, 0.7, 0.7)))
	lamp := geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5, material.NewDiffuseLight(solid(10, 10, 10)))
	world, err := geometry.NewList(floor, lamp)
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}
	var lights geometry.Geometry
	if withLights {
		lights = lamp
	}
	return createTestScene(t, world, lights, core.NewVec3(0.1, 0.1, 0.1), 10)
}

func TestPathTracing_Expectations(t *testing.T) {
	pt := NewPathTracingIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -1.5))
	const samples = 100000

	plain := litRoom(t, false)
	mis := litRoom(t, true)

	reference := averageColor(pt.RayColorRecursive, ray, plain, samples, 1)
	tests := []struct {
		name  string
		color core.Vec3
	}{
		{"iterative", averageColor(pt.RayColor, ray, plain, samples, 2)},
		{"iterative with light sampling", averageColor(pt.RayColor, ray, mis, samples, 3)},
		{"recursive with light sampling", averageColor(pt.RayColorRecursive, ray, mis, samples, 4)},
	}

	if reference.X <= 0.1 {
		t.Fatalf("Expected the floor to be lit, got %v", reference)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rel := math.Abs(tt.color.X-reference.X) / reference.X; rel > 0.1 {
				t.Errorf("Expected %v close to reference %v (relative error %.3f)", tt.color, reference, rel)
			}
		})
	}
}

func TestRayTraceColor(t *testing.T) {
	sky := core.NewVec3(0.3, 0.3, 0.3)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -100), 1, material.NewLambertian(solid(0.5, 0.5, 0.5)))
	s := createTestScene(t, sphere, nil, sky, 10)

	// the corner of a 90 degree view misses the distant sphere
	if got := RayTraceColor(NewPathTracingIntegrator(), s, 0, 0, core.NewSeededSampler(1)); got.Subtract(sky).Length() > 1e-12 {
		t.Errorf("Expected sky %v, got %v", sky, got)
	}
}
