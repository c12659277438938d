package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

var (
	ErrMissingCamera      = errors.New("scene has no camera")
	ErrMissingEnvironment = errors.New("scene has no environment")
	ErrMissingWorld       = errors.New("scene has no world geometry")
	ErrInvalidDepth       = errors.New("maximum depth must be positive")
)

// Scene bundles everything needed to evaluate camera rays. It is immutable
// once built and shared by all render workers.
type Scene struct {
	Config      Configuration
	Camera      *Camera
	Environment Environment
	World       geometry.Geometry
	Lights      geometry.Geometry // optional light sampling target
}

// New validates the parts and assembles a scene. lights may be nil.
func New(config Configuration, camera *Camera, environment Environment, world, lights geometry.Geometry) (*Scene, error) {
	switch {
	case camera == nil:
		return nil, fmt.Errorf("scene: %w", ErrMissingCamera)
	case environment == nil:
		return nil, fmt.Errorf("scene: %w", ErrMissingEnvironment)
	case world == nil:
		return nil, fmt.Errorf("scene: %w", ErrMissingWorld)
	case config.MaximumDepth <= 0:
		return nil, fmt.Errorf("scene: %w (got %d)", ErrInvalidDepth, config.MaximumDepth)
	}
	return &Scene{
		Config:      config,
		Camera:      camera,
		Environment: environment,
		World:       world,
		Lights:      lights,
	}, nil
}

// WithAspect returns a shallow copy whose camera matches the aspect ratio
// of the output image
func (s *Scene) WithAspect(aspect float64) *Scene {
	out := *s
	out.Camera = s.Camera.WithAspect(aspect)
	return &out
}
