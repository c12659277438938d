package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// ErrUnknownScene is returned when no example scene has the requested id
var ErrUnknownScene = errors.New("unknown scene")

// Options tune an example scene for the output image
type Options struct {
	Aspect  float64          // width / height; zero keeps the scene default
	Texture material.Texture // optional image texture for scenes that show one
}

func (o Options) aspect(fallback float64) float64 {
	if o.Aspect > 0 {
		return o.Aspect
	}
	return fallback
}

// Factory assembles a scene through a builder
type Factory func(b *Builder, opts Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	factory     Factory
}

var builtInScenes = []SceneInfo{
	{
		ID:          "simple",
		Description: "Red sphere on a dark ground sphere under a sky gradient",
		factory:     NewSimpleScene,
	},
	{
		ID:          "cornell",
		Description: "Cornell box with a rotated block and a glass sphere",
		factory:     NewCornellScene,
	},
	{
		ID:          "cornell-smoke",
		Description: "Cornell box with two blocks of constant density smoke",
		factory:     NewCornellSmokeScene,
	},
	{
		ID:          "spheres",
		Description: "Random field of diffuse, metal and glass spheres with motion blur",
		factory:     NewSpheresScene,
	},
	{
		ID:          "textures",
		Description: "Noise, image, filtered and blended textures with a sphere light",
		factory:     NewTexturesScene,
	},
}

// ListScenes returns the built-in scenes sorted by id
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	for i := range scenes {
		scenes[i].Name = titleCase(scenes[i].ID)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Build assembles the scene with the given id
func Build(id string, b *Builder, opts Options) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.ID == id {
			s, err := info.factory(b, opts)
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// titleCase converts an id to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
