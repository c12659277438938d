package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-smoke", "Cornell Smoke"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtInScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtInScenes), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}
	for _, s := range scenes {
		if s.Name == "" || s.Description == "" {
			t.Errorf("Scene %q is missing metadata", s.ID)
		}
	}
}

func TestBuildAllScenes(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			b := NewBuilder(core.NewSeededSampler(1))
			s, err := Build(info.ID, b, Options{Aspect: 1.5})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if s.Camera == nil || s.World == nil || s.Environment == nil {
				t.Fatalf("Incomplete scene %+v", s)
			}
			if got := s.Camera.Horizontal.Length() / s.Camera.Vertical.Length(); got < 1.499 || got > 1.501 {
				t.Errorf("Expected aspect 1.5, got %f", got)
			}
			if b.Count() == 0 || s.Camera.ID() == 0 || s.Environment.ID() == 0 {
				t.Errorf("Expected builder to assign ids")
			}

			// a ray through the middle of the image must evaluate without panicking
			ray := s.Camera.Ray(0.5, 0.5, b.Sampler())
			s.World.Hit(ray, 0.001, 1e9, b.Sampler())
		})
	}
}

func TestBuildUnknownScene(t *testing.T) {
	_, err := Build("missing", NewBuilder(core.NewSeededSampler(1)), Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestBuilderIDsAreSequential(t *testing.T) {
	b := NewBuilder(core.NewSeededSampler(1))
	first := b.Solid(1, 1, 1)
	second := b.Lambertian(1, 0, 0)
	if first.ID() != 1 {
		t.Errorf("Expected first id 1, got %d", first.ID())
	}
	// Lambertian registers its texture first
	if second.ID() != 3 {
		t.Errorf("Expected id 3, got %d", second.ID())
	}

	box := b.Box(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), second)
	seen := map[int]bool{box.ID(): true}
	for _, side := range box.Sides() {
		if seen[side.ID()] {
			t.Errorf("Duplicate id %d", side.ID())
		}
		seen[side.ID()] = true
	}
	if b.Count() != 3+7 {
		t.Errorf("Expected 10 ids, got %d", b.Count())
	}
}
