package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneID     string
		expectError bool
	}{
		{"simple scene", "simple", false},
		{"cornell scene", "cornell", false},
		{"cornell smoke scene", "cornell-smoke", false},
		{"spheres scene", "spheres", false},
		{"textures scene", "textures", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneID, "")
			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for %q, got %v", tt.sceneID, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for %q", tt.sceneID)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.sceneID, err)
			}
			if s.Camera == nil || s.World == nil || s.Environment == nil {
				t.Errorf("Incomplete scene for %q: %+v", tt.sceneID, s)
			}
		})
	}
}

func TestCreateScene_Texture(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(60 * x), G: uint8(60 * y), B: 128, A: 255})
		}
	}
	texturePath := filepath.Join(dir, "texture.png")
	if err := loaders.SaveImage(texturePath, img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if _, err := createScene("textures", texturePath); err != nil {
		t.Errorf("Expected textures scene with a loaded texture, got %v", err)
	}
	if _, err := createScene("textures", filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for a missing texture file")
	}
}

func TestCreateOutputPath(t *testing.T) {
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	explicit := filepath.Join("renders", "nested", "out.png")
	got, err := createOutputPath("cornell", explicit)
	if err != nil {
		t.Fatalf("createOutputPath failed: %v", err)
	}
	if got != explicit {
		t.Errorf("Expected %q, got %q", explicit, got)
	}
	if _, err := os.Stat(filepath.Dir(explicit)); err != nil {
		t.Errorf("Expected output directory to exist: %v", err)
	}

	got, err = createOutputPath("cornell", "")
	if err != nil {
		t.Fatalf("createOutputPath failed: %v", err)
	}
	if dir := filepath.Dir(got); dir != filepath.Join("output", "cornell") {
		t.Errorf("Expected output/cornell, got %q", dir)
	}
	if base := filepath.Base(got); !strings.HasPrefix(base, "render_") || filepath.Ext(base) != ".png" {
		t.Errorf("Unexpected default file name %q", base)
	}
}

func TestScenesCommand(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"pathtracer", "scenes"}); err != nil {
		t.Fatalf("scenes command failed: %v", err)
	}
	for _, info := range scene.ListScenes() {
		if !strings.Contains(out.String(), info.ID) {
			t.Errorf("Expected listing to contain %q:\n%s", info.ID, out.String())
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"progressive", []string{"--passes", "2", "--spp", "1"}},
		{"synchronous", []string{"--sync", "--passes", "1", "--spp", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".png")
			args := append([]string{"pathtracer", "render", "--scene", "simple",
				"--width", "16", "--height", "8", "--threads", "2", "--seed", "5", "--out", out}, tt.args...)
			if err := newApp().Run(args); err != nil {
				t.Fatalf("render command failed: %v", err)
			}
			img, err := loaders.LoadImage(out, 0)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if img.Rect.Dx() != 16 || img.Rect.Dy() != 8 {
				t.Errorf("Expected 16x8 output, got %v", img.Rect)
			}
		})
	}
}

func TestRenderCommand_InvalidFlags(t *testing.T) {
	args := []string{"pathtracer", "render", "--scene", "simple", "--width", "-4", "--out", filepath.Join(t.TempDir(), "x.png")}
	if err := newApp().Run(args); err == nil {
		t.Error("Expected error for a negative width")
	}
	args = []string{"pathtracer", "render", "--scene", "nope", "--out", filepath.Join(t.TempDir(), "x.png")}
	if err := newApp().Run(args); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
