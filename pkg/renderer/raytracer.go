package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"sync"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Raytracer renders a whole image in one synchronous pass
type Raytracer struct {
	scene   *scene.Scene
	width   int
	height  int
	threads int
	seed    int64
}

// NewRaytracer creates a raytracer for a width x height image. The scene
// camera is adapted to the image aspect ratio.
func NewRaytracer(s *scene.Scene, width, height, threads int) (*Raytracer, error) {
	if width <= 0 || height <= 0 || threads <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, %d threads", ErrInvalidProcess, width, height, threads)
	}
	return &Raytracer{
		scene:   s.WithAspect(float64(width) / float64(height)),
		width:   width,
		height:  height,
		threads: threads,
		seed:    1,
	}, nil
}

// SetSeed changes the base seed of the row samplers
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// RenderPass renders every pixel with samples samples. Rows are spread over
// the configured number of goroutines, each row with its own sampler, so
// the result does not depend on scheduling.
func (rt *Raytracer) RenderPass(samples int) *Framebuffer {
	fb := NewFramebuffer(rt.width, rt.height)
	tiles := NewTileRenderer(rt.scene, integrator.NewPathTracingIntegrator(), rt.width, rt.height)

	rows := make(chan int)
	results := make([][]Result, rt.height)
	var wg sync.WaitGroup
	for w := 0; w < rt.threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				sampler := core.NewRandomSampler(rand.New(rand.NewSource(rt.seed + int64(y))))
				row := make([]Result, rt.width)
				for x := 0; x < rt.width; x++ {
					row[x] = tiles.RenderTile(Tile{X: x, Y: y, Size: 1}, samples, sampler)
				}
				results[y] = row
			}
		}()
	}
	for y := 0; y < rt.height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	for _, row := range results {
		for _, r := range row {
			fb.Apply(r)
		}
	}
	return fb
}

// RenderImage renders s at width x height with samples samples per pixel
// and returns the gamma corrected image
func RenderImage(s *scene.Scene, width, height, samples, threads int) (*image.RGBA, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidProcess, samples)
	}
	rt, err := NewRaytracer(s, width, height, threads)
	if err != nil {
		return nil, err
	}
	return rt.RenderPass(samples).Snapshot(), nil
}
