package renderer

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Result is the averaged color of one batch of samples for the top-left
// pixel of a tile
type Result struct {
	X, Y    int
	Size    int
	Samples int
	Color   core.Vec3
}

// TileRenderer evaluates tiles of one image with an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a tile renderer for a width x height image
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTile averages samples jittered estimates for the tile's top-left
// pixel. Image rows grow downwards while v grows upwards.
func (tr *TileRenderer) RenderTile(tile Tile, samples int, sampler core.Sampler) Result {
	color := core.Vec3{}
	for i := 0; i < samples; i++ {
		jitter := sampler.Get2D()
		u := (float64(tile.X) + jitter.X) / float64(tr.width)
		v := 1 - (float64(tile.Y)+jitter.Y)/float64(tr.height)
		color = color.Add(integrator.RayTraceColor(tr.integrator, tr.scene, u, v, sampler))
	}
	return Result{
		X:       tile.X,
		Y:       tile.Y,
		Size:    tile.Size,
		Samples: samples,
		Color:   color.Divide(float64(samples)),
	}
}
