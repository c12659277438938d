package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
	"github.com/df07/go-progressive-pathtracer/web/server"
)

const (
	// sceneSeed keeps randomly generated scenes stable between runs
	sceneSeed = 42
	// maxTextureSize bounds textures loaded from disk
	maxTextureSize = 2048
)

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cornell",
			Usage: "built-in scene id (see the scenes command)",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 400,
			Usage: "image width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 200,
			Usage: "image height",
		},
		cli.IntFlag{
			Name:  "threads, t",
			Usage: "worker count; 0 uses every logical cpu",
		},
		cli.IntFlag{
			Name:  "passes",
			Value: 100,
			Usage: "number of progressive passes",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 10,
			Usage: "samples per pixel per pass",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "seed for the render samplers; 0 picks one from the clock",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "image file used by scenes that show a bitmap texture",
		},
	}
}

var outputFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output file; defaults to output/<scene>/render_<timestamp>.png",
	},
	cli.BoolFlag{
		Name:  "sync",
		Usage: "render all samples in one synchronous pass instead of progressively",
	},
}

var serveFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "addr",
		Value: "localhost:8080",
		Usage: "listen address of the preview server",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "file name for images saved from the preview",
	},
	cli.BoolFlag{
		Name:  "linger",
		Usage: "keep serving the final image after the render completes",
	},
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// viewModel starts from the defaults and applies the positive flag values
func viewModel(ctx *cli.Context) (renderer.ViewModel, error) {
	model := renderer.DefaultViewModel()
	override := func(dst *int, name string) error {
		v := ctx.Int(name)
		if v < 0 {
			return fmt.Errorf("--%s must not be negative, got %d", name, v)
		}
		if v > 0 {
			*dst = v
		}
		return nil
	}
	for name, dst := range map[string]*int{
		"width":   &model.Width,
		"height":  &model.Height,
		"threads": &model.Threads,
		"passes":  &model.Repetitions,
		"spp":     &model.Samples,
	} {
		if err := override(dst, name); err != nil {
			return model, err
		}
	}
	return model, nil
}

// createScene builds a registered scene, loading its bitmap texture from
// texturePath when one is given
func createScene(id, texturePath string) (*scene.Scene, error) {
	opts := scene.Options{}
	if texturePath != "" {
		texture, err := loaders.LoadTexture(texturePath, maxTextureSize)
		if err != nil {
			return nil, err
		}
		opts.Texture = texture
	}
	b := scene.NewBuilder(core.NewSeededSampler(sceneSeed))
	s, err := scene.Build(id, b, opts)
	if err != nil {
		return nil, err
	}
	logger.Infof("scene %q built with %d objects", id, b.Count())
	if stats := geometry.CollectStats(s.World); stats.Leaves > 0 {
		logger.Infof("world hierarchy\n%s", stats.Table())
	}
	return s, nil
}

// createOutputPath returns out, or a timestamped png below output/<scene>,
// and makes sure its directory exists
func createOutputPath(sceneID, out string) (string, error) {
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return out, nil
}

func pixelsToImage(width, height int, pixels []uint8) *image.RGBA {
	return &image.RGBA{Pix: pixels, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
}

// newSaveFunc writes each saved frame next to path with an index suffix
func newSaveFunc(path string) renderer.SaveFunc {
	return func(index, width, height int, pixels []uint8) error {
		filename := loaders.IndexedFilename(path, index)
		if err := loaders.SaveImage(filename, pixelsToImage(width, height, pixels)); err != nil {
			return err
		}
		logger.Noticef("saved %s", filename)
		return nil
	}
}

// headlessView logs progress and turns an interrupt into a close event
type headlessView struct {
	interrupt chan os.Signal
}

func newHeadlessView() *headlessView {
	v := &headlessView{interrupt: make(chan os.Signal, 1)}
	signal.Notify(v.interrupt, os.Interrupt)
	return v
}

func (v *headlessView) Update(frame renderer.Frame) error {
	logger.Infof("%5.1f%% after %s", 100*frame.Progress, frame.Stats.Elapsed.Round(time.Second))
	return nil
}

func (v *headlessView) HandleEvents() (renderer.Event, error) {
	select {
	case <-v.interrupt:
		logger.Notice("interrupted; writing the partial image")
		return renderer.EventClose, nil
	default:
		return renderer.EventNone, nil
	}
}

func (v *headlessView) Close() {
	signal.Stop(v.interrupt)
}

func renderAction(ctx *cli.Context) error {
	setupLogging(ctx)

	model, err := viewModel(ctx)
	if err != nil {
		return err
	}
	sceneID := ctx.String("scene")
	s, err := createScene(sceneID, ctx.String("texture"))
	if err != nil {
		return err
	}
	path, err := createOutputPath(sceneID, ctx.String("out"))
	if err != nil {
		return err
	}

	var img *image.RGBA
	if ctx.Bool("sync") {
		start := time.Now()
		img, err = renderer.RenderImage(s, model.Width, model.Height, model.SamplesPerPixel(), model.Threads)
		if err != nil {
			return err
		}
		logger.Noticef("rendered %dx%d at %d spp in %s", model.Width, model.Height,
			model.SamplesPerPixel(), time.Since(start).Round(time.Millisecond))
	} else {
		view := newHeadlessView()
		defer view.Close()
		viewer := renderer.NewViewer(model, s, view, newSaveFunc(path))
		if seed := ctx.Int64("seed"); seed != 0 {
			viewer.WithSeed(seed)
		}
		fb, err := viewer.Run(context.Background())
		if err != nil && !errors.Is(err, renderer.ErrAborted) {
			return err
		}
		img = fb.Snapshot()
	}

	if err := loaders.SaveImage(path, img); err != nil {
		return err
	}
	logger.Noticef("render saved as %s", path)
	return nil
}

func scenesAction(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Description"})
	for _, info := range scene.ListScenes() {
		table.Append([]string{info.ID, info.Name, info.Description})
	}
	table.Render()

	_, err := fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}

func serveAction(ctx *cli.Context) error {
	setupLogging(ctx)

	model, err := viewModel(ctx)
	if err != nil {
		return err
	}
	sceneID := ctx.String("scene")
	s, err := createScene(sceneID, ctx.String("texture"))
	if err != nil {
		return err
	}
	path, err := createOutputPath(sceneID, ctx.String("out"))
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, err := server.Serve(sigCtx, server.Options{
		Addr:    ctx.String("addr"),
		SceneID: sceneID,
		Scene:   s,
		Model:   model,
		Seed:    ctx.Int64("seed"),
		Save:    newSaveFunc(path),
		Linger:  ctx.Bool("linger"),
	})
	switch {
	case errors.Is(err, context.Canceled):
		logger.Notice("preview stopped")
		return nil
	case err != nil && !errors.Is(err, renderer.ErrAborted):
		return err
	}
	logger.Noticef("render finished with %d results", fb.Results())
	return nil
}
