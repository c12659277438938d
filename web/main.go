package main

import (
	"context"
	"errors"
	"image"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
	"github.com/df07/go-progressive-pathtracer/web/server"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "pathtracer-web"
	app.Usage = "serve a live preview of a progressive render"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "port, p",
			Value: "8080",
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cornell",
			Usage: "built-in scene id",
		},
		cli.StringFlag{
			Name:  "save",
			Value: "preview.png",
			Usage: "file name for images saved from the page",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func serve(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	sceneID := ctx.String("scene")
	s, err := scene.Build(sceneID, scene.NewBuilder(core.NewSeededSampler(42)), scene.Options{})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	savePath := ctx.String("save")
	_, err = server.Serve(sigCtx, server.Options{
		Addr:    ":" + ctx.String("port"),
		SceneID: sceneID,
		Scene:   s,
		Model:   renderer.DefaultViewModel(),
		Save: func(index, width, height int, pixels []uint8) error {
			img := &image.RGBA{Pix: pixels, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
			return loaders.SaveImage(loaders.IndexedFilename(savePath, index), img)
		},
		Linger: true,
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, renderer.ErrAborted) {
		return err
	}
	return nil
}
