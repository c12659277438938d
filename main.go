package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-progressive-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "progressive Monte Carlo path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render one of the built-in scenes progressively and write the result to an
image file. Press Ctrl+C to stop early and keep the partial image.

The output format follows the file extension: png, jpg, bmp or tiff.`,
			Flags:  append(renderFlags(), outputFlags...),
			Action: renderAction,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: scenesAction,
		},
		{
			Name:  "serve",
			Usage: "render a scene with a live preview in the browser",
			Description: `
Start a web server showing the image while it converges. The page offers
save and stop buttons and lets you inspect the surface under a pixel.`,
			Flags:  append(renderFlags(), serveFlags...),
			Action: serveAction,
		},
	}
	return app
}
