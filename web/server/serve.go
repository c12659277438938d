package server

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// shutdownTimeout bounds how long open requests may delay shutdown
const shutdownTimeout = 5 * time.Second

// Options configures a preview session
type Options struct {
	Addr    string
	SceneID string
	Scene   *scene.Scene
	Model   renderer.ViewModel
	Seed    int64 // zero picks a time based seed
	Save    renderer.SaveFunc
	// Linger keeps serving the final image after the render completes
	// until ctx is cancelled
	Linger bool
}

// Serve renders opts.Scene while serving a live preview on opts.Addr. Log
// output is mirrored to the web console for the duration of the session.
func Serve(ctx context.Context, opts Options) (*renderer.Framebuffer, error) {
	console := NewConsole()
	level := log.GetLevel()
	log.SetSink(io.MultiWriter(os.Stderr, console))
	log.SetLevel(level)
	defer func() {
		log.SetSink(os.Stderr)
		log.SetLevel(level)
	}()

	srv := NewServer(opts.SceneID, opts.Scene, console)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- srv.Start(opts.Addr)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warningf("shutdown: %v", err)
		}
	}()

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	failed := make(chan error, 1)
	go func() {
		// a listener failure stops the render
		if err := <-listenErr; err != nil {
			failed <- err
			cancel()
		}
	}()

	viewer := renderer.NewViewer(opts.Model, opts.Scene, srv, opts.Save)
	if opts.Seed != 0 {
		viewer.WithSeed(opts.Seed)
	}
	fb, err := viewer.Run(renderCtx)
	select {
	case listenFailure := <-failed:
		return fb, listenFailure
	default:
	}
	if err != nil && !errors.Is(err, renderer.ErrAborted) {
		return fb, err
	}

	if opts.Linger && err == nil {
		logger.Notice("render complete; serving the final image until interrupted")
		<-renderCtx.Done()
	}
	return fb, err
}
