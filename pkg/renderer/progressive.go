package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// ErrAborted is returned when the view asks to close before the render completes
var ErrAborted = errors.New("render aborted")

// Event is reported by a view each time the viewer polls it
type Event int

const (
	EventNone Event = iota
	EventClose
	EventSave
)

func (e Event) String() string {
	switch e {
	case EventClose:
		return "close"
	case EventSave:
		return "save"
	default:
		return "none"
	}
}

// Frame is the image state handed to a view
type Frame struct {
	Width    int
	Height   int
	Pixels   []uint8 // row-major RGBA; owned by the view once delivered
	Progress float64
	Stats    RenderStats
}

// View presents frames and reports user events. The viewer calls both
// methods from its own goroutine only.
type View interface {
	Update(frame Frame) error
	HandleEvents() (Event, error)
}

// SaveFunc stores the current image. index counts the saves of one run.
type SaveFunc func(index, width, height int, pixels []uint8) error

// ViewModel holds the render settings of an interactive run
type ViewModel struct {
	Width       int
	Height      int
	Threads     int
	Repetitions int // number of passes over the image
	Samples     int // samples per pixel per pass
}

// DefaultViewModel renders 400x200 with one thread per logical CPU
func DefaultViewModel() ViewModel {
	threads, err := cpu.Counts(true)
	if err != nil || threads <= 0 {
		threads = runtime.NumCPU()
	}
	return ViewModel{
		Width:       400,
		Height:      200,
		Threads:     threads,
		Repetitions: 100,
		Samples:     10,
	}
}

// SamplesPerPixel is the total number of samples a completed run
// accumulates per pixel
func (m ViewModel) SamplesPerPixel() int {
	return m.Repetitions * m.Samples
}

// Viewer drives a Process, merges its results into a framebuffer and keeps
// a view up to date
type Viewer struct {
	model   ViewModel
	scene   *scene.Scene
	view    View
	save    SaveFunc
	refresh time.Duration
	seed    *int64
}

// NewViewer creates a viewer. save may be nil when saving is not supported.
func NewViewer(model ViewModel, s *scene.Scene, view View, save SaveFunc) *Viewer {
	return &Viewer{
		model:   model,
		scene:   s.WithAspect(float64(model.Width) / float64(model.Height)),
		view:    view,
		save:    save,
		refresh: time.Second,
	}
}

// WithSeed makes the worker samplers deterministic
func (v *Viewer) WithSeed(seed int64) *Viewer {
	v.seed = &seed
	return v
}

// WithRefresh changes how often the view is updated while rendering
func (v *Viewer) WithRefresh(d time.Duration) *Viewer {
	v.refresh = d
	return v
}

// Run renders until the process finishes, the view asks to close or ctx is
// cancelled. A completed run returns the final framebuffer. A close event
// returns the partial framebuffer with ErrAborted.
func (v *Viewer) Run(ctx context.Context) (*Framebuffer, error) {
	m := v.model
	process, err := NewProcess(m.Width, m.Height, m.Threads, m.Repetitions, m.Samples, v.scene, NewIteratorExp2(m.Width, m.Height))
	if err != nil {
		return nil, err
	}
	if v.seed != nil {
		process.Seed = *v.seed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Noticef("rendering %dx%d: %d threads, %d passes of %d samples",
		m.Width, m.Height, m.Threads, m.Repetitions, m.Samples)

	fb := NewFramebuffer(m.Width, m.Height)
	stats := NewRenderStats(m.SamplesPerPixel())
	process.Start(ctx)

	ticker := time.NewTicker(v.refresh)
	defer ticker.Stop()
	saves := 0

	for {
		select {
		case result, ok := <-process.Results():
			if !ok {
				if err := process.Err(); err != nil {
					return nil, err
				}
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				stats.Update(fb)
				if err := v.view.Update(v.frame(fb, stats)); err != nil {
					return nil, fmt.Errorf("view update: %w", err)
				}
				logger.Noticef("render complete\n%s", stats.Table())
				return fb, nil
			}
			fb.Apply(result)
		case <-ticker.C:
			stats.Update(fb)
			if err := v.view.Update(v.frame(fb, stats)); err != nil {
				return nil, fmt.Errorf("view update: %w", err)
			}
			logger.Infof("progress %5.1f%% (%d results)", 100*stats.Progress, stats.Results)
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		event, err := v.view.HandleEvents()
		if err != nil {
			return nil, fmt.Errorf("view events: %w", err)
		}
		switch event {
		case EventClose:
			logger.Notice("render closed by the view")
			return fb, ErrAborted
		case EventSave:
			if v.save == nil {
				logger.Warning("save requested but no save function is configured")
				continue
			}
			if err := v.save(saves, fb.Width, fb.Height, append([]uint8(nil), fb.Pixels()...)); err != nil {
				logger.Errorf("save %d failed: %v", saves, err)
			} else {
				logger.Noticef("saved image %d", saves)
			}
			saves++
		}
	}
}

func (v *Viewer) frame(fb *Framebuffer, stats *RenderStats) Frame {
	return Frame{
		Width:    fb.Width,
		Height:   fb.Height,
		Pixels:   append([]uint8(nil), fb.Pixels()...),
		Progress: stats.Progress,
		Stats:    *stats,
	}
}
