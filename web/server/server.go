package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

var logger = log.New("web")

// eventBuffer bounds the number of pending save/close requests
const eventBuffer = 16

// ErrNoFrame is reported when the image is requested before the first update
var ErrNoFrame = errors.New("no frame rendered yet")

// ProgressUpdate is the JSON progress report of the running render
type ProgressUpdate struct {
	Scene     string  `json:"scene"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Progress  float64 `json:"progress"`
	Results   int     `json:"results"`
	Samples   int     `json:"samplesPerPixel"`
	ElapsedMs int64   `json:"elapsedMs"`
	Frames    int     `json:"frames"`
}

// SystemInfo describes the host the render runs on
type SystemInfo struct {
	LogicalCPUs  int     `json:"logicalCpus"`
	PhysicalCPUs int     `json:"physicalCpus"`
	CPUModel     string  `json:"cpuModel,omitempty"`
	TotalMemory  uint64  `json:"totalMemory"`
	UsedPercent  float64 `json:"usedPercent"`
}

// Server serves a live preview of a render and forwards save and close
// requests to the viewer. It implements renderer.View.
type Server struct {
	echo    *echo.Echo
	sceneID string
	scene   *scene.Scene
	console *Console
	events  chan renderer.Event

	mu      sync.RWMutex
	frame   renderer.Frame
	frames  int
	encoded []byte // PNG of frame, built lazily
	notify  chan struct{}
}

// NewServer creates a preview server for the scene registered as sceneID.
// console may be nil when log capture is not wanted.
func NewServer(sceneID string, s *scene.Scene, console *Console) *Server {
	srv := &Server{
		echo:    echo.New(),
		sceneID: sceneID,
		scene:   s,
		console: console,
		events:  make(chan renderer.Event, eventBuffer),
		notify:  make(chan struct{}),
	}
	srv.echo.HideBanner = true
	srv.echo.HidePort = true
	srv.echo.Use(middleware.Recover())
	srv.echo.Use(middleware.CORS())
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/frame.png", s.handleFrame)
	s.echo.GET("/api/progress", s.handleProgress)
	s.echo.GET("/api/stream", s.handleStream)
	s.echo.GET("/api/system", s.handleSystem)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
	s.echo.POST("/api/save", s.handleEvent(renderer.EventSave))
	s.echo.POST("/api/close", s.handleEvent(renderer.EventClose))
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	logger.Noticef("preview available at http://%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown stops the listener and waits for open requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Update stores the latest frame and wakes the stream subscribers
func (s *Server) Update(frame renderer.Frame) error {
	s.mu.Lock()
	s.frame = frame
	s.frames++
	s.encoded = nil
	close(s.notify)
	s.notify = make(chan struct{})
	s.mu.Unlock()
	return nil
}

// HandleEvents returns the oldest pending request without blocking
func (s *Server) HandleEvents() (renderer.Event, error) {
	select {
	case e := <-s.events:
		return e, nil
	default:
		return renderer.EventNone, nil
	}
}

func (s *Server) progress() ProgressUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ProgressUpdate{
		Scene:     s.sceneID,
		Width:     s.frame.Width,
		Height:    s.frame.Height,
		Progress:  s.frame.Progress,
		Results:   s.frame.Stats.Results,
		Samples:   s.frame.Stats.SamplesPerPixel,
		ElapsedMs: s.frame.Stats.Elapsed.Milliseconds(),
		Frames:    s.frames,
	}
}

// png returns the encoded current frame, caching it until the next update
func (s *Server) png() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frames == 0 {
		return nil, ErrNoFrame
	}
	if s.encoded != nil {
		return s.encoded, nil
	}
	img := &image.RGBA{
		Pix:    s.frame.Pixels,
		Stride: 4 * s.frame.Width,
		Rect:   image.Rect(0, 0, s.frame.Width, s.frame.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	s.encoded = buf.Bytes()
	return s.encoded, nil
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexPage)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFrame(c echo.Context) error {
	data, err := s.png()
	if errors.Is(err, ErrNoFrame) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", data)
}

func (s *Server) handleProgress(c echo.Context) error {
	return c.JSON(http.StatusOK, s.progress())
}

func (s *Server) handleSystem(c echo.Context) error {
	info := SystemInfo{}
	if n, err := cpu.Counts(true); err == nil {
		info.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = n
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.UsedPercent = vm.UsedPercent
	} else {
		logger.Warningf("memory stats unavailable: %v", err)
	}
	return c.JSON(http.StatusOK, info)
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"current": s.sceneID,
		"scenes":  scene.ListScenes(),
	})
}

func (s *Server) handleConsole(c echo.Context) error {
	if s.console == nil {
		return c.JSON(http.StatusOK, []ConsoleMessage{})
	}
	return c.JSON(http.StatusOK, s.console.Messages())
}

func (s *Server) handleEvent(event renderer.Event) echo.HandlerFunc {
	return func(c echo.Context) error {
		select {
		case s.events <- event:
			logger.Infof("queued %s request", event)
			return c.JSON(http.StatusAccepted, map[string]string{"event": event.String()})
		default:
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many pending requests"})
		}
	}
}
