package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// keepAlive is the interval of comment lines on idle streams
const keepAlive = 15 * time.Second

// subscribe returns a channel closed by the next Update
func (s *Server) subscribe() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notify
}

// handleStream pushes a progress event after every frame update until the
// client disconnects
func (s *Server) handleStream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		updated := s.subscribe()
		if err := s.sendProgress(w); err != nil {
			return nil
		}
		select {
		case <-updated:
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Server) sendProgress(w *echo.Response) error {
	data, err := json.Marshal(s.progress())
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "progress", string(data))
}

// sendSSEEvent writes one named server-sent event and flushes it
func sendSSEEvent(w *echo.Response, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
