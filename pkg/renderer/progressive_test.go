package renderer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedView replays a fixed list of events and records the frames it
// receives
type scriptedView struct {
	mu      sync.Mutex
	events  []Event
	frames  []Frame
	failOn  int // fail the n-th update when positive
	updates int
}

func (v *scriptedView) Update(frame Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updates++
	if v.failOn > 0 && v.updates == v.failOn {
		return errors.New("display lost")
	}
	v.frames = append(v.frames, frame)
	return nil
}

func (v *scriptedView) HandleEvents() (Event, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.events) == 0 {
		return EventNone, nil
	}
	e := v.events[0]
	v.events = v.events[1:]
	return e, nil
}

func testModel() ViewModel {
	return ViewModel{Width: 8, Height: 4, Threads: 2, Repetitions: 2, Samples: 2}
}

func TestViewer_Completes(t *testing.T) {
	view := &scriptedView{}
	fb, err := NewViewer(testModel(), simpleScene(t), view, nil).WithSeed(3).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := fb.Progress(testModel().SamplesPerPixel()); got != 1 {
		t.Errorf("Expected complete progress, got %v", got)
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			// preview sample plus every full pass
			if got := fb.SampleCount(x, y); got != 1+4 {
				t.Errorf("pixel (%d,%d) has %d samples, want 5", x, y, got)
			}
		}
	}
	if len(view.frames) == 0 {
		t.Fatal("Expected a final frame")
	}
	last := view.frames[len(view.frames)-1]
	if last.Width != 8 || last.Height != 4 || len(last.Pixels) != 8*4*4 {
		t.Errorf("Unexpected final frame %dx%d with %d bytes", last.Width, last.Height, len(last.Pixels))
	}
	if last.Progress != 1 {
		t.Errorf("Expected final frame progress 1, got %v", last.Progress)
	}
}

func TestViewer_Close(t *testing.T) {
	model := testModel()
	model.Repetitions = 1000
	view := &scriptedView{events: []Event{EventNone, EventClose}}

	fb, err := NewViewer(model, simpleScene(t), view, nil).Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Expected ErrAborted, got %v", err)
	}
	if fb == nil {
		t.Fatal("Expected the partial framebuffer")
	}
	if fb.Results() < 1 || fb.Results() > 2 {
		t.Errorf("Expected at most two merged results before closing, got %d", fb.Results())
	}
}

func TestViewer_Save(t *testing.T) {
	view := &scriptedView{events: []Event{EventSave, EventNone, EventSave}}
	var saved []int
	save := func(index, width, height int, pixels []uint8) error {
		if width != 8 || height != 4 || len(pixels) != width*height*4 {
			t.Errorf("save %d got %dx%d with %d bytes", index, width, height, len(pixels))
		}
		saved = append(saved, index)
		return nil
	}

	if _, err := NewViewer(testModel(), simpleScene(t), view, save).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(saved) != 2 || saved[0] != 0 || saved[1] != 1 {
		t.Errorf("Expected saves 0 and 1, got %v", saved)
	}
}

func TestViewer_SaveErrorDoesNotStopRender(t *testing.T) {
	view := &scriptedView{events: []Event{EventSave}}
	save := func(int, int, int, []uint8) error { return errors.New("disk full") }

	if _, err := NewViewer(testModel(), simpleScene(t), view, save).Run(context.Background()); err != nil {
		t.Fatalf("Expected render to complete despite save failure, got %v", err)
	}
}

func TestViewer_UpdateError(t *testing.T) {
	view := &scriptedView{failOn: 1}
	_, err := NewViewer(testModel(), simpleScene(t), view, nil).
		WithRefresh(time.Millisecond).
		Run(context.Background())
	if err == nil {
		t.Fatal("Expected the view update error to be returned")
	}
}

func TestViewer_ContextCancelled(t *testing.T) {
	model := testModel()
	model.Repetitions = 1000
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewViewer(model, simpleScene(t), &scriptedView{}, nil).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDefaultViewModel(t *testing.T) {
	m := DefaultViewModel()
	if m.Width != 400 || m.Height != 200 {
		t.Errorf("Expected 400x200, got %dx%d", m.Width, m.Height)
	}
	if m.Threads <= 0 {
		t.Errorf("Expected positive thread count, got %d", m.Threads)
	}
	if m.SamplesPerPixel() != 1000 {
		t.Errorf("Expected 1000 samples per pixel, got %d", m.SamplesPerPixel())
	}
}

func TestEvent_String(t *testing.T) {
	tests := map[Event]string{EventNone: "none", EventClose: "close", EventSave: "save"}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("Event(%d).String() = %q, want %q", int(e), got, want)
		}
	}
}
