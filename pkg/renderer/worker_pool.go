package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

var (
	// ErrInvalidProcess is returned for non-positive process dimensions or counts
	ErrInvalidProcess = errors.New("invalid render process parameters")
	// ErrWorkerPanic wraps a panic raised inside a render worker
	ErrWorkerPanic = errors.New("render worker panicked")
)

// resultBuffer bounds how far workers may run ahead of the aggregator
const resultBuffer = 4096

// Process renders repetitions passes of a progressive iterator with a pool
// of threads workers. A single-sample preview pass runs first; then the
// passes run in batches of at most threads workers, each worker walking its
// own restarted copy of the iterator with samples samples per tile.
// Results are delivered on a channel that is closed when the run ends.
type Process struct {
	Width       int
	Height      int
	Threads     int
	Repetitions int
	Samples     int
	Seed        int64 // base seed for the worker samplers

	renderer *TileRenderer
	iterator ViewportIterator
	results  chan Result
	finished atomic.Bool
	started  atomic.Bool

	errOnce sync.Once
	err     error
	cancel  context.CancelFunc
}

// NewProcess validates the parameters and creates an idle process
func NewProcess(width, height, threads, repetitions, samples int, s *scene.Scene, iterator ViewportIterator) (*Process, error) {
	if width <= 0 || height <= 0 || threads <= 0 || repetitions <= 0 || samples <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, %d threads, %d repetitions, %d samples",
			ErrInvalidProcess, width, height, threads, repetitions, samples)
	}
	return &Process{
		Width:       width,
		Height:      height,
		Threads:     threads,
		Repetitions: repetitions,
		Samples:     samples,
		Seed:        time.Now().UnixNano(),
		renderer:    NewTileRenderer(s, integrator.NewPathTracingIntegrator(), width, height),
		iterator:    iterator,
		results:     make(chan Result, resultBuffer),
	}, nil
}

// Results returns the result stream. It is closed once every worker has
// returned, whether the run completed, failed or was cancelled.
func (p *Process) Results() <-chan Result {
	return p.results
}

// Finished reports whether the result stream has been closed
func (p *Process) Finished() bool {
	return p.finished.Load()
}

// Err returns the first worker failure, if any. It is stable once
// Finished reports true.
func (p *Process) Err() error {
	if !p.Finished() {
		return nil
	}
	return p.err
}

// Start launches the workers. Cancelling ctx stops them after their
// current tile. Start may be called once.
func (p *Process) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		defer func() {
			p.cancel()
			p.finished.Store(true)
			close(p.results)
		}()

		start := time.Now()
		logger.Debugf("preview pass over %dx%d", p.Width, p.Height)
		p.runBatch(ctx, 0, 1, 1)

		batches := (p.Repetitions + p.Threads - 1) / p.Threads
		for batch := 0; batch < batches && ctx.Err() == nil; batch++ {
			workers := min(p.Threads, p.Repetitions-batch*p.Threads)
			p.runBatch(ctx, 1+batch*p.Threads, workers, p.Samples)
			logger.Debugf("batch %d/%d done after %s", batch+1, batches, time.Since(start))
		}
		logger.Infof("render process stopped after %s", time.Since(start).Round(time.Millisecond))
	}()
}

// runBatch runs workers restarted iterators concurrently and waits for them
func (p *Process) runBatch(ctx context.Context, firstWorker, workers, samples int) {
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.work(ctx, id, samples)
		}(firstWorker + i)
	}
	wg.Wait()
}

func (p *Process) work(ctx context.Context, id, samples int) {
	defer func() {
		if r := recover(); r != nil {
			p.fail(fmt.Errorf("%w: worker %d: %v\n%s", ErrWorkerPanic, id, r, debug.Stack()))
		}
	}()

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(p.Seed + int64(id))))
	tiles := p.iterator.CreateNew()
	for ctx.Err() == nil {
		tile, ok := tiles.Next()
		if !ok {
			return
		}
		result := p.renderer.RenderTile(tile, samples, sampler)
		select {
		case p.results <- result:
		case <-ctx.Done():
			return
		}
	}
}

// fail records the first failure and stops the run
func (p *Process) fail(err error) {
	p.errOnce.Do(func() {
		logger.Error(err.Error())
		p.err = err
		p.cancel()
	})
}
