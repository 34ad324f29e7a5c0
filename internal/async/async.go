// Package async runs texture generation off the caller's goroutine and lets
// a host poll for completion without blocking.
//
// Submit returns a Handle immediately. The executor resolves every handle
// exactly once; the host retires it after consuming the result, typically
// through a Queue polled once per frame.
package async

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

// Job produces a texture map.
type Job func() (*texture.Map, error)

// Generate wraps a generator call as a Job.
func Generate(g texture.Generator, width, height int) Job {
	return func() (*texture.Map, error) {
		return g.Generate(width, height)
	}
}

// Result is the outcome of a Job.
type Result struct {
	Map     *texture.Map
	Err     error
	Elapsed time.Duration
}

// Handle is a pending job. It is safe to poll from any goroutine.
type Handle struct {
	id     uint64
	label  string
	done   chan struct{}
	result Result
}

// ID is unique per executor.
func (h *Handle) ID() uint64 { return h.id }

// Label is the name given at submission.
func (h *Handle) Label() string { return h.label }

// Poll reports the result if the job has finished. It never blocks.
func (h *Handle) Poll() (Result, bool) {
	select {
	case <-h.done:
		return h.result, true
	default:
		return Result{}, false
	}
}

// Done is closed once the result is available.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) resolve(r Result) {
	h.result = r
	close(h.done)
}

// Scheduler accepts jobs for background execution.
type Scheduler interface {
	Submit(label string, job Job) *Handle
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	// MaxConcurrent bounds running jobs; defaults to GOMAXPROCS.
	MaxConcurrent int
	Logger        *slog.Logger
}

// Executor runs each job on its own goroutine, with at most MaxConcurrent
// running at once.
type Executor struct {
	sem           *semaphore.Weighted
	maxConcurrent int
	logger        *slog.Logger
	wg            sync.WaitGroup
	nextID        atomic.Uint64

	queued    atomic.Int32
	active    atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
}

// Status is a snapshot of executor activity.
type Status struct {
	Queued        int   `json:"queued"`
	Active        int   `json:"active"`
	Completed     int64 `json:"completed"`
	Failed        int64 `json:"failed"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// NewExecutor creates an executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	n := cfg.MaxConcurrent
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &Executor{
		sem:           semaphore.NewWeighted(int64(n)),
		maxConcurrent: n,
		logger:        cfg.Logger,
	}
}

func (e *Executor) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Submit schedules job and returns its handle without waiting.
func (e *Executor) Submit(label string, job Job) *Handle {
	h := &Handle{
		id:    e.nextID.Add(1),
		label: label,
		done:  make(chan struct{}),
	}
	e.queued.Add(1)
	e.wg.Add(1)
	go e.run(h, job)
	return h
}

func (e *Executor) run(h *Handle, job Job) {
	defer e.wg.Done()

	// Acquire cannot fail with a background context.
	_ = e.sem.Acquire(context.Background(), 1)
	e.queued.Add(-1)
	e.active.Add(1)

	start := time.Now()
	m, err := protect(job)
	r := Result{Map: m, Err: err, Elapsed: time.Since(start)}

	e.active.Add(-1)
	e.sem.Release(1)

	if err != nil {
		e.failed.Add(1)
		e.log().Error("texture job failed", "id", h.id, "label", h.label, "error", err)
	} else {
		e.completed.Add(1)
		e.log().Debug("texture job done", "id", h.id, "label", h.label, "elapsed", r.Elapsed)
	}
	h.resolve(r)
}

// protect runs job, converting a panic into an error so the handle still
// resolves.
func protect(job Job) (m *texture.Map, err error) {
	defer func() {
		if p := recover(); p != nil {
			m, err = nil, fmt.Errorf("texture job panicked: %v", p)
		}
	}()
	return job()
}

// Status returns current counters.
func (e *Executor) Status() Status {
	return Status{
		Queued:        int(e.queued.Load()),
		Active:        int(e.active.Load()),
		Completed:     e.completed.Load(),
		Failed:        e.failed.Load(),
		MaxConcurrent: e.maxConcurrent,
	}
}

// Wait blocks until every submitted job has resolved. Hosts use it at
// shutdown, never on the polling path.
func (e *Executor) Wait() {
	e.wg.Wait()
}
