package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/threadkit/threadkit/pkg/logger"
)

// State is a coarse view of the worker lifecycle.
type State int32

const (
	// StateNew means the worker has been created but not started.
	StateNew State = iota
	// StateRunning means the worker function is executing.
	StateRunning
	// StateFinished means the worker function has returned.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Worker runs a single function on a dedicated goroutine. A worker can be
// started at most once, joined until finished, and cooperatively interrupted
// through the context passed to its function.
type Worker struct {
	id       uuid.UUID
	fn       func(context.Context)
	state    atomic.Int32
	priority atomic.Int32
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	log      *slog.Logger
}

// New creates a worker for fn in StateNew. It panics if fn is nil.
func New(fn func(context.Context), opts ...Option) *Worker {
	if fn == nil {
		panic("worker: nil function")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		id:     options.id,
		fn:     fn,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		log:    options.logger,
	}
	w.priority.Store(int32(options.priority))
	return w
}

// Start launches the worker goroutine. It returns true if this call performed
// the StateNew to StateRunning transition; repeated or concurrent calls
// return false without starting a second goroutine.
func (w *Worker) Start() bool {
	if !w.state.CompareAndSwap(int32(StateNew), int32(StateRunning)) {
		return false
	}
	go w.run()
	return true
}

// Run executes the worker function on the calling goroutine instead of a
// dedicated one, blocking until it returns. Same start-once contract as Start.
func (w *Worker) Run() bool {
	if !w.state.CompareAndSwap(int32(StateNew), int32(StateRunning)) {
		return false
	}
	w.run()
	return true
}

func (w *Worker) run() {
	w.log.Debug("worker running",
		logger.WorkerID(w.id),
		slog.Int("priority", w.Priority()),
	)
	defer func() {
		w.cancel()
		w.state.Store(int32(StateFinished))
		close(w.done)
		w.log.Debug("worker finished", logger.WorkerID(w.id))
	}()
	w.fn(w.ctx)
}

// Join blocks until the worker function has returned. A worker that was never
// started keeps Join blocked until someone starts it. Cancellation of ctx
// unblocks the caller with ErrJoinInterrupted wrapping the context error.
func (w *Worker) Join(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrJoinInterrupted, ctx.Err())
	}
}

// Interrupt requests cooperative cancellation by cancelling the context the
// worker function observes. It returns false once the worker has finished;
// whether a running function actually stops is up to the function itself.
func (w *Worker) Interrupt() bool {
	if w.State() == StateFinished {
		return false
	}
	w.log.Debug("worker interrupt requested", logger.WorkerID(w.id))
	w.cancel()
	return true
}

// State returns the current lifecycle state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// ID returns the worker identifier.
func (w *Worker) ID() uuid.UUID {
	return w.id
}

// Priority returns the scheduling hint.
func (w *Worker) Priority() int {
	return int(w.priority.Load())
}

// SetPriority records a scheduling hint. Goroutines carry no OS-level
// priority, so the value is advisory only. Ignored once the worker has left
// StateNew.
func (w *Worker) SetPriority(p int) {
	if w.State() == StateNew {
		w.priority.Store(int32(p))
	}
}
