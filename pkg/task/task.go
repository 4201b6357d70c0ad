package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/threadkit/threadkit/pkg/worker"
)

// Func is the unit of deferred computation a Task runs. Cooperative
// interruption is delivered through ctx: a computation that never observes
// ctx runs to its natural completion even after Cancel.
type Func[R any] func(ctx context.Context) (R, error)

// Mode selects how Execute runs the computation.
type Mode int

const (
	// ModeSync runs the computation on the calling goroutine.
	ModeSync Mode = iota
	// ModeAsync runs the computation on a dedicated worker.
	ModeAsync
)

// State is the monotonic lifecycle tag of a Task.
type State int32

const (
	// StateNew means the task has been created but execution has not started.
	StateNew State = iota
	// StateRunning means execution has been claimed by an execute call.
	StateRunning
	// StateTerminal means the outcome has been captured; it will not change.
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Awaitable is the minimal surface WaitAny needs from a task, letting tasks
// of different result types share one wait set.
type Awaitable interface {
	// Done returns a channel that is closed once the task is terminal.
	Done() <-chan struct{}
	// Terminal reports whether the task has finished, without blocking.
	Terminal() bool
}

// Task is a handle to a deferred or in-flight computation producing a value
// of type R. A task runs at most once, completes exactly once, and is
// immutable after completion.
type Task[R any] struct {
	cell cell[R]
}

// cell binds the computation, its worker and its captured outcome. It is
// owned exclusively by its Task and never escapes.
type cell[R any] struct {
	fn    Func[R]
	w     *worker.Worker
	state atomic.Int32
	done  chan struct{}
	once  sync.Once

	mu        sync.Mutex // guards callback registration against completion
	onSuccess func(R)
	onError   func(error)

	result R
	err    error
}

// New creates a Task in StateNew. The computation does not run until one of
// the execute calls, Await or Result. New panics if fn is nil.
func New[R any](fn Func[R], opts ...Option) *Task[R] {
	if fn == nil {
		panic("task: nil computation")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	t := &Task[R]{}
	c := &t.cell
	c.fn = fn
	c.done = make(chan struct{})
	c.w = worker.New(c.run,
		worker.WithID(options.id),
		worker.WithPriority(options.priority),
		worker.WithLogger(options.logger),
	)
	return t
}

// ExecuteSync runs the computation on the calling goroutine, transitioning
// the task through StateRunning to StateTerminal before returning. A task
// that already left StateNew is not run again.
func (t *Task[R]) ExecuteSync() {
	if t.cell.state.CompareAndSwap(int32(StateNew), int32(StateRunning)) {
		t.cell.w.Run()
	}
}

// ExecuteAsync starts the dedicated worker and returns immediately. Exactly
// one of any number of concurrent execute calls claims the StateNew to
// StateRunning transition; the rest are no-ops.
func (t *Task[R]) ExecuteAsync() {
	if t.cell.state.CompareAndSwap(int32(StateNew), int32(StateRunning)) {
		t.cell.w.Start()
	}
}

// Execute dispatches to ExecuteSync or ExecuteAsync. An unrecognized mode is
// reported as ErrInvalidMode.
func (t *Task[R]) Execute(mode Mode) error {
	switch mode {
	case ModeSync:
		t.ExecuteSync()
	case ModeAsync:
		t.ExecuteAsync()
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}
	return nil
}

// Cancel requests cooperative interruption. On a task that has not started it
// wins the start race and completes the task with ErrCancelled; the worker
// never runs. On a running task it cancels the computation's context; whether
// the task actually stops is up to the computation, and a computation that
// ignores the interrupt still produces its natural outcome. Returns false
// once the task is terminal.
func (t *Task[R]) Cancel() bool {
	c := &t.cell
	if c.state.CompareAndSwap(int32(StateNew), int32(StateRunning)) {
		var zero R
		c.complete(zero, ErrCancelled)
		c.w.Interrupt() // releases the never-started worker's context
		return true
	}
	if t.Terminal() {
		return false
	}
	return c.w.Interrupt()
}

// Await blocks until the task is terminal, starting asynchronous execution
// first if it has not been started. It reports only the caller's own
// interruption: a failed computation still awaits as nil, with the failure
// surfaced by Result. Repeated calls are safe and return immediately once
// the task is terminal.
func (t *Task[R]) Await(ctx context.Context) error {
	t.ExecuteAsync()
	select {
	case <-t.cell.done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrInterrupted, ctx.Err())
	}
}

// Result ensures execution has started, blocks until the task is terminal and
// returns the captured outcome. A failed computation surfaces as the stored
// wrapped failure; cancellation of ctx surfaces as an interruption failure.
func (t *Task[R]) Result(ctx context.Context) (R, error) {
	if err := t.Await(ctx); err != nil {
		var zero R
		return zero, err
	}
	if t.cell.err != nil {
		var zero R
		return zero, t.cell.err
	}
	return t.cell.result, nil
}

// OnSuccess registers the success callback. At most one is kept, the last
// registration wins and nil clears the slot. The callback fires exactly once,
// on the completing goroutine, after the outcome is captured and before
// waiters unblock. A callback registered after completion does not fire.
func (t *Task[R]) OnSuccess(cb func(R)) {
	t.cell.mu.Lock()
	t.cell.onSuccess = cb
	t.cell.mu.Unlock()
}

// OnError registers the failure callback, with the same registration and
// dispatch contract as OnSuccess. Without a registered callback the failure
// is held and surfaces on the next Result call; a task that fails and is
// never asked for its result drops the failure.
func (t *Task[R]) OnError(cb func(error)) {
	t.cell.mu.Lock()
	t.cell.onError = cb
	t.cell.mu.Unlock()
}

// Done returns a channel that is closed once the task is terminal.
func (t *Task[R]) Done() <-chan struct{} {
	return t.cell.done
}

// Terminal reports whether the task has finished, without blocking.
func (t *Task[R]) Terminal() bool {
	select {
	case <-t.cell.done:
		return true
	default:
		return false
	}
}

// State returns the current lifecycle tag.
func (t *Task[R]) State() State {
	return State(t.cell.state.Load())
}

// ID returns the task identifier, shared with its worker.
func (t *Task[R]) ID() uuid.UUID {
	return t.cell.w.ID()
}

// Priority returns the scheduling hint forwarded to the worker.
func (t *Task[R]) Priority() int {
	return t.cell.w.Priority()
}

// SetPriority forwards a scheduling hint to the worker. Silently ignored once
// the task has left StateNew.
func (t *Task[R]) SetPriority(p int) {
	if t.State() == StateNew {
		t.cell.w.SetPriority(p)
	}
}

// run is the worker function: it invokes the computation and hands the
// outcome to the completion protocol.
func (c *cell[R]) run(ctx context.Context) {
	res, err := invoke(ctx, c.fn)
	c.complete(res, err)
}

// invoke recovers a panicking computation into the failure channel so a
// dedicated worker goroutine cannot take the process down.
func invoke[R any](ctx context.Context, fn Func[R]) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("computation panicked: %v", r)
		}
	}()
	return fn(ctx)
}

// complete captures the outcome and dispatches callbacks exactly once. The
// outcome is published and callbacks have returned before done is closed, so
// Await, Result and WaitAny callers only ever observe a fully completed task.
// Spurious re-entry is a no-op.
func (c *cell[R]) complete(res R, err error) {
	c.once.Do(func() {
		c.mu.Lock()
		onSuccess, onError := c.onSuccess, c.onError
		c.mu.Unlock()

		if err != nil {
			c.err = wrapFailure(err)
		} else {
			c.result = res
		}
		c.state.Store(int32(StateTerminal))

		switch {
		case c.err == nil:
			if cbErr := dispatchSuccess(onSuccess, c.result); cbErr != nil {
				// A raising success callback shares the failure channel with
				// the computation itself.
				c.err = errors.Join(ErrTaskFailed, cbErr)
				if onError != nil {
					onError(c.err)
				}
			}
		case onError != nil:
			onError(c.err)
		}

		close(c.done)
	})
}

// dispatchSuccess runs the success callback, converting a panic into an error.
func dispatchSuccess[R any](cb func(R), v R) (err error) {
	if cb == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("success callback panicked: %v", r)
		}
	}()
	cb(v)
	return nil
}

// wrapFailure normalizes a computation error into the single wrapped-failure
// kind callers branch on, keeping the original cause reachable via errors.Is.
// Interruption of the computation keeps its cancellation flavor.
func wrapFailure(err error) error {
	if errors.Is(err, ErrCancelled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return errors.Join(ErrCancelled, err)
	}
	return errors.Join(ErrTaskFailed, err)
}
