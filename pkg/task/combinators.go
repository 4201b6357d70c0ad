package task

import (
	"context"
	"errors"
	"math"
	"time"
)

// Completed returns a task that has already completed successfully with an
// absent value.
func Completed() *Task[struct{}] {
	t := New(func(context.Context) (struct{}, error) {
		return struct{}{}, nil
	})
	t.ExecuteSync()
	return t
}

// FromResult returns a task that has already completed successfully with the
// given value.
func FromResult[T any](value T) *Task[T] {
	t := New(func(context.Context) (T, error) {
		return value, nil
	})
	t.ExecuteSync()
	return t
}

// maxDelay is the longest representable sleep, used when Delay is asked to
// wait indefinitely.
const maxDelay = time.Duration(math.MaxInt64)

// Delay returns an unstarted task whose computation sleeps for d and then
// completes with an absent value. A negative d sleeps for the maximum
// representable duration. The caller starts the task.
func Delay(d time.Duration) *Task[struct{}] {
	if d < 0 {
		d = maxDelay
	}
	return New(func(ctx context.Context) (struct{}, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return struct{}{}, nil
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
	})
}

// WaitAny blocks until at least one of the given tasks is terminal and
// returns its zero-based index. If several tasks are already terminal at
// observation time the lowest index wins. Losing tasks are not cancelled or
// otherwise affected. The caller is expected to have started the tasks; a
// task nobody starts simply never wins. An empty wait set is ErrNoTasks;
// cancellation of ctx unblocks the caller with an interruption failure.
func WaitAny(ctx context.Context, tasks ...Awaitable) (int, error) {
	if len(tasks) == 0 {
		return -1, ErrNoTasks
	}

	for i, t := range tasks {
		if t.Terminal() {
			return i, nil
		}
	}

	// One waiter per task racing into a single slot. Waiters unwind when
	// their task completes or the caller's context is cancelled.
	first := make(chan int, 1)
	for i, t := range tasks {
		go func(i int, t Awaitable) {
			select {
			case <-t.Done():
				select {
				case first <- i:
				default:
				}
			case <-ctx.Done():
			}
		}(i, t)
	}

	select {
	case i := <-first:
		return i, nil
	case <-ctx.Done():
		return -1, errors.Join(ErrInterrupted, ctx.Err())
	}
}

// WaitAll starts any not-yet-started tasks asynchronously, waits for all of
// them to finish and collects the results in order. The first failure is
// returned together with the results gathered so far.
func WaitAll[R any](ctx context.Context, tasks ...*Task[R]) ([]R, error) {
	for _, t := range tasks {
		t.ExecuteAsync()
	}

	results := make([]R, len(tasks))
	for i, t := range tasks {
		res, err := t.Result(ctx)
		results[i] = res
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
