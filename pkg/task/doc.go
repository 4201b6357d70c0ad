// Package task provides a minimal asynchronous task primitive: a generic
// wrapper around one unit of deferred computation that can be executed
// synchronously or on a dedicated worker, awaited, cancelled, queried for its
// result and observed through completion callbacks.
//
// The package is centred around the generic type Task. A task is created
// unexecuted with New and claims its single execution through the first call
// to ExecuteSync, ExecuteAsync, Await or Result; concurrent execute calls are
// safe and exactly one of them runs the computation. Completion happens
// exactly once, capturing either the value or a wrapped failure, dispatching
// the matching callback, and only then unblocking waiters.
//
//	t := task.New(func(ctx context.Context) (int, error) {
//	    return fetchCount(ctx)
//	})
//	t.OnSuccess(func(n int) { fmt.Println("count:", n) })
//	t.ExecuteAsync()
//
//	n, err := t.Result(context.Background())
//
// # Cancellation
//
// Cancel is best-effort: it cancels the context the computation observes. A
// computation that ignores its context runs to completion and the task keeps
// the natural outcome. Cancelling a task that never started completes it
// immediately with ErrCancelled.
//
// # Combinators
//
// Completed, FromResult and Delay construct common pre-completed and timer
// tasks. WaitAny blocks until the first of a set of started tasks finishes
// and returns its index; WaitAll collects every result. WaitAny accepts the
// Awaitable interface, so tasks of different result types can share one wait
// set.
//
// # Error handling
//
// Computation failures, cancellations and caller interruptions are normalized
// into sentinel-joined errors (ErrTaskFailed, ErrCancelled, ErrInterrupted)
// with the original cause reachable through errors.Is. A failure with no
// registered callback is held on the task and surfaces on the next Result
// call; a failed task nobody asks for its result drops the failure.
package task
