package task

import "errors"

var (
	// ErrTaskFailed wraps a failure raised by the computation or by a success
	// callback. The original cause is attached with errors.Join, so
	// errors.Is(err, cause) holds for the error the computation returned.
	ErrTaskFailed = errors.New("task: computation failed")

	// ErrCancelled marks a task whose cancellation request took effect,
	// either before the computation started or because the computation
	// observed its interrupted context.
	ErrCancelled = errors.New("task: cancelled")

	// ErrInterrupted is returned to a caller whose own context was cancelled
	// while blocked in Await, Result, WaitAny or WaitAll.
	ErrInterrupted = errors.New("task: interrupted while waiting")

	// ErrInvalidMode is returned by Execute for an unrecognized mode.
	ErrInvalidMode = errors.New("task: unrecognized execution mode")

	// ErrNoTasks is returned by WaitAny when called with an empty wait set.
	ErrNoTasks = errors.New("task: WaitAny requires at least one task")
)
