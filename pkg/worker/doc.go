// Package worker provides the dedicated execution primitive the task package
// runs computations on: a goroutine-backed worker that can be started at most
// once, run inline on the calling goroutine, joined until finished, and
// cooperatively interrupted through the context its function observes.
//
// The worker deliberately mirrors a bare thread rather than a pool member.
// There is no queue and no reuse; one worker runs one function and then stays
// in StateFinished forever. Priority is carried as an advisory hint only,
// since goroutines expose no OS-level scheduling priority.
//
// # Usage
//
//	w := worker.New(func(ctx context.Context) {
//	    select {
//	    case <-time.After(time.Second):
//	    case <-ctx.Done():
//	    }
//	})
//	w.Start()
//	if err := w.Join(context.Background()); err != nil {
//	    // the caller was interrupted, not the worker
//	}
//
// Interrupt cancels the function's context; a function that never observes
// the context runs to completion regardless.
package worker
