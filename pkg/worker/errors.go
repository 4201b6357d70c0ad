package worker

import "errors"

var (
	// ErrJoinInterrupted is returned by Join when the caller's context is
	// cancelled before the worker finishes.
	ErrJoinInterrupted = errors.New("worker: join interrupted")
)
