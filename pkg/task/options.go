package task

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Option is a functional option for configuring a task at creation.
type Option func(*options)

type options struct {
	id       uuid.UUID
	priority int
	logger   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		id:     uuid.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithID sets the task identifier. Nil UUIDs are ignored.
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		if id != uuid.Nil {
			o.id = id
		}
	}
}

// WithPriority sets the initial scheduling hint forwarded to the worker.
func WithPriority(p int) Option {
	return func(o *options) {
		o.priority = p
	}
}

// WithLogger sets the logger the underlying worker emits lifecycle events
// to. The default discards everything, keeping the core contract free of
// logging side effects.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
