package worker_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadkit/threadkit/pkg/logger"
	"github.com/threadkit/threadkit/pkg/worker"
)

func TestStartRunsExactlyOnce(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	w := worker.New(func(ctx context.Context) {
		runs.Add(1)
	})

	require.True(t, w.Start())
	assert.False(t, w.Start())
	assert.False(t, w.Run())

	require.NoError(t, w.Join(context.Background()))
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, worker.StateFinished, w.State())
}

func TestRunExecutesInline(t *testing.T) {
	t.Parallel()

	var ran atomic.Bool
	w := worker.New(func(ctx context.Context) {
		ran.Store(true)
	})

	require.True(t, w.Run())
	// Run returns only after the function did.
	require.True(t, ran.Load())
	assert.Equal(t, worker.StateFinished, w.State())
	assert.False(t, w.Run())
}

func TestJoinInterrupted(t *testing.T) {
	t.Parallel()

	w := worker.New(func(ctx context.Context) {
		<-ctx.Done()
	})
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := w.Join(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, worker.ErrJoinInterrupted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Unblock the worker so it does not outlive the test.
	w.Interrupt()
	require.NoError(t, w.Join(context.Background()))
}

func TestInterruptCancelsFunctionContext(t *testing.T) {
	t.Parallel()

	interrupted := make(chan struct{})
	w := worker.New(func(ctx context.Context) {
		<-ctx.Done()
		close(interrupted)
	})
	w.Start()

	require.True(t, w.Interrupt())

	select {
	case <-interrupted:
	case <-time.After(time.Second):
		t.Fatal("worker function never observed the interrupt")
	}

	require.NoError(t, w.Join(context.Background()))
	assert.False(t, w.Interrupt(), "interrupt after finish must report false")
}

func TestPriorityFrozenOnceStarted(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	w := worker.New(func(ctx context.Context) {
		<-release
	}, worker.WithPriority(2))

	assert.Equal(t, 2, w.Priority())
	w.SetPriority(4)
	assert.Equal(t, 4, w.Priority())

	w.Start()
	w.SetPriority(8) // ignored once running
	assert.Equal(t, 4, w.Priority())

	close(release)
	require.NoError(t, w.Join(context.Background()))
}

func TestWorkerID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	w := worker.New(func(ctx context.Context) {}, worker.WithID(id))
	assert.Equal(t, id, w.ID())

	// Workers without an explicit ID get their own.
	other := worker.New(func(ctx context.Context) {})
	assert.NotEqual(t, uuid.Nil, other.ID())
	assert.NotEqual(t, w.ID(), other.ID())
}

func TestLifecycleLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithLevel(slog.LevelDebug),
		logger.WithFormat(logger.FormatText),
		logger.WithOutput(&buf),
	)

	id := uuid.New()
	w := worker.New(func(ctx context.Context) {},
		worker.WithID(id),
		worker.WithLogger(log),
	)
	require.True(t, w.Run())

	out := buf.String()
	assert.Contains(t, out, "worker running")
	assert.Contains(t, out, "worker finished")
	assert.Contains(t, out, id.String())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "new", worker.StateNew.String())
	assert.Equal(t, "running", worker.StateRunning.String())
	assert.Equal(t, "finished", worker.StateFinished.String())
	assert.Equal(t, "unknown", worker.State(99).String())
}

func TestNewNilFunctionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		worker.New(nil)
	})
}
