package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcTask wraps a function as a Task for runner tests.
type funcTask struct {
	id uuid.UUID
	fn func(ctx context.Context) error
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn}
}

func (t *funcTask) ID() uuid.UUID                    { return t.id }
func (t *funcTask) Type() string                     { return "test_task" }
func (t *funcTask) Payload() []byte                  { return nil }
func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 2, QueueSize: 10}, discardLogger())
	runner.Start()
	defer runner.Stop()

	var executed atomic.Int32
	done := make(chan struct{})

	const taskCount = 5
	var once sync.Once
	for i := 0; i < taskCount; i++ {
		err := runner.Submit(context.Background(), newFuncTask(func(ctx context.Context) error {
			if executed.Add(1) == taskCount {
				once.Do(func() { close(done) })
			}
			return nil
		}))
		require.NoError(t, err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("tasks not executed, got %d of %d", executed.Load(), taskCount)
	}
}

func TestRunnerSubmitFailsWhenQueueFull(t *testing.T) {
	t.Parallel()

	// A runner that is never started cannot drain its queue.
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	noop := func(ctx context.Context) error { return nil }
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(noop)))

	err := runner.Submit(context.Background(), newFuncTask(noop))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestRunnerReportsTaskFailures(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, discardLogger())

	failures := make(chan error, 1)
	runner.SetErrorHandler(func(task Task, err error) {
		failures <- err
	})

	runner.Start()
	defer runner.Stop()

	taskErr := errors.New("smtp connection refused")
	err := runner.Submit(context.Background(), newFuncTask(func(ctx context.Context) error {
		return taskErr
	}))
	require.NoError(t, err)

	select {
	case got := <-failures:
		assert.ErrorIs(t, got, taskErr)
	case <-time.After(5 * time.Second):
		t.Fatal("error handler never invoked")
	}
}

func TestRunnerStopWaitsForInFlightTask(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())
	runner.Start()

	started := make(chan struct{})
	var finished atomic.Bool

	err := runner.Submit(context.Background(), newFuncTask(func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	}))
	require.NoError(t, err)

	<-started
	runner.Stop()
	assert.True(t, finished.Load(), "Stop must wait for the in-flight task")
}

func TestRunnerSubmitDuringStopDoesNotPanic(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 2, QueueSize: 4}, discardLogger())
	runner.Start()

	noop := func(ctx context.Context) error { return nil }

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Keep submitting while Stop runs concurrently. Submissions may be
		// rejected once the queue backs up, but must never panic.
		for i := 0; i < 100; i++ {
			_ = runner.Submit(context.Background(), newFuncTask(noop))
		}
	}()

	runner.Stop()
	<-done

	// Submitting after shutdown also degrades to an error, not a panic.
	for i := 0; i < 10; i++ {
		_ = runner.Submit(context.Background(), newFuncTask(noop))
	}
}

func TestRunnerDefaultsInvalidConfig(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: -1, QueueSize: 0}, nil)
	assert.Equal(t, 1, runner.config.WorkerCount)
	assert.Equal(t, 1, runner.config.QueueSize)
}
