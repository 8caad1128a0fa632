package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not reached in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestQueueProcessesJobs(t *testing.T) {
	var processed int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt64(&processed, 1)
		return nil
	}, QueueConfig{Workers: 2})

	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{ID: "job"}))
	}

	waitFor(t, func() bool { return atomic.LoadInt64(&processed) == 5 })
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if atomic.AddInt64(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: 5 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "flaky"}))
	waitFor(t, func() bool { return atomic.LoadInt64(&attempts) == 3 })
}

func TestQueueStopsRetryingAfterBudget(t *testing.T) {
	var attempts int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt64(&attempts, 1)
		return errors.New("permanent")
	}, QueueConfig{Workers: 1, MaxRetries: 1, RetryDelay: 5 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "doomed"}))
	waitFor(t, func() bool { return atomic.LoadInt64(&attempts) == 2 })

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})

	err := q.Enqueue(Job{ID: "early"})
	assert.Error(t, err)
}

func TestQueueStopIsIdempotent(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	q.Start(context.Background())
	q.Stop()
	q.Stop()
}
