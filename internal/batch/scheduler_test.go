package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingRunner struct {
	mu     sync.Mutex
	calls  []map[string]string
	err    error
	block  chan struct{} // when set, Run waits until closed
	active chan struct{} // signalled when Run begins
}

func (r *recordingRunner) Run(ctx context.Context, jobName string, params map[string]string) error {
	if r.active != nil {
		r.active <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, params)
	return r.err
}

func (r *recordingRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestScheduler(t *testing.T, runner JobRunner, executionDate string) *CleanupScheduler {
	t.Helper()
	s, err := NewCleanupScheduler(runner, SchedulerConfig{
		Expression:    "0 29 10 * * *",
		Timezone:      "Asia/Seoul",
		ExecutionDate: executionDate,
	}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func seoulTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	require.NoError(t, err)
	return ts
}

func TestSchedulerFiresOnlyOnTargetDate(t *testing.T) {
	runner := &recordingRunner{}
	s := newTestScheduler(t, runner, "2025-03-01")

	// The day before: nothing happens.
	s.now = func() time.Time { return seoulTime(t, "2025-02-28 10:29:00") }
	s.Tick()
	assert.Equal(t, 0, runner.callCount())

	// On the target date: the job runs with a millisecond timestamp param.
	s.now = func() time.Time { return seoulTime(t, "2025-03-01 10:29:00") }
	s.Tick()
	require.Equal(t, 1, runner.callCount())
	first := runner.calls[0]["time"]
	assert.NotEmpty(t, first)

	// A second trigger the same day runs again with a distinct param.
	s.now = func() time.Time { return seoulTime(t, "2025-03-01 15:00:00") }
	s.Tick()
	require.Equal(t, 2, runner.callCount())
	assert.NotEqual(t, first, runner.calls[1]["time"])

	// The day after: no catch-up, no run.
	s.now = func() time.Time { return seoulTime(t, "2025-03-02 10:29:00") }
	s.Tick()
	assert.Equal(t, 2, runner.callCount())
}

func TestSchedulerDayBoundaryIsZoneLocal(t *testing.T) {
	runner := &recordingRunner{}
	s := newTestScheduler(t, runner, "2025-03-01")

	// 2025-02-28 16:00 UTC is already 2025-03-01 01:00 in Seoul.
	s.now = func() time.Time { return time.Date(2025, 2, 28, 16, 0, 0, 0, time.UTC) }
	s.Tick()
	assert.Equal(t, 1, runner.callCount())
}

func TestSchedulerDisabledWithoutExecutionDate(t *testing.T) {
	runner := &recordingRunner{}
	s := newTestScheduler(t, runner, "")

	s.now = func() time.Time { return seoulTime(t, "2025-03-01 10:29:00") }
	s.Tick()
	assert.Equal(t, 0, runner.callCount())
}

func TestSchedulerContainsJobFailure(t *testing.T) {
	runner := &recordingRunner{err: errors.New("db down")}
	s := newTestScheduler(t, runner, "2025-03-01")
	s.now = func() time.Time { return seoulTime(t, "2025-03-01 10:29:00") }

	assert.NotPanics(t, func() { s.Tick() })
	assert.Equal(t, 1, runner.callCount())

	// The scheduler keeps ticking after a failure.
	s.Tick()
	assert.Equal(t, 2, runner.callCount())
}

func TestSchedulerSkipsOverlappingTick(t *testing.T) {
	runner := &recordingRunner{
		block:  make(chan struct{}),
		active: make(chan struct{}, 1),
	}
	s := newTestScheduler(t, runner, "2025-03-01")
	s.now = func() time.Time { return seoulTime(t, "2025-03-01 10:29:00") }

	done := make(chan struct{})
	go func() {
		s.Tick()
		close(done)
	}()
	<-runner.active

	// Ticks while the first run is in flight are dropped.
	s.Tick()
	s.Tick()

	close(runner.block)
	<-done
	assert.Equal(t, 1, runner.callCount())
}

func TestSchedulerConfigValidation(t *testing.T) {
	t.Run("Bad timezone", func(t *testing.T) {
		_, err := NewCleanupScheduler(&recordingRunner{}, SchedulerConfig{
			Expression: "0 0 0 * * *",
			Timezone:   "Mars/Olympus",
		}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("Bad execution date", func(t *testing.T) {
		_, err := NewCleanupScheduler(&recordingRunner{}, SchedulerConfig{
			Expression:    "0 0 0 * * *",
			Timezone:      "Asia/Seoul",
			ExecutionDate: "03/01/2025",
		}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("Bad cron expression surfaces on Start", func(t *testing.T) {
		s, err := NewCleanupScheduler(&recordingRunner{}, SchedulerConfig{
			Expression:    "not a cron line",
			Timezone:      "Asia/Seoul",
			ExecutionDate: "2025-03-01",
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Error(t, s.Start())
	})

	t.Run("Stop without Start is a no-op", func(t *testing.T) {
		s := newTestScheduler(t, &recordingRunner{}, "2025-03-01")
		assert.NotPanics(t, s.Stop)
	})
}
