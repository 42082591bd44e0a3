package batch

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CleanupJobName identifies the soft-delete sweep in the runner registry.
const CleanupJobName = "cleanupDeletedRowsJob"

// SchedulerConfig configures the cron trigger and the single calendar date
// on which the cleanup job may run.
type SchedulerConfig struct {
	// Expression is a 6-field cron spec (with seconds), e.g. "0 0 0 * * *".
	Expression string
	// Timezone is the IANA zone the date comparison happens in, so the day
	// boundary is the configured zone's midnight, not UTC midnight.
	Timezone string
	// ExecutionDate is the ISO calendar date (2006-01-02) the job fires on.
	// Empty disables the job entirely.
	ExecutionDate string
}

// CleanupScheduler fires on a cron schedule and launches the cleanup job
// when the current calendar date in the configured zone equals the target
// date. The comparison is exact equality: if the process is down on the
// target day the run is skipped for good, there is no catch-up.
type CleanupScheduler struct {
	runner     JobRunner
	expression string
	location   *time.Location
	targetDate time.Time // zero when no execution date is configured
	logger     *zap.Logger

	cron    *cron.Cron
	running atomic.Bool
	now     func() time.Time // injectable for tests
}

func NewCleanupScheduler(runner JobRunner, cfg SchedulerConfig, logger *zap.Logger) (*CleanupScheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("batch: invalid timezone %q: %w", cfg.Timezone, err)
	}

	s := &CleanupScheduler{
		runner:     runner,
		expression: cfg.Expression,
		location:   location,
		logger:     logger.With(zap.String("component", "cleanup-scheduler")),
		now:        time.Now,
	}

	if cfg.ExecutionDate != "" {
		target, err := time.ParseInLocation(time.DateOnly, cfg.ExecutionDate, location)
		if err != nil {
			return nil, fmt.Errorf("batch: invalid execution date %q: %w", cfg.ExecutionDate, err)
		}
		s.targetDate = target
	}

	return s, nil
}

// Start registers the tick with the cron driver and begins scheduling.
func (s *CleanupScheduler) Start() error {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(s.location))
	if _, err := c.AddFunc(s.expression, s.Tick); err != nil {
		return fmt.Errorf("batch: invalid cron expression %q: %w", s.expression, err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("cleanup scheduler started",
		zap.String("expression", s.expression),
		zap.String("timezone", s.location.String()),
		zap.String("execution_date", s.targetDateString()),
	)
	return nil
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *CleanupScheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Tick is one scheduler invocation. Failures are contained here: a failed
// run is logged and the scheduler keeps ticking. A tick arriving while a
// previous run is still in flight is skipped.
func (s *CleanupScheduler) Tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous cleanup run still in flight, skipping tick")
		return
	}
	defer s.running.Store(false)

	now := s.now().In(s.location)
	if !s.isTargetDate(now) {
		return
	}

	// Fresh timestamp parameter per invocation so the runner treats every
	// trigger (including a manual re-run on the same day) as a distinct run.
	params := map[string]string{
		"time": strconv.FormatInt(now.UnixMilli(), 10),
	}

	if err := s.runner.Run(context.Background(), CleanupJobName, params); err != nil {
		s.logger.Error("cleanup job failed",
			zap.String("date", now.Format(time.DateOnly)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("cleanup job executed", zap.String("date", now.Format(time.DateOnly)))
}

func (s *CleanupScheduler) isTargetDate(now time.Time) bool {
	if s.targetDate.IsZero() {
		return false
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := s.targetDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (s *CleanupScheduler) targetDateString() string {
	if s.targetDate.IsZero() {
		return "(disabled)"
	}
	return s.targetDate.Format(time.DateOnly)
}
