// Package batch holds the scheduled maintenance machinery: a tasklet
// registry, a runner that executes tasklets as named jobs, and the cron
// scheduler that decides when the cleanup job fires.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Tasklet is a single unit of batch work. Implementations must be
// idempotent: re-running after a partial failure must not corrupt state.
type Tasklet interface {
	Execute(ctx context.Context) error
}

// JobRunner executes a named job with run parameters. Every invocation is
// a distinct run; the params carry at least a fresh timestamp so repeated
// runs on the same day stay distinguishable.
type JobRunner interface {
	Run(ctx context.Context, jobName string, params map[string]string) error
}

// TaskletRunner runs registered tasklets by job name.
type TaskletRunner struct {
	tasklets map[string]Tasklet
	logger   *zap.Logger
}

func NewTaskletRunner(logger *zap.Logger) *TaskletRunner {
	return &TaskletRunner{
		tasklets: make(map[string]Tasklet),
		logger:   logger.With(zap.String("component", "batch-runner")),
	}
}

func (r *TaskletRunner) Register(jobName string, tasklet Tasklet) {
	r.tasklets[jobName] = tasklet
}

func (r *TaskletRunner) Run(ctx context.Context, jobName string, params map[string]string) error {
	tasklet, ok := r.tasklets[jobName]
	if !ok {
		return fmt.Errorf("batch: unknown job %q", jobName)
	}

	r.logger.Info("job starting",
		zap.String("job", jobName),
		zap.Any("params", params),
	)
	start := time.Now()

	if err := tasklet.Execute(ctx); err != nil {
		r.logger.Error("job failed",
			zap.String("job", jobName),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("job completed",
		zap.String("job", jobName),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
