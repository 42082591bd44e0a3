package batch

import (
	"context"
	"fmt"

	"devso-backend/internal/domain"

	"go.uber.org/zap"
)

// SoftDeleteCleanupTasklet physically removes rows that were soft-deleted
// by the application. The delete predicate is deleted_at IS NOT NULL on
// current row state, never "rows touched in this run", so the tasklet can
// be executed repeatedly without harm.
type SoftDeleteCleanupTasklet struct {
	repo   domain.CleanupRepository
	logger *zap.Logger
}

func NewSoftDeleteCleanupTasklet(repo domain.CleanupRepository, logger *zap.Logger) *SoftDeleteCleanupTasklet {
	return &SoftDeleteCleanupTasklet{
		repo:   repo,
		logger: logger.With(zap.String("component", "cleanup-tasklet")),
	}
}

func (t *SoftDeleteCleanupTasklet) Execute(ctx context.Context) error {
	recruits, err := t.repo.PurgeSoftDeletedRecruits(ctx)
	if err != nil {
		return fmt.Errorf("purge soft-deleted recruits: %w", err)
	}

	users, err := t.repo.PurgeSoftDeletedUsers(ctx)
	if err != nil {
		return fmt.Errorf("purge soft-deleted users: %w", err)
	}

	t.logger.Info("soft-delete sweep finished",
		zap.Int64("recruits_purged", recruits),
		zap.Int64("users_purged", users),
	)
	return nil
}
