package domain

import "context"

// CleanupRepository performs the physical removal of soft-deleted rows.
// Both operations key off current row state only (deleted_at IS NOT NULL),
// so re-running after a partial failure cannot corrupt anything.
type CleanupRepository interface {
	PurgeSoftDeletedRecruits(ctx context.Context) (int64, error)
	PurgeSoftDeletedUsers(ctx context.Context) (int64, error)
}
