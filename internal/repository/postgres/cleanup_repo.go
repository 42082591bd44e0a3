package postgres

import (
	"context"

	"devso-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type cleanupRepo struct {
	db *pgxpool.Pool
}

func NewCleanupRepository(db *pgxpool.Pool) domain.CleanupRepository {
	return &cleanupRepo{db: db}
}

// PurgeSoftDeletedRecruits physically removes recruit rows flagged as
// deleted, along with their bookmarks. The predicate depends only on
// current row state, so the sweep is safe to run any number of times.
func (r *cleanupRepo) PurgeSoftDeletedRecruits(ctx context.Context) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM recruit_bookmarks
         WHERE recruit_id IN (SELECT id FROM recruits WHERE deleted_at IS NOT NULL)`)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM recruits WHERE deleted_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PurgeSoftDeletedUsers removes users flagged as deleted together with
// their dependent rows (profile children, follow edges, bookmarks).
func (r *cleanupRepo) PurgeSoftDeletedUsers(ctx context.Context) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	dependents := []string{
		`DELETE FROM follows WHERE follower_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)
         OR following_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM recruit_bookmarks WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM recruit_bookmarks
         WHERE recruit_id IN (SELECT id FROM recruits WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL))`,
		`DELETE FROM recruits WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM careers WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM educations WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM activities WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM certifications WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
		`DELETE FROM skills WHERE user_id IN (SELECT id FROM users WHERE deleted_at IS NOT NULL)`,
	}
	for _, q := range dependents {
		if _, err := tx.Exec(ctx, q); err != nil {
			return 0, err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE deleted_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
