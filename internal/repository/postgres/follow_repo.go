package postgres

import (
	"context"
	"errors"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type followRepo struct {
	db *pgxpool.Pool
}

func NewFollowRepository(db *pgxpool.Pool) domain.FollowRepository {
	return &followRepo{db: db}
}

// InsertEdge relies on the composite primary key (follower_id, following_id)
// to reject duplicates, so two concurrent inserts of the same pair cannot
// both succeed even across process instances.
func (r *followRepo) InsertEdge(ctx context.Context, followerID, followingID int64) error {
	query := `INSERT INTO follows (follower_id, following_id, created_at)
              VALUES ($1, $2, now())`
	_, err := r.db.Exec(ctx, query, followerID, followingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Already following this user")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *followRepo) DeleteEdge(ctx context.Context, followerID, followingID int64) (int64, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	tag, err := r.db.Exec(ctx, query, followerID, followingID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return tag.RowsAffected(), nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *followRepo) CountByFollowing(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM follows WHERE following_id = $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (r *followRepo) CountByFollower(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (r *followRepo) ListFollowers(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	query := `SELECT u.id, u.username, u.name, u.bio, u.profile_image_url
              FROM follows f
              JOIN users u ON u.id = f.follower_id
              WHERE f.following_id = $1 AND u.deleted_at IS NULL
              ORDER BY f.created_at DESC`
	return r.queryUsers(ctx, query, userID)
}

func (r *followRepo) ListFollowings(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	query := `SELECT u.id, u.username, u.name, u.bio, u.profile_image_url
              FROM follows f
              JOIN users u ON u.id = f.following_id
              WHERE f.follower_id = $1 AND u.deleted_at IS NULL
              ORDER BY f.created_at DESC`
	return r.queryUsers(ctx, query, userID)
}

func (r *followRepo) queryUsers(ctx context.Context, query string, userID int64) ([]domain.UserSummary, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	users := make([]domain.UserSummary, 0)
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Bio, &u.ProfileImageURL); err != nil {
			return nil, apperror.Internal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}
