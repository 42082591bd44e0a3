package domain

import (
	"context"
	"time"
)

// Follow is a single directed edge in the follow graph. At most one edge
// exists per ordered (follower, following) pair; self-edges never exist.
// Edges are inserted and deleted, never updated or soft-deleted.
type Follow struct {
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowCounts is derived state, recomputed from the edge set after every
// mutation. Counters are intentionally never stored: concurrent
// increment/decrement would drift from the true edge set.
type FollowCounts struct {
	IsFollowing    bool  `json:"is_following"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

type FollowRepository interface {
	// InsertEdge creates the edge, returning a Conflict error when the
	// edge already exists (unique violation at the storage layer, so two
	// concurrent inserts of the same pair cannot both succeed).
	InsertEdge(ctx context.Context, followerID, followingID int64) error
	// DeleteEdge removes the edge and reports how many rows were affected.
	DeleteEdge(ctx context.Context, followerID, followingID int64) (int64, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	CountByFollowing(ctx context.Context, userID int64) (int64, error)
	CountByFollower(ctx context.Context, userID int64) (int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]UserSummary, error)
	ListFollowings(ctx context.Context, userID int64) ([]UserSummary, error)
}

type FollowUsecase interface {
	Follow(ctx context.Context, followerID int64, targetUsername string) (*FollowCounts, error)
	Unfollow(ctx context.Context, followerID int64, targetUsername string) (*FollowCounts, error)
	GetFollowers(ctx context.Context, username string) ([]UserSummary, error)
	GetFollowings(ctx context.Context, username string) ([]UserSummary, error)
}
