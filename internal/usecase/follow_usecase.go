package usecase

import (
	"context"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"
)

type followUsecase struct {
	followRepo domain.FollowRepository
	userRepo   domain.UserRepository
}

func NewFollowUsecase(followRepo domain.FollowRepository, userRepo domain.UserRepository) domain.FollowUsecase {
	return &followUsecase{followRepo: followRepo, userRepo: userRepo}
}

// getFollowCounts recomputes both aggregates from the edge set. Called
// after every mutation so the returned counts always reflect the caller's
// own write; counters are never cached or stored.
func (u *followUsecase) getFollowCounts(ctx context.Context, userID int64, isFollowing bool) (*domain.FollowCounts, error) {
	followerCount, err := u.followRepo.CountByFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followingCount, err := u.followRepo.CountByFollower(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.FollowCounts{
		IsFollowing:    isFollowing,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

func (u *followUsecase) resolveTarget(ctx context.Context, username string) (*domain.User, error) {
	target, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFound("User not found")
	}
	return target, nil
}

func (u *followUsecase) Follow(ctx context.Context, followerID int64, targetUsername string) (*domain.FollowCounts, error) {
	target, err := u.resolveTarget(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == followerID {
		return nil, apperror.BadRequest("Cannot follow yourself")
	}

	// Fast pre-check for a clean error message; the storage-level unique
	// constraint remains the real guard against concurrent duplicates.
	exists, err := u.followRepo.Exists(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Already following this user")
	}

	if err := u.followRepo.InsertEdge(ctx, followerID, target.ID); err != nil {
		return nil, err
	}

	// The insert has committed by the time the count queries run, so the
	// returned counts include this edge.
	return u.getFollowCounts(ctx, target.ID, true)
}

func (u *followUsecase) Unfollow(ctx context.Context, followerID int64, targetUsername string) (*domain.FollowCounts, error) {
	target, err := u.resolveTarget(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	affected, err := u.followRepo.DeleteEdge(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Not following this user")
	}

	return u.getFollowCounts(ctx, target.ID, false)
}

func (u *followUsecase) GetFollowers(ctx context.Context, username string) ([]domain.UserSummary, error) {
	user, err := u.resolveTarget(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.followRepo.ListFollowers(ctx, user.ID)
}

func (u *followUsecase) GetFollowings(ctx context.Context, username string) ([]domain.UserSummary, error) {
	user, err := u.resolveTarget(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.followRepo.ListFollowings(ctx, user.ID)
}
