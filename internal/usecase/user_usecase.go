package usecase

import (
	"context"
	"strings"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"
	"devso-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type userUsecase struct {
	userRepo   domain.UserRepository
	followRepo domain.FollowRepository
	validate   *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, followRepo domain.FollowRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, followRepo: followRepo, validate: validate}
}

// GetProfile returns the target's profile with follow aggregates.
// IsFollowing means strictly "does the viewer follow the target"; anonymous
// viewers get false, and self-views get false because no self-edge exists.
func (u *userUsecase) GetProfile(ctx context.Context, targetUsername string, viewerID int64) (*domain.UserProfile, error) {
	profile, err := u.userRepo.GetProfileByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("User not found")
	}

	if err := u.attachFollowState(ctx, profile, viewerID); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *userUsecase) attachFollowState(ctx context.Context, profile *domain.UserProfile, viewerID int64) error {
	targetID := profile.User.ID

	followerCount, err := u.followRepo.CountByFollowing(ctx, targetID)
	if err != nil {
		return err
	}
	followingCount, err := u.followRepo.CountByFollower(ctx, targetID)
	if err != nil {
		return err
	}
	profile.FollowerCount = followerCount
	profile.FollowingCount = followingCount

	if viewerID != 0 {
		isFollowing, err := u.followRepo.Exists(ctx, viewerID, targetID)
		if err != nil {
			return err
		}
		profile.IsFollowing = isFollowing
	}
	return nil
}

func (u *userUsecase) UpdateFullProfile(ctx context.Context, username string, actorID int64, req *domain.ProfileUpdateRequest) (*domain.UserProfile, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if user.ID != actorID {
		return nil, apperror.Forbidden("You can only edit your own profile")
	}

	if err := u.userRepo.UpdateProfile(ctx, user.ID, req); err != nil {
		return nil, err
	}

	profile, err := u.userRepo.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("User not found")
	}
	if err := u.attachFollowState(ctx, profile, actorID); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *userUsecase) ChangePassword(ctx context.Context, username string, actorID int64, req *domain.PasswordChangeRequest) error {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}
	if user.ID != actorID {
		return apperror.Forbidden("You can only change your own password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperror.BadRequest("Current password is incorrect")
	}

	newPassword := strings.TrimSpace(req.NewPassword)
	if newPassword == "" {
		return apperror.BadRequest("New password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	return u.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

func (u *userUsecase) SearchUsers(ctx context.Context, query string, excludeUserID int64) ([]domain.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.UserSummary{}, nil
	}
	return u.userRepo.Search(ctx, query, excludeUserID)
}

// DeleteAccount soft-deletes only; the scheduled cleanup job performs the
// eventual physical removal.
func (u *userUsecase) DeleteAccount(ctx context.Context, username string, actorID int64) error {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}
	if user.ID != actorID {
		return apperror.Forbidden("You can only delete your own account")
	}
	return u.userRepo.SoftDelete(ctx, user.ID)
}
