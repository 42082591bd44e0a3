package usecase

import (
	"context"
	"strings"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"
	"devso-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type recruitUsecase struct {
	recruitRepo domain.RecruitRepository
	validate    *validator.Validate
}

func NewRecruitUsecase(recruitRepo domain.RecruitRepository, validate *validator.Validate) domain.RecruitUsecase {
	return &recruitUsecase{recruitRepo: recruitRepo, validate: validate}
}

func (u *recruitUsecase) Create(ctx context.Context, userID int64, req *domain.RecruitRequest) (*domain.Recruit, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	recruit := &domain.Recruit{
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		RecruitType:   req.RecruitType,
		ProgressType:  req.ProgressType,
		Positions:     req.Positions,
		TechStacks:    req.TechStacks,
		MemberCount:   req.MemberCount,
		Duration:      req.Duration,
		ContactMethod: req.ContactMethod,
		ContactLink:   req.ContactLink,
		Status:        domain.RecruitStatusRecruiting,
	}
	if recruit.TechStacks == nil {
		recruit.TechStacks = []string{}
	}
	if err := u.recruitRepo.Create(ctx, recruit); err != nil {
		return nil, err
	}
	return u.FindByID(ctx, recruit.ID, userID)
}

func (u *recruitUsecase) FindAll(ctx context.Context, viewerID int64) ([]domain.Recruit, error) {
	recruits, err := u.recruitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		bookmarked, err := u.recruitRepo.ListBookmarkedIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for i := range recruits {
			recruits[i].Bookmarked = bookmarked[recruits[i].ID]
		}
	}
	return recruits, nil
}

func (u *recruitUsecase) FindByID(ctx context.Context, id, viewerID int64) (*domain.Recruit, error) {
	recruit, err := u.recruitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recruit == nil {
		return nil, apperror.NotFound("Recruit post not found")
	}

	if viewerID != 0 {
		bookmarked, err := u.recruitRepo.IsBookmarked(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		recruit.Bookmarked = bookmarked
	}
	return recruit, nil
}

// getOwned loads a posting and verifies the caller owns it.
func (u *recruitUsecase) getOwned(ctx context.Context, userID, id int64) (*domain.Recruit, error) {
	recruit, err := u.recruitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recruit == nil {
		return nil, apperror.NotFound("Recruit post not found")
	}
	if recruit.UserID != userID {
		return nil, apperror.Forbidden("You can only modify your own posts")
	}
	return recruit, nil
}

func (u *recruitUsecase) Update(ctx context.Context, userID, id int64, req *domain.RecruitRequest) (*domain.Recruit, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	recruit, err := u.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	recruit.Title = req.Title
	recruit.Content = req.Content
	recruit.RecruitType = req.RecruitType
	recruit.ProgressType = req.ProgressType
	recruit.Positions = req.Positions
	recruit.TechStacks = req.TechStacks
	recruit.MemberCount = req.MemberCount
	recruit.Duration = req.Duration
	recruit.ContactMethod = req.ContactMethod
	recruit.ContactLink = req.ContactLink
	if recruit.TechStacks == nil {
		recruit.TechStacks = []string{}
	}

	if err := u.recruitRepo.Update(ctx, recruit); err != nil {
		return nil, err
	}
	return u.FindByID(ctx, id, userID)
}

func (u *recruitUsecase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return u.recruitRepo.SoftDelete(ctx, id)
}

func (u *recruitUsecase) ToggleStatus(ctx context.Context, userID, id int64) (domain.RecruitStatus, error) {
	recruit, err := u.getOwned(ctx, userID, id)
	if err != nil {
		return "", err
	}

	next := recruit.Status.Toggle()
	if err := u.recruitRepo.UpdateStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

func (u *recruitUsecase) ToggleBookmark(ctx context.Context, userID, id int64) (bool, error) {
	recruit, err := u.recruitRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if recruit == nil {
		return false, apperror.NotFound("Recruit post not found")
	}

	bookmarked, err := u.recruitRepo.IsBookmarked(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if bookmarked {
		if err := u.recruitRepo.RemoveBookmark(ctx, userID, id); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := u.recruitRepo.AddBookmark(ctx, userID, id); err != nil {
		return false, err
	}
	return true, nil
}
