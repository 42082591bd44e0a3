package usecase_test

import (
	"context"
	"testing"

	"devso-backend/internal/domain"
	"devso-backend/internal/usecase"
	"devso-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecruitRepo struct {
	mock.Mock
}

func (m *MockRecruitRepo) Create(ctx context.Context, recruit *domain.Recruit) error {
	return m.Called(ctx, recruit).Error(0)
}

func (m *MockRecruitRepo) GetByID(ctx context.Context, id int64) (*domain.Recruit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruit), args.Error(1)
}

func (m *MockRecruitRepo) List(ctx context.Context) ([]domain.Recruit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recruit), args.Error(1)
}

func (m *MockRecruitRepo) Update(ctx context.Context, recruit *domain.Recruit) error {
	return m.Called(ctx, recruit).Error(0)
}

func (m *MockRecruitRepo) UpdateStatus(ctx context.Context, id int64, status domain.RecruitStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRecruitRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecruitRepo) IsBookmarked(ctx context.Context, userID, recruitID int64) (bool, error) {
	args := m.Called(ctx, userID, recruitID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecruitRepo) AddBookmark(ctx context.Context, userID, recruitID int64) error {
	return m.Called(ctx, userID, recruitID).Error(0)
}

func (m *MockRecruitRepo) RemoveBookmark(ctx context.Context, userID, recruitID int64) error {
	return m.Called(ctx, userID, recruitID).Error(0)
}

func (m *MockRecruitRepo) ListBookmarkedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func validRecruitRequest() *domain.RecruitRequest {
	return &domain.RecruitRequest{
		Title:         "Looking for a backend developer",
		Content:       "We are building a side project.",
		RecruitType:   "PROJECT",
		ProgressType:  "ONLINE",
		Positions:     []string{"BACKEND"},
		TechStacks:    []string{"GO", "POSTGRESQL"},
		MemberCount:   "TWO",
		Duration:      "THREE_MONTHS",
		ContactMethod: "EMAIL",
	}
}

func recruitFixture(id, userID int64) *domain.Recruit {
	return &domain.Recruit{
		ID:     id,
		UserID: userID,
		Title:  "Looking for a backend developer",
		Status: domain.RecruitStatusRecruiting,
	}
}

func TestRecruitCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid request never reaches the repository", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		req := validRecruitRequest()
		req.Title = "" // required
		_, err := uc.Create(ctx, 1, req)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown enum value is rejected", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		req := validRecruitRequest()
		req.Positions = []string{"WIZARD"}
		_, err := uc.Create(ctx, 1, req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("New posting starts in RECRUITING status", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Recruit")).
			Return(nil).
			Run(func(args mock.Arguments) {
				rec := args.Get(1).(*domain.Recruit)
				assert.Equal(t, domain.RecruitStatusRecruiting, rec.Status)
				assert.Equal(t, int64(1), rec.UserID)
				rec.ID = 10
			})
		repo.On("GetByID", ctx, int64(10)).Return(recruitFixture(10, 1), nil)
		repo.On("IsBookmarked", ctx, int64(1), int64(10)).Return(false, nil)

		rec, err := uc.Create(ctx, 1, validRecruitRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(10), rec.ID)
	})
}

func TestRecruitOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Update by non-owner is forbidden", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("GetByID", ctx, int64(10)).Return(recruitFixture(10, 1), nil)

		_, err := uc.Update(ctx, 99, 10, validRecruitRequest())
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Delete by non-owner is forbidden", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("GetByID", ctx, int64(10)).Return(recruitFixture(10, 1), nil)

		err := uc.Delete(ctx, 99, 10)
		require.Error(t, err)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("Delete of missing post is not found", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("GetByID", ctx, int64(10)).Return(nil, nil)

		err := uc.Delete(ctx, 1, 10)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestRecruitToggles(t *testing.T) {
	ctx := context.Background()

	t.Run("Status toggles RECRUITING to CLOSED and back", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		open := recruitFixture(10, 1)
		repo.On("GetByID", ctx, int64(10)).Return(open, nil).Once()
		repo.On("UpdateStatus", ctx, int64(10), domain.RecruitStatusClosed).Return(nil).Once()

		status, err := uc.ToggleStatus(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.RecruitStatusClosed, status)

		closed := recruitFixture(10, 1)
		closed.Status = domain.RecruitStatusClosed
		repo.On("GetByID", ctx, int64(10)).Return(closed, nil).Once()
		repo.On("UpdateStatus", ctx, int64(10), domain.RecruitStatusRecruiting).Return(nil).Once()

		status, err = uc.ToggleStatus(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.RecruitStatusRecruiting, status)
	})

	t.Run("Bookmark toggle adds then removes", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("GetByID", ctx, int64(10)).Return(recruitFixture(10, 1), nil)
		repo.On("IsBookmarked", ctx, int64(5), int64(10)).Return(false, nil).Once()
		repo.On("AddBookmark", ctx, int64(5), int64(10)).Return(nil).Once()

		bookmarked, err := uc.ToggleBookmark(ctx, 5, 10)
		require.NoError(t, err)
		assert.True(t, bookmarked)

		repo.On("IsBookmarked", ctx, int64(5), int64(10)).Return(true, nil).Once()
		repo.On("RemoveBookmark", ctx, int64(5), int64(10)).Return(nil).Once()

		bookmarked, err = uc.ToggleBookmark(ctx, 5, 10)
		require.NoError(t, err)
		assert.False(t, bookmarked)
	})
}

func TestRecruitFindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Viewer bookmarks are flagged on the listing", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("List", ctx).Return([]domain.Recruit{
			*recruitFixture(10, 1),
			*recruitFixture(11, 2),
		}, nil)
		repo.On("ListBookmarkedIDs", ctx, int64(5)).Return(map[int64]bool{11: true}, nil)

		recruits, err := uc.FindAll(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recruits, 2)
		assert.False(t, recruits[0].Bookmarked)
		assert.True(t, recruits[1].Bookmarked)
	})

	t.Run("Anonymous listing skips the bookmark lookup", func(t *testing.T) {
		repo := new(MockRecruitRepo)
		uc := usecase.NewRecruitUsecase(repo, newValidator())

		repo.On("List", ctx).Return([]domain.Recruit{*recruitFixture(10, 1)}, nil)

		_, err := uc.FindAll(ctx, 0)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListBookmarkedIDs", mock.Anything, mock.Anything)
	})
}
