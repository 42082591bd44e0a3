package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCleanupRepo struct {
	mock.Mock
}

func (m *MockCleanupRepo) PurgeSoftDeletedRecruits(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCleanupRepo) PurgeSoftDeletedUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSoftDeleteCleanupTasklet(t *testing.T) {
	ctx := context.Background()

	t.Run("Purges recruits then users", func(t *testing.T) {
		repo := new(MockCleanupRepo)
		repo.On("PurgeSoftDeletedRecruits", ctx).Return(int64(3), nil)
		repo.On("PurgeSoftDeletedUsers", ctx).Return(int64(1), nil)

		tasklet := NewSoftDeleteCleanupTasklet(repo, zap.NewNop())
		require.NoError(t, tasklet.Execute(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("Recruit purge failure short-circuits", func(t *testing.T) {
		repo := new(MockCleanupRepo)
		repo.On("PurgeSoftDeletedRecruits", ctx).Return(int64(0), errors.New("deadlock"))

		tasklet := NewSoftDeleteCleanupTasklet(repo, zap.NewNop())
		err := tasklet.Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "purge soft-deleted recruits")
		repo.AssertNotCalled(t, "PurgeSoftDeletedUsers", mock.Anything)
	})

	t.Run("Re-run after a clean sweep finds nothing and succeeds", func(t *testing.T) {
		repo := new(MockCleanupRepo)
		repo.On("PurgeSoftDeletedRecruits", ctx).Return(int64(0), nil)
		repo.On("PurgeSoftDeletedUsers", ctx).Return(int64(0), nil)

		tasklet := NewSoftDeleteCleanupTasklet(repo, zap.NewNop())
		require.NoError(t, tasklet.Execute(ctx))
		require.NoError(t, tasklet.Execute(ctx))
	})
}

type countingTasklet struct {
	runs int
	err  error
}

func (c *countingTasklet) Execute(ctx context.Context) error {
	c.runs++
	return c.err
}

func TestTaskletRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("Dispatches to the registered tasklet", func(t *testing.T) {
		runner := NewTaskletRunner(zap.NewNop())
		tasklet := &countingTasklet{}
		runner.Register("sweep", tasklet)

		require.NoError(t, runner.Run(ctx, "sweep", map[string]string{"time": "123"}))
		assert.Equal(t, 1, tasklet.runs)
	})

	t.Run("Unknown job name is an error", func(t *testing.T) {
		runner := NewTaskletRunner(zap.NewNop())
		err := runner.Run(ctx, "no-such-job", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown job")
	})

	t.Run("Tasklet errors propagate to the caller", func(t *testing.T) {
		runner := NewTaskletRunner(zap.NewNop())
		runner.Register("sweep", &countingTasklet{err: errors.New("boom")})
		assert.Error(t, runner.Run(ctx, "sweep", nil))
	})
}
