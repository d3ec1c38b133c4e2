// File: internal/challenge/service_test.go
package challenge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
)

// MockRepository is a mock type for challenge.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Challenge), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Challenge), args.Error(1)
}

func TestGetAllChallenges(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())

	catalogue := []Challenge{
		{ID: "c1", Title: "Bring a reusable cup", Points: 20},
		{ID: "c2", Title: "Cycle to work", Points: 50},
	}
	mockRepo.On("FindAll", ctx).Return(catalogue, nil)

	challenges, err := svc.GetAllChallenges(ctx)

	require.NoError(t, err)
	assert.Equal(t, catalogue, challenges)
}

func TestGetAllChallenges_EmptyCatalogueIsNotAnError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())

	mockRepo.On("FindAll", ctx).Return(nil, nil)

	challenges, err := svc.GetAllChallenges(ctx)

	require.NoError(t, err)
	assert.NotNil(t, challenges)
	assert.Empty(t, challenges)
}

func TestGetAllChallenges_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())

	repoErr := errors.New("unavailable")
	mockRepo.On("FindAll", ctx).Return(nil, repoErr)

	_, err := svc.GetAllChallenges(ctx)

	assert.ErrorIs(t, err, repoErr)
}

func TestGetChallengeByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())

	ch := &Challenge{ID: "c1", Title: "Plant a tree", Points: 100}
	mockRepo.On("FindByID", ctx, "c1").Return(ch, nil)
	mockRepo.On("FindByID", ctx, "missing").Return(nil, common.ErrNotFound)

	got, err := svc.GetChallengeByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, ch, got)

	_, err = svc.GetChallengeByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.GetChallengeByID(ctx, "")
	assert.ErrorIs(t, err, common.ErrBadRequest)
	mockRepo.AssertNotCalled(t, "FindByID", ctx, "")
}
