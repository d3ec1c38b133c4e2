// File: internal/auth/service_test.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/session"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// MockVerifier is a mock type for middleware.TokenVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIDToken(ctx context.Context, idToken string) (shared.Identity, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(shared.Identity), args.Error(1)
}

// MockUserService is a mock type for shared.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Provision(ctx context.Context, identity shared.Identity) (*shared.Profile, shared.ProvisioningResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Get(1).(shared.ProvisioningResult), args.Error(2)
	}
	return args.Get(0).(*shared.Profile), args.Get(1).(shared.ProvisioningResult), args.Error(2)
}

func (m *MockUserService) GetByUID(ctx context.Context, uid string) (*shared.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Profile), args.Error(1)
}

func (m *MockUserService) WatchPoints(ctx context.Context, uid string) (<-chan shared.PointsUpdate, func(), error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan shared.PointsUpdate), args.Get(1).(func()), args.Error(2)
}

// MockSessionRepository is a mock type for session.Repository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, userUID, userEmail string) error {
	args := m.Called(ctx, userUID, userEmail)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) Current(ctx context.Context) (*session.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Record), args.Error(1)
}

func TestSignIn_HappyPath(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	svc := NewService(verifier, users, sessions, zap.NewNop())

	identity := shared.Identity{UID: "u1", Email: "alice@x.com"}
	profile := &shared.Profile{UID: "u1", Email: "alice@x.com", Points: 340}

	verifier.On("VerifyIDToken", ctx, "good-token").Return(identity, nil)
	users.On("Provision", ctx, identity).
		Return(profile, shared.ProvisioningResult{Created: true, InheritedPoints: 340}, nil)
	sessions.On("Save", ctx, "u1", "alice@x.com").Return(nil)

	got, result, err := svc.SignIn(ctx, "good-token")

	require.NoError(t, err)
	assert.Equal(t, profile, got)
	assert.True(t, result.Created)
	assert.Equal(t, int64(340), result.InheritedPoints)
	sessions.AssertExpectations(t)
}

func TestSignIn_BadTokenNeverProvisions(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	svc := NewService(verifier, users, sessions, zap.NewNop())

	tokenErr := errors.New("token expired")
	verifier.On("VerifyIDToken", ctx, "bad-token").Return(shared.Identity{}, tokenErr)

	_, _, err := svc.SignIn(ctx, "bad-token")

	require.Error(t, err)
	// A failed verification is an authentication failure, not a server fault.
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Details)
	users.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignIn_ProvisioningFailureSkipsCache(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	svc := NewService(verifier, users, sessions, zap.NewNop())

	identity := shared.Identity{UID: "u1", Email: "alice@x.com"}
	verifier.On("VerifyIDToken", ctx, "good-token").Return(identity, nil)
	users.On("Provision", ctx, identity).
		Return(nil, shared.ProvisioningResult{}, common.ErrStorageWrite)

	_, _, err := svc.SignIn(ctx, "good-token")

	assert.ErrorIs(t, err, common.ErrStorageWrite)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignIn_CacheWriteFailureDoesNotFailSignIn(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	svc := NewService(verifier, users, sessions, zap.NewNop())

	identity := shared.Identity{UID: "u1", Email: "alice@x.com"}
	profile := &shared.Profile{UID: "u1", Email: "alice@x.com"}
	verifier.On("VerifyIDToken", ctx, "good-token").Return(identity, nil)
	users.On("Provision", ctx, identity).
		Return(profile, shared.ProvisioningResult{Created: false}, nil)
	sessions.On("Save", ctx, "u1", "alice@x.com").Return(errors.New("disk full"))

	got, _, err := svc.SignIn(ctx, "good-token")

	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestSignOutAndCachedSession(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	svc := NewService(verifier, users, sessions, zap.NewNop())

	sessions.On("Clear", ctx).Return(nil)
	sessions.On("Current", ctx).Return(&session.Record{UserUID: "u1", IsLoggedIn: false}, nil)

	require.NoError(t, svc.SignOut(ctx))

	record, err := svc.CachedSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", record.UserUID)
	assert.False(t, record.IsLoggedIn)
}
