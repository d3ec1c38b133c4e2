// File: internal/auth/service.go
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/middleware"
	"github.com/PhangZT0803/EcoTrip/internal/session"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// Service defines the interface for sign-in and sign-out logic.
type Service interface {
	// SignIn verifies an ID token, provisions the profile and records the
	// session in the local credential cache.
	SignIn(ctx context.Context, idToken string) (*shared.Profile, shared.ProvisioningResult, error)
	SignOut(ctx context.Context) error
	CachedSession(ctx context.Context) (*session.Record, error)
}

type service struct {
	verifier    middleware.TokenVerifier
	userService shared.Service
	sessions    session.Repository
	logger      *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	verifier middleware.TokenVerifier,
	userService shared.Service,
	sessions session.Repository,
	logger *zap.Logger,
) Service {
	return &service{
		verifier:    verifier,
		userService: userService,
		sessions:    sessions,
		logger:      logger,
	}
}

func (s *service) SignIn(ctx context.Context, idToken string) (*shared.Profile, shared.ProvisioningResult, error) {
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Sign-in token verification failed", zap.Error(err))
		return nil, shared.ProvisioningResult{}, common.ErrUnauthorized.WithDetails(err.Error())
	}

	profile, result, err := s.userService.Provision(ctx, identity)
	if err != nil {
		return nil, shared.ProvisioningResult{}, err
	}

	// The cache is a convenience for the next app launch; a failed write must
	// not fail a sign-in that already provisioned the profile.
	if err := s.sessions.Save(ctx, profile.UID, profile.Email); err != nil {
		s.logger.Warn("Failed to write credential cache after sign-in",
			zap.String("uid", profile.UID), zap.Error(err))
	}

	return profile, result, nil
}

func (s *service) SignOut(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *service) CachedSession(ctx context.Context) (*session.Record, error) {
	return s.sessions.Current(ctx)
}
