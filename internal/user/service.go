// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// Service implements the shared.Service interface.
type Service struct {
	repo       Repository
	legacyRepo LegacyRepository
	logger     *zap.Logger
}

var _ shared.Service = (*Service)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	legacyRepo LegacyRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		legacyRepo: legacyRepo,
		logger:     logger,
	}
}

// Provision guarantees a Profile exists for the identity.
//
// First sign-in creates the profile, seeding points and name from the legacy
// record keyed by the lower-cased email when one exists. Every later sign-in
// finds the existing profile and performs zero writes. A failed legacy lookup
// is distinguished from a legitimately absent record: absence seeds zero
// points, failure aborts provisioning so the caller can retry instead of the
// user silently losing an inheritance.
func (s *Service) Provision(ctx context.Context, identity shared.Identity) (*shared.Profile, shared.ProvisioningResult, error) {
	if identity.UID == "" {
		return nil, shared.ProvisioningResult{}, common.ErrBadRequest.WithDetails("Identity UID must not be empty.")
	}
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	existing, err := s.repo.FindByUID(ctx, identity.UID)
	if err == nil {
		s.logger.Debug("Profile already provisioned", zap.String("uid", identity.UID))
		return existing, shared.ProvisioningResult{Created: false}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Profile lookup failed during provisioning", zap.Error(err), zap.String("uid", identity.UID))
		return nil, shared.ProvisioningResult{}, err
	}

	// First sign-in for this UID: consult the legacy record, at most once.
	var initialPoints int64
	initialName := identity.DisplayName
	if email != "" {
		legacy, legacyErr := s.legacyRepo.FindByEmail(ctx, email)
		switch {
		case legacyErr == nil:
			initialPoints = legacy.Points
			if legacy.Name != "" {
				initialName = legacy.Name
			}
			s.logger.Info("Inheriting legacy points for new user",
				zap.String("uid", identity.UID),
				zap.String("email", email),
				zap.Int64("points", initialPoints),
			)
		case errors.Is(legacyErr, common.ErrNotFound):
			// Legitimately no legacy record: start from zero.
		default:
			s.logger.Error("Legacy lookup failed during provisioning; not defaulting to zero points",
				zap.Error(legacyErr), zap.String("uid", identity.UID), zap.String("email", email))
			return nil, shared.ProvisioningResult{}, legacyErr
		}
	}
	if initialName == "" {
		initialName = DefaultDisplayName
	}

	profile := &shared.Profile{
		UID:       identity.UID,
		Name:      initialName,
		Email:     email,
		AvatarURL: identity.AvatarURL,
		Points:    initialPoints,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		// Surfaced, not swallowed: the caller owns the retry-on-next-sign-in
		// policy for a profile that could not be persisted.
		s.logger.Error("Failed to create profile", zap.Error(err), zap.String("uid", identity.UID))
		return nil, shared.ProvisioningResult{}, common.ErrStorageWrite.WithDetails(err.Error())
	}

	s.logger.Info("Profile provisioned",
		zap.String("uid", identity.UID),
		zap.Int64("points", initialPoints),
	)
	return profile, shared.ProvisioningResult{Created: true, InheritedPoints: initialPoints}, nil
}

// GetByUID returns the stored profile for a UID.
func (s *Service) GetByUID(ctx context.Context, uid string) (*shared.Profile, error) {
	profile, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("Profile not found by UID", zap.String("uid", uid))
		} else {
			s.logger.Error("Error finding profile by UID", zap.Error(err), zap.String("uid", uid))
		}
		return nil, err
	}
	return profile, nil
}

// WatchPoints attaches a live subscription to the user's profile document.
func (s *Service) WatchPoints(ctx context.Context, uid string) (<-chan shared.PointsUpdate, func(), error) {
	if uid == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("UID must not be empty.")
	}
	return s.repo.Watch(ctx, uid)
}
