// File: internal/challenge/service.go
package challenge

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
)

// Service defines the interface for challenge-related business logic.
type Service interface {
	GetAllChallenges(ctx context.Context) ([]Challenge, error)
	GetChallengeByID(ctx context.Context, id string) (*Challenge, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new challenge service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// GetAllChallenges returns the full catalogue. An empty catalogue is a valid
// result, not an error.
func (s *service) GetAllChallenges(ctx context.Context) ([]Challenge, error) {
	challenges, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list challenges", zap.Error(err))
		return nil, err
	}
	if challenges == nil {
		challenges = []Challenge{}
	}
	return challenges, nil
}

func (s *service) GetChallengeByID(ctx context.Context, id string) (*Challenge, error) {
	if id == "" {
		return nil, common.ErrBadRequest.WithDetails("Challenge ID must not be empty.")
	}
	return s.repo.FindByID(ctx, id)
}
