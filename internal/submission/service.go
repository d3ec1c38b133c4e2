// File: internal/submission/service.go
package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/challenge"
	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/filestorage"
)

// Service defines the interface for submission business logic.
type Service interface {
	// Submit uploads a challenge photo and records the submission. With an
	// empty photo or nil challenge it is a no-op returning (nil, nil); callers
	// validate before calling.
	Submit(ctx context.Context, userUID string, photo []byte, ch *challenge.Challenge) (*Submission, error)
	GetMySubmissions(ctx context.Context, userUID string) ([]Submission, error)
}

type service struct {
	repo   Repository
	store  filestorage.ObjectStore
	logger *zap.Logger
}

// NewService creates a new submission service.
func NewService(repo Repository, store filestorage.ObjectStore, logger *zap.Logger) Service {
	return &service{repo: repo, store: store, logger: logger}
}

// Submit runs the two-phase write: object first, document second. The photo
// upload must succeed before any document is written, so a stored Submission
// always points at a real object. If the document write fails after the upload,
// the object is deleted best-effort and a partial-failure error is returned;
// a leaked object is cleaned up later by the orphan sweep.
func (s *service) Submit(ctx context.Context, userUID string, photo []byte, ch *challenge.Challenge) (*Submission, error) {
	if len(photo) == 0 || ch == nil {
		return nil, nil
	}

	encoded, err := encodeJPEG(photo)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Photo could not be processed: %v", err))
	}

	key := fmt.Sprintf("submissions/%s.jpg", uuid.NewString())
	if err := s.store.Put(ctx, key, encoded, "image/jpeg"); err != nil {
		s.logger.Error("Photo upload failed, no submission recorded",
			zap.String("key", key), zap.Error(err))
		return nil, common.ErrStorageWrite.WithDetails("Photo upload failed. Nothing was recorded.")
	}

	sub := &Submission{
		UserUID:        userUID,
		ChallengeID:    ch.ID,
		ChallengeTitle: ch.Title,
		Points:         ch.Points,
		PhotoURL:       s.store.PublicURL(key),
		Status:         StatusPending,
		Timestamp:      time.Now().UTC(),
	}

	id, err := s.repo.Append(ctx, sub)
	if err != nil {
		s.logger.Error("Submission record write failed after upload, deleting object",
			zap.String("key", key), zap.Error(err))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Compensating delete failed, object left for sweep",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, common.ErrPartialFailure.WithDetails("Photo was uploaded but the submission could not be recorded.")
	}
	sub.ID = id

	s.logger.Info("Submission recorded",
		zap.String("id", id),
		zap.String("user_uid", userUID),
		zap.String("challenge_id", ch.ID),
	)
	return sub, nil
}

func (s *service) GetMySubmissions(ctx context.Context, userUID string) ([]Submission, error) {
	subs, err := s.repo.FindByUserUID(ctx, userUID)
	if err != nil {
		s.logger.Error("Failed to list submissions", zap.String("user_uid", userUID), zap.Error(err))
		return nil, err
	}
	if subs == nil {
		subs = []Submission{}
	}
	return subs, nil
}
