// File: internal/challenge/repository.go
package challenge

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/firebase"
)

// Repository defines the interface for challenge catalogue reads.
type Repository interface {
	FindAll(ctx context.Context) ([]Challenge, error)
	FindByID(ctx context.Context, id string) (*Challenge, error)
}

type firestoreRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewFirestoreRepository creates a challenge repository backed by Firestore.
func NewFirestoreRepository(fb *firebase.Service, cfg *config.Config, logger *zap.Logger) Repository {
	return &firestoreRepository{
		client:     fb.Firestore(),
		collection: cfg.ChallengesCollection,
		logger:     logger,
	}
}

func (r *firestoreRepository) FindAll(ctx context.Context) ([]Challenge, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	var challenges []Challenge
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing challenges: %w", err)
		}
		var ch Challenge
		if err := snap.DataTo(&ch); err != nil {
			// A malformed catalogue document should not hide the rest.
			r.logger.Warn("Skipping malformed challenge document",
				zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		ch.ID = snap.Ref.ID
		challenges = append(challenges, ch)
	}
	return challenges, nil
}

func (r *firestoreRepository) FindByID(ctx context.Context, id string) (*Challenge, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Challenge not found.")
		}
		return nil, fmt.Errorf("fetching challenge %s: %w", id, err)
	}
	var ch Challenge
	if err := snap.DataTo(&ch); err != nil {
		return nil, fmt.Errorf("decoding challenge %s: %w", id, err)
	}
	ch.ID = snap.Ref.ID
	return &ch, nil
}
