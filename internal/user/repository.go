// File: internal/user/repository.go
package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/firebase"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// Repository defines the interface for profile document operations.
type Repository interface {
	FindByUID(ctx context.Context, uid string) (*shared.Profile, error)
	// Create writes the profile at key uid, overwriting any document already
	// there (last-write-wins at the store is the accepted race outcome).
	Create(ctx context.Context, profile *shared.Profile) error
	// Watch streams every remote update of the profile document until the
	// returned stop function is called or ctx is done.
	Watch(ctx context.Context, uid string) (<-chan shared.PointsUpdate, func(), error)
}

// LegacyRepository reads the migration source records. FindByEmail returns
// common.ErrNotFound for a legitimately absent record; any other error means
// the lookup itself failed and must not be conflated with absence.
type LegacyRepository interface {
	FindByEmail(ctx context.Context, email string) (*LegacyProfile, error)
}

type firestoreRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewFirestoreRepository creates a profile repository backed by Firestore.
func NewFirestoreRepository(fb *firebase.Service, cfg *config.Config, logger *zap.Logger) Repository {
	return &firestoreRepository{
		client:     fb.Firestore(),
		collection: cfg.UsersCollection,
		logger:     logger,
	}
}

func (r *firestoreRepository) FindByUID(ctx context.Context, uid string) (*shared.Profile, error) {
	snap, err := r.client.Collection(r.collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Profile not found for this UID.")
		}
		return nil, fmt.Errorf("fetching profile %s: %w", uid, err)
	}
	var profile shared.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", uid, err)
	}
	return &profile, nil
}

func (r *firestoreRepository) Create(ctx context.Context, profile *shared.Profile) error {
	if _, err := r.client.Collection(r.collection).Doc(profile.UID).Set(ctx, profile); err != nil {
		return fmt.Errorf("writing profile %s: %w", profile.UID, err)
	}
	return nil
}

func (r *firestoreRepository) Watch(ctx context.Context, uid string) (<-chan shared.PointsUpdate, func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	iter := r.client.Collection(r.collection).Doc(uid).Snapshots(watchCtx)

	updates := make(chan shared.PointsUpdate, 1)
	go func() {
		defer close(updates)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				// Cancellation and stream teardown both land here.
				if status.Code(err) != codes.Canceled {
					r.logger.Warn("Profile snapshot stream ended", zap.String("uid", uid), zap.Error(err))
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			var profile shared.Profile
			if err := snap.DataTo(&profile); err != nil {
				r.logger.Warn("Failed to decode profile snapshot", zap.String("uid", uid), zap.Error(err))
				continue
			}
			select {
			case updates <- shared.PointsUpdate{Points: profile.Points, Name: profile.Name}:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return updates, cancel, nil
}

type firestoreLegacyRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreLegacyRepository creates a legacy record repository backed by
// Firestore, reading the collection named by LEGACY_USERS_COLLECTION.
func NewFirestoreLegacyRepository(fb *firebase.Service, cfg *config.Config) LegacyRepository {
	return &firestoreLegacyRepository{
		client:     fb.Firestore(),
		collection: cfg.LegacyUsersCollection,
	}
}

func (r *firestoreLegacyRepository) FindByEmail(ctx context.Context, email string) (*LegacyProfile, error) {
	snap, err := r.client.Collection(r.collection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("No legacy record for this email.")
		}
		return nil, fmt.Errorf("fetching legacy record %s: %w", email, err)
	}

	// Legacy exports are loosely typed; an absent or non-numeric points field
	// reads as zero, an absent name as empty.
	data := snap.Data()
	legacy := &LegacyProfile{}
	switch v := data["points"].(type) {
	case int64:
		legacy.Points = v
	case float64:
		legacy.Points = int64(v)
	}
	if name, ok := data["name"].(string); ok {
		legacy.Name = name
	}
	return legacy, nil
}
