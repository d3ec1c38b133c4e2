// File: internal/submission/repository.go
package submission

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/firebase"
)

// Repository defines the interface for submission document operations.
type Repository interface {
	// Append adds a new submission document with a store-generated ID and
	// returns that ID.
	Append(ctx context.Context, sub *Submission) (string, error)
	// ExistsByPhotoURL reports whether any submission references the URL.
	// Used by the orphan sweep to tell leaked objects from referenced ones.
	ExistsByPhotoURL(ctx context.Context, url string) (bool, error)
	FindByUserUID(ctx context.Context, uid string) ([]Submission, error)
}

type firestoreRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreRepository creates a submission repository backed by Firestore.
func NewFirestoreRepository(fb *firebase.Service, cfg *config.Config) Repository {
	return &firestoreRepository{
		client:     fb.Firestore(),
		collection: cfg.SubmissionsCollection,
	}
}

func (r *firestoreRepository) Append(ctx context.Context, sub *Submission) (string, error) {
	ref, _, err := r.client.Collection(r.collection).Add(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("appending submission: %w", err)
	}
	return ref.ID, nil
}

func (r *firestoreRepository) ExistsByPhotoURL(ctx context.Context, url string) (bool, error) {
	iter := r.client.Collection(r.collection).
		Where("photoUrl", "==", url).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying submissions by photo url: %w", err)
	}
	return true, nil
}

func (r *firestoreRepository) FindByUserUID(ctx context.Context, uid string) ([]Submission, error) {
	iter := r.client.Collection(r.collection).
		Where("userUid", "==", uid).
		Documents(ctx)
	defer iter.Stop()

	var subs []Submission
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing submissions for %s: %w", uid, err)
		}
		var sub Submission
		if err := snap.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("decoding submission %s: %w", snap.Ref.ID, err)
		}
		sub.ID = snap.Ref.ID
		subs = append(subs, sub)
	}
	return subs, nil
}
