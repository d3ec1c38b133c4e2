// File: internal/shared/core.go
package shared

import (
	"context"
	"time"
)

// Identity is the verified user identity returned by the authentication
// provider. It is immutable for the duration of a sign-in session.
type Identity struct {
	UID         string
	Email       string // May be empty; never nil-like sentinel values.
	DisplayName string
	AvatarURL   string
}

// Profile is the application's own persisted record of a user, keyed by the
// identity's UID in the document store.
type Profile struct {
	UID       string    `firestore:"uid" json:"uid"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"` // Always stored lower-cased.
	AvatarURL string    `firestore:"avatar" json:"avatar_url,omitempty"`
	Points    int64     `firestore:"points" json:"points"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}

// ProvisioningResult reports what provisioning did for a sign-in.
type ProvisioningResult struct {
	Created         bool  `json:"created"`
	InheritedPoints int64 `json:"inherited_points"`
}

// PointsUpdate is one element of a live profile subscription stream.
type PointsUpdate struct {
	Points int64  `json:"points"`
	Name   string `json:"name"`
}

// Service defines the user-facing business logic consumed by the auth flow and
// the HTTP handlers.
type Service interface {
	// Provision guarantees a Profile exists for the identity, inheriting legacy
	// points on first creation. Idempotent: a second call for the same UID is a
	// read-only no-op reporting Created=false.
	Provision(ctx context.Context, identity Identity) (*Profile, ProvisioningResult, error)

	GetByUID(ctx context.Context, uid string) (*Profile, error)

	// WatchPoints attaches a live subscription to the user's profile document.
	// The returned stop function releases the subscription; it is also released
	// when ctx is done. Callers must always call stop.
	WatchPoints(ctx context.Context, uid string) (<-chan PointsUpdate, func(), error)
}
