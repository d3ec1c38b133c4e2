// File: internal/user/model.go
package user

import (
	"time"

	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// DefaultDisplayName is the placeholder name for profiles created without a
// legacy record or a provider display name.
const DefaultDisplayName = "Eco User"

// LegacyProfile is a pre-existing record from the system that preceded the
// Firebase migration, keyed by lower-cased email. It is consulted at most once
// per UID, when the corresponding Profile is first created, and never written.
type LegacyProfile struct {
	Points int64
	Name   string // Empty when the legacy record carries no name.
}

// ProfileResponse defines the structure for profile data sent in API responses.
type ProfileResponse struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfileResponse converts a shared.Profile to a ProfileResponse DTO.
func ToProfileResponse(p *shared.Profile) ProfileResponse {
	return ProfileResponse{
		UID:       p.UID,
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Points:    p.Points,
		CreatedAt: p.CreatedAt,
	}
}
