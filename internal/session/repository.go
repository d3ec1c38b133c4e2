// File: internal/session/repository.go
package session

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/PhangZT0803/EcoTrip/internal/common"
)

// cacheRowID pins the cache to a single row; Save always upserts it.
const cacheRowID = 1

// Repository defines the interface for the credential cache.
type Repository interface {
	// Save records the given user as the last signed-in user.
	Save(ctx context.Context, userUID, userEmail string) error
	// Clear marks the cached user as logged out but keeps the identifiers so
	// the next launch can show who was signed in before.
	Clear(ctx context.Context) error
	// Current returns the cached record, or common.ErrNotFound when nothing
	// was ever cached.
	Current(ctx context.Context) (*Record, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a credential cache repository and ensures its
// schema exists.
func NewGORMRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrating session cache schema: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) Save(ctx context.Context, userUID, userEmail string) error {
	record := Record{
		ID:         cacheRowID,
		UserUID:    userUID,
		UserEmail:  userEmail,
		IsLoggedIn: true,
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("saving session cache: %w", err)
	}
	return nil
}

func (r *gormRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", cacheRowID).
		Update("is_logged_in", false)
	if result.Error != nil {
		return fmt.Errorf("clearing session cache: %w", result.Error)
	}
	return nil
}

func (r *gormRepository) Current(ctx context.Context) (*Record, error) {
	var record Record
	err := r.db.WithContext(ctx).First(&record, cacheRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No cached session.")
		}
		return nil, fmt.Errorf("reading session cache: %w", err)
	}
	return &record, nil
}
