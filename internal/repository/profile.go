package repository

import (
	"context"
	"errors"

	"realme/internal/cache"
	"realme/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	ListVerified(ctx context.Context, limit int) ([]*models.Profile, error)
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	cache.InvalidateProfile(ctx, profile.ID)
	return nil
}

// ListVerified returns the public projection source set: verified profiles
// only, newest first.
func (r *profileRepository) ListVerified(ctx context.Context, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Where("is_verified = ?", true).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}
