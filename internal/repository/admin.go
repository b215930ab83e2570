package repository

import (
	"context"
	"errors"

	"realme/internal/models"

	"gorm.io/gorm"
)

// AdminRepository defines the interface for administrator data operations
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
	List(ctx context.Context) ([]*models.Admin, error)
}

// adminRepository implements AdminRepository
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// IsAdmin reports whether an admin row exists for the user. Row existence is
// the whole predicate; there are no roles or levels.
func (r *adminRepository) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adminRepository) GetByUserID(ctx context.Context, userID uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Admin{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *adminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Order("created_at DESC, id DESC").
		Find(&admins).Error
	return admins, err
}
