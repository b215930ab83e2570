package repository

import (
	"context"

	"realme/internal/cache"
	"realme/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository defines the interface for membership data operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	Delete(ctx context.Context, communityID, profileID uint) (int64, error)
	Exists(ctx context.Context, communityID, profileID uint) (bool, error)
	CommunityIDsForProfile(ctx context.Context, profileID uint) ([]uint, error)
}

// membershipRepository implements MembershipRepository
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return err
	}
	cache.InvalidateCommunityList(ctx)
	return nil
}

// Delete removes a membership by its compound key. Zero rows affected means
// the membership never existed; callers map that to 404.
func (r *membershipRepository) Delete(ctx context.Context, communityID, profileID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("community_id = ? AND profile_id = ?", communityID, profileID).
		Delete(&models.Membership{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidateCommunityList(ctx)
	}
	return res.RowsAffected, nil
}

func (r *membershipRepository) Exists(ctx context.Context, communityID, profileID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("community_id = ? AND profile_id = ?", communityID, profileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) CommunityIDsForProfile(ctx context.Context, profileID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("profile_id = ?", profileID).
		Pluck("community_id", &ids).Error
	return ids, err
}
