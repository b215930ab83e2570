package repository

import (
	"context"
	"errors"

	"realme/internal/models"
	"realme/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByCommunityIDs(ctx context.Context, communityIDs []uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Community").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("community_id = ?", communityID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err = r.db.WithContext(ctx).
		Preload("Author").
		Where("community_id = ?", communityID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByCommunityIDs feeds the personalized feed: posts across the caller's
// membership set, newest first, with author and community joined in.
func (r *postRepository) ListByCommunityIDs(ctx context.Context, communityIDs []uint, limit, offset int) ([]*models.Post, int64, error) {
	if len(communityIDs) == 0 {
		return nil, 0, nil
	}
	defer observability.TrackQuery("feed", "posts")()

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("community_id IN ?", communityIDs).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err = r.db.WithContext(ctx).
		Preload("Author").
		Preload("Community").
		Where("community_id IN ?", communityIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
