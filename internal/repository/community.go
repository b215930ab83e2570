package repository

import (
	"context"
	"errors"
	"strings"

	"realme/internal/cache"
	"realme/internal/models"
	"realme/internal/observability"

	"gorm.io/gorm"
)

// ListCommunitiesParams controls filtering and pagination of the community listing.
// ExcludeProfileID, when non-zero, removes communities that profile owns or
// already belongs to.
type ListCommunitiesParams struct {
	Limit            int
	Offset           int
	Search           string
	ExcludeProfileID uint
}

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	GetByName(ctx context.Context, name string) (*models.Community, error)
	Update(ctx context.Context, community *models.Community) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, params ListCommunitiesParams) ([]*models.Community, int64, error)
	MemberCounts(ctx context.Context, communityIDs []uint) (map[uint]int64, error)
	RecentPosts(ctx context.Context, communityIDs []uint, perCommunity int) (map[uint][]*models.Post, error)
	DependentCounts(ctx context.Context, id uint) (posts int64, members int64, err error)
}

// communityRepository implements CommunityRepository
type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new community repository
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	if err := r.db.WithContext(ctx).Create(community).Error; err != nil {
		return err
	}
	cache.InvalidateCommunityList(ctx)
	return nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).First(&community, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) GetByName(ctx context.Context, name string) (*models.Community, error) {
	var community models.Community
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&community).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) Update(ctx context.Context, community *models.Community) error {
	if err := r.db.WithContext(ctx).Save(community).Error; err != nil {
		return err
	}
	cache.InvalidateCommunity(ctx, community.ID)
	return nil
}

// Delete removes the community row and reports how many rows were affected,
// so callers can distinguish a missing row from a successful delete.
func (r *communityRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Community{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	cache.InvalidateCommunity(ctx, id)
	return res.RowsAffected, nil
}

// applyListFilters builds the shared WHERE clause for List's page and count queries.
func (r *communityRepository) applyListFilters(db *gorm.DB, params ListCommunitiesParams) *gorm.DB {
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if params.ExcludeProfileID != 0 {
		db = db.
			Where("owner_id <> ?", params.ExcludeProfileID).
			Where("id NOT IN (SELECT community_id FROM memberships WHERE profile_id = ?)", params.ExcludeProfileID)
	}
	return db
}

func (r *communityRepository) List(ctx context.Context, params ListCommunitiesParams) ([]*models.Community, int64, error) {
	defer observability.TrackQuery("list", "communities")()

	var total int64
	countQuery := r.applyListFilters(r.db.WithContext(ctx).Model(&models.Community{}), params)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var communities []*models.Community
	pageQuery := r.applyListFilters(r.db.WithContext(ctx).Model(&models.Community{}), params)
	err := pageQuery.
		Order("created_at DESC, id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&communities).Error
	if err != nil {
		return nil, 0, err
	}
	return communities, total, nil
}

// MemberCounts returns membership totals for the given communities in one query.
func (r *communityRepository) MemberCounts(ctx context.Context, communityIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(communityIDs))
	if len(communityIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommunityID uint
		Total       int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Select("community_id, COUNT(*) as total").
		Where("community_id IN ?", communityIDs).
		Group("community_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CommunityID] = row.Total
	}
	return counts, nil
}

// RecentPosts returns up to perCommunity newest posts for each community in a
// single window-function query instead of one query per community.
func (r *communityRepository) RecentPosts(ctx context.Context, communityIDs []uint, perCommunity int) (map[uint][]*models.Post, error) {
	recent := make(map[uint][]*models.Post, len(communityIDs))
	if len(communityIDs) == 0 {
		return recent, nil
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, community_id, author_id, title, content, comment_count, created_at, updated_at FROM (
			SELECT posts.*, ROW_NUMBER() OVER (PARTITION BY community_id ORDER BY created_at DESC, id DESC) AS rn
			FROM posts WHERE community_id IN ?
		) ranked WHERE rn <= ?`,
		communityIDs, perCommunity,
	).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		recent[post.CommunityID] = append(recent[post.CommunityID], post)
	}
	return recent, nil
}

func (r *communityRepository) DependentCounts(ctx context.Context, id uint) (int64, int64, error) {
	var posts int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("community_id = ?", id).Count(&posts).Error; err != nil {
		return 0, 0, err
	}
	var members int64
	if err := r.db.WithContext(ctx).Model(&models.Membership{}).Where("community_id = ?", id).Count(&members).Error; err != nil {
		return 0, 0, err
	}
	return posts, members, nil
}
