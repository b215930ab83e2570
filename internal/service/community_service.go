// Package service contains the application's business logic layer.
package service

import (
	"context"
	"strings"

	"realme/internal/cache"
	"realme/internal/models"
	"realme/internal/observability"
	"realme/internal/repository"
	"realme/internal/validation"
)

// CommunityService handles community lifecycle and the composed listing.
type CommunityService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommunityInput struct {
	OwnerID     uint
	Name        string
	Description string
	IconURL     string
}

type UpdateCommunityInput struct {
	CallerID    uint
	CommunityID uint
	Name        *string
	Description *string
	IconURL     *string
}

type ListCommunitiesInput struct {
	CallerID uint
	Limit    int
	Offset   int
	Search   string
}

// CommunityListItem is one enriched row of the community listing.
type CommunityListItem struct {
	Community   *models.Community `json:"community"`
	MemberCount int64             `json:"member_count"`
	RecentPosts []*models.Post    `json:"recentPosts"`
}

// CommunityListing is the full listing response payload.
type CommunityListing struct {
	Items      []*CommunityListItem `json:"items"`
	TotalCount int64                `json:"totalCount"`
}

const recentPostsPerCommunity = 3

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommunityService {
	return &CommunityService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		isAdmin:        isAdmin,
	}
}

func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateCommunityName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.communityRepo.GetByName(ctx, name)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Community name already exists.")
	}

	community := &models.Community{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IconURL:     strings.TrimSpace(in.IconURL),
		OwnerID:     in.OwnerID,
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		// The uniqueness pre-check races with concurrent creates; the index
		// is authoritative.
		return nil, models.MapStoreError(err, "Community", name)
	}
	return community, nil
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if community == nil {
		return nil, models.NewNotFoundError("Community", id)
	}
	return community, nil
}

// canManage reports whether the caller owns the community or is an administrator.
func (s *CommunityService) canManage(ctx context.Context, community *models.Community, callerID uint) (bool, error) {
	if community.OwnerID == callerID {
		return true, nil
	}
	return s.isAdmin(ctx, callerID)
}

func (s *CommunityService) UpdateCommunity(ctx context.Context, in UpdateCommunityInput) (*models.Community, error) {
	community, err := s.GetCommunity(ctx, in.CommunityID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canManage(ctx, community, in.CallerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !allowed {
		return nil, models.NewForbiddenError("Only the community owner or an administrator can update this community")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validation.ValidateCommunityName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if !strings.EqualFold(name, community.Name) {
			existing, err := s.communityRepo.GetByName(ctx, name)
			if err != nil {
				return nil, models.NewInternalError(err)
			}
			if existing != nil && existing.ID != community.ID {
				return nil, models.NewConflictError("Community name already exists.")
			}
		}
		community.Name = name
	}
	if in.Description != nil {
		community.Description = strings.TrimSpace(*in.Description)
	}
	if in.IconURL != nil {
		community.IconURL = strings.TrimSpace(*in.IconURL)
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, models.MapStoreError(err, "Community", community.ID)
	}
	return community, nil
}

func (s *CommunityService) DeleteCommunity(ctx context.Context, callerID, communityID uint) error {
	community, err := s.GetCommunity(ctx, communityID)
	if err != nil {
		return err
	}

	allowed, err := s.canManage(ctx, community, callerID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !allowed {
		return models.NewForbiddenError("Only the community owner or an administrator can delete this community")
	}

	posts, members, err := s.communityRepo.DependentCounts(ctx, communityID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if posts > 0 || members > 0 {
		return models.NewConflictError("Related data exists for this community")
	}

	affected, err := s.communityRepo.Delete(ctx, communityID)
	if err != nil {
		return models.MapStoreError(err, "Community", communityID)
	}
	if affected == 0 {
		return models.NewNotFoundError("Community", communityID)
	}
	return nil
}

// ListCommunities builds the enriched discovery listing. Per-item previews and
// member counts are batched into two aggregate queries across the page.
// The anonymous unfiltered first page is served cache-aside.
func (s *CommunityService) ListCommunities(ctx context.Context, in ListCommunitiesInput) (*CommunityListing, error) {
	cacheable := in.CallerID == 0 && in.Search == "" && in.Offset == 0 &&
		cache.CommunityListCacheable(in.Limit)

	if cacheable {
		var cached CommunityListing
		found, err := cache.GetJSON(ctx, cache.CommunityListKey(in.Limit, in.Offset), &cached)
		if err == nil && found {
			observability.ListingCacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		observability.ListingCacheLookups.WithLabelValues("miss").Inc()
	}

	listing, err := s.buildListing(ctx, in)
	if err != nil {
		return nil, err
	}

	if cacheable {
		_ = cache.SetJSON(ctx, cache.CommunityListKey(in.Limit, in.Offset), listing, cache.CommunityListTTL)
	}
	return listing, nil
}

func (s *CommunityService) buildListing(ctx context.Context, in ListCommunitiesInput) (*CommunityListing, error) {
	communities, total, err := s.communityRepo.List(ctx, repository.ListCommunitiesParams{
		Limit:            in.Limit,
		Offset:           in.Offset,
		Search:           strings.TrimSpace(in.Search),
		ExcludeProfileID: in.CallerID,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uint, 0, len(communities))
	for _, community := range communities {
		ids = append(ids, community.ID)
	}

	memberCounts, err := s.communityRepo.MemberCounts(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	recentPosts, err := s.communityRepo.RecentPosts(ctx, ids, recentPostsPerCommunity)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	items := make([]*CommunityListItem, 0, len(communities))
	for _, community := range communities {
		posts := recentPosts[community.ID]
		if posts == nil {
			posts = []*models.Post{}
		}
		items = append(items, &CommunityListItem{
			Community:   community,
			MemberCount: memberCounts[community.ID],
			RecentPosts: posts,
		})
	}

	return &CommunityListing{Items: items, TotalCount: total}, nil
}
