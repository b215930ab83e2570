package service

import (
	"context"

	"realme/internal/models"
	"realme/internal/observability"
	"realme/internal/repository"
)

// FeedService composes the personalized feed from the caller's membership set.
type FeedService struct {
	membershipRepo repository.MembershipRepository
	postRepo       repository.PostRepository
}

// FeedPage holds one page of feed posts plus the unpaginated total.
type FeedPage struct {
	Posts      []*models.Post
	TotalCount int64
}

func NewFeedService(
	membershipRepo repository.MembershipRepository,
	postRepo repository.PostRepository,
) *FeedService {
	return &FeedService{
		membershipRepo: membershipRepo,
		postRepo:       postRepo,
	}
}

// GetFeed returns posts across the caller's communities, newest first.
// A caller with no memberships gets an empty page, not an error.
func (s *FeedService) GetFeed(ctx context.Context, profileID uint, limit, offset int) (*FeedPage, error) {
	communityIDs, err := s.membershipRepo.CommunityIDsForProfile(ctx, profileID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(communityIDs) == 0 {
		observability.FeedRequests.WithLabelValues("empty").Inc()
		return &FeedPage{Posts: []*models.Post{}, TotalCount: 0}, nil
	}

	posts, total, err := s.postRepo.ListByCommunityIDs(ctx, communityIDs, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.FeedRequests.WithLabelValues("ok").Inc()
	return &FeedPage{Posts: posts, TotalCount: total}, nil
}
