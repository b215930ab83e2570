package service

import (
	"context"
	"strings"

	"realme/internal/models"
	"realme/internal/repository"
	"realme/internal/validation"
)

// PostService handles post creation and author-only mutation.
type PostService struct {
	postRepo       repository.PostRepository
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
}

type CreatePostInput struct {
	AuthorID    uint
	CommunityID uint
	Title       string
	Content     string
}

type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Title    *string
	Content  *string
}

func NewPostService(
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	community, err := s.communityRepo.GetByID(ctx, in.CommunityID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if community == nil {
		return nil, models.NewNotFoundError("Community", in.CommunityID)
	}

	// Membership is checked, not enforced atomically with the insert; a
	// concurrent leave between check and insert is accepted.
	member, err := s.membershipRepo.Exists(ctx, in.CommunityID, in.AuthorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !member {
		return nil, models.NewForbiddenError("You must be a member of this community to post")
	}

	post := &models.Post{
		CommunityID: in.CommunityID,
		AuthorID:    in.AuthorID,
		Title:       title,
		Content:     in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.MapStoreError(err, "Post", in.CommunityID)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) ListCommunityPosts(ctx context.Context, communityID uint, limit, offset int) ([]*models.Post, int64, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if community == nil {
		return nil, 0, models.NewNotFoundError("Community", communityID)
	}

	posts, total, err := s.postRepo.ListByCommunity(ctx, communityID, limit, offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validation.ValidatePostTitle(title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = title
	}
	if in.Content != nil {
		if err := validation.ValidatePostContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.MapStoreError(err, "Post", in.PostID)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, callerID, postID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	affected, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		return models.MapStoreError(err, "Post", postID)
	}
	if affected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
