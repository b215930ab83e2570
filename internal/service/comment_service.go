package service

import (
	"context"
	"strings"

	"realme/internal/models"
	"realme/internal/repository"
	"realme/internal/validation"
)

// CommentService handles comment creation and author-only mutation.
type CommentService struct {
	commentRepo    repository.CommentRepository
	postRepo       repository.PostRepository
	membershipRepo repository.MembershipRepository
}

type CreateCommentInput struct {
	AuthorID        uint
	PostID          uint
	Content         string
	ParentCommentID *uint
}

type UpdateCommentInput struct {
	CallerID  uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	membershipRepo repository.MembershipRepository,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	member, err := s.membershipRepo.Exists(ctx, post.CommunityID, in.AuthorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !member {
		return nil, models.NewForbiddenError("You must be a member of this community to comment")
	}

	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		// The parent must be a root comment on the same post; replies nest
		// one level only.
		if parent == nil || parent.PostID != in.PostID || parent.ParentCommentID != nil {
			return nil, models.NewValidationError("Invalid parent comment")
		}
	}

	comment := &models.Comment{
		PostID:          in.PostID,
		AuthorID:        in.AuthorID,
		Content:         content,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.MapStoreError(err, "Comment", in.PostID)
	}
	return comment, nil
}

func (s *CommentService) ListPostComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	comment.Content = content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.MapStoreError(err, "Comment", in.CommentID)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, callerID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if comment == nil {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.AuthorID != callerID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	affected, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return models.MapStoreError(err, "Comment", commentID)
	}
	if affected == 0 {
		return models.NewNotFoundError("Comment", commentID)
	}
	return nil
}
