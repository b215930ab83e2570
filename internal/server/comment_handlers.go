package server

import (
	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/comments
// @Summary Create a comment
// @Description Comment on a post in a community the caller is a member of. A parent comment, when given, must be a top-level comment on the same post.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{post_id=int,content=string,parent_comment_id=int} true "Comment details"
// @Success 201 {object} server.CommentDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		PostID          uint   `json:"post_id"`
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	comment, svcErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		AuthorID:        callerID,
		PostID:          req.PostID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommentDTO(comment))
}

// ListPostComments handles GET /api/posts/:id/comments
// @Summary List comments on a post
// @Description All comments on a post, oldest first.
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{items=[]server.CommentDTO}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) ListPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, svcErr := s.commentService.ListPostComments(c.Context(), postID)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	items := make([]*CommentDTO, 0, len(comments))
	for _, comment := range comments {
		items = append(items, toCommentDTO(comment))
	}
	return c.JSON(fiber.Map{"items": items})
}

// UpdateComment handles PATCH /api/comments/:id
// @Summary Update a comment
// @Description Update comment content. Author only.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body object{content=string} true "New content"
// @Success 200 {object} server.CommentDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		CallerID:  callerID,
		CommentID: id,
		Content:   req.Content,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toCommentDTO(comment))
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete a comment
// @Description Delete a comment. Author only.
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.DeleteComment(c.Context(), callerID, id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
