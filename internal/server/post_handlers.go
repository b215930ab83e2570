package server

import (
	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Create a post in a community the caller is a member of
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{community_id=int,title=string,content=string} true "Post details"
// @Success 201 {object} server.PostDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		CommunityID uint   `json:"community_id"`
		Title       string `json:"title"`
		Content     string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CommunityID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("community_id is required"))
	}

	post, svcErr := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:    callerID,
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostDTO(post))
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} server.PostDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.postService.GetPost(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toPostDTO(post))
}

// ListCommunityPosts handles GET /api/communities/:id/posts
// @Summary List posts in a community
// @Tags posts
// @Produce json
// @Param id path int true "Community ID"
// @Param limit query int false "Page size (1-50, default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{items=[]server.PostDTO,totalCount=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communities/{id}/posts [get]
func (s *Server) ListCommunityPosts(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20, 50)

	posts, total, svcErr := s.postService.ListCommunityPosts(c.Context(), communityID, page.Limit, page.Offset)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	items := make([]*PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post))
	}
	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": total,
	})
}

// UpdatePost handles PATCH /api/posts/:id
// @Summary Update a post
// @Description Update title or content. Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string} true "Fields to update"
// @Success 200 {object} server.PostDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, svcErr := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		CallerID: callerID,
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toPostDTO(post))
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Delete a post. Author only.
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), callerID, id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
