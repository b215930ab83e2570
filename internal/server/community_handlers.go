package server

import (
	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCommunity handles POST /api/communities
// @Summary Create a community
// @Description Create a new community owned by the caller
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string,icon_url=string} true "Community details"
// @Success 201 {object} server.CommunityDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /communities [post]
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IconURL     string `json:"icon_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, svcErr := s.communityService.CreateCommunity(c.Context(), service.CreateCommunityInput{
		OwnerID:     callerID,
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(toCommunityDTO(community))
}

// ListCommunities handles GET /api/communities
// @Summary List communities
// @Description Paginated community listing with member counts and recent post previews. Authenticated callers see communities they neither own nor joined.
// @Tags communities
// @Produce json
// @Param limit query int false "Page size (1-50, default 10)"
// @Param offset query int false "Page offset"
// @Param search query string false "Name or description filter"
// @Success 200 {object} object{items=[]server.CommunityListItemDTO,totalCount=int}
// @Router /communities [get]
func (s *Server) ListCommunities(c *fiber.Ctx) error {
	page := parsePagination(c, 10, 50)
	caller, _ := s.callerID(c)

	listing, err := s.communityService.ListCommunities(c.Context(), service.ListCommunitiesInput{
		CallerID: caller,
		Limit:    page.Limit,
		Offset:   page.Offset,
		Search:   c.Query("search"),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	items := make([]*CommunityListItemDTO, 0, len(listing.Items))
	for _, item := range listing.Items {
		items = append(items, toCommunityListItemDTO(item))
	}
	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": listing.TotalCount,
	})
}

// GetCommunity handles GET /api/communities/:id
// @Summary Get a community
// @Tags communities
// @Produce json
// @Param id path int true "Community ID"
// @Success 200 {object} server.CommunityDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communities/{id} [get]
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, svcErr := s.communityService.GetCommunity(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toCommunityDTO(community))
}

// UpdateCommunity handles PATCH /api/communities/:id
// @Summary Update a community
// @Description Update name, description, or icon. Owner or administrator only.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Param request body object{name=string,description=string,icon_url=string} true "Fields to update"
// @Success 200 {object} server.CommunityDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /communities/{id} [patch]
func (s *Server) UpdateCommunity(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IconURL     *string `json:"icon_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, svcErr := s.communityService.UpdateCommunity(c.Context(), service.UpdateCommunityInput{
		CallerID:    callerID,
		CommunityID: id,
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toCommunityDTO(community))
}

// DeleteCommunity handles DELETE /api/communities/:id
// @Summary Delete a community
// @Description Delete a community with no posts or members. Owner or administrator only.
// @Tags communities
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /communities/{id} [delete]
func (s *Server) DeleteCommunity(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.communityService.DeleteCommunity(c.Context(), callerID, id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
