package server

import (
	"realme/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
// @Summary Personalized feed
// @Description Recent posts across the caller's communities, newest first. Post bodies are truncated to a snippet.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-50, default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{items=[]server.FeedItemDTO,totalCount=int}
// @Failure 401 {object} models.ErrorResponse
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20, 50)

	feed, svcErr := s.feedService.GetFeed(c.Context(), callerID, page.Limit, page.Offset)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	items := make([]*FeedItemDTO, 0, len(feed.Posts))
	for _, post := range feed.Posts {
		items = append(items, toFeedItemDTO(post))
	}
	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": feed.TotalCount,
	})
}
