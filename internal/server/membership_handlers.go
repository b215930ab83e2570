package server

import (
	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// JoinCommunity handles POST /api/communities/:id/members
// @Summary Join a community
// @Tags memberships
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /communities/{id}/members [post]
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.membershipService.Join(c.Context(), communityID, callerID); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LeaveCommunity handles DELETE /api/communities/:id/members/me
// @Summary Leave a community
// @Tags memberships
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communities/{id}/members/me [delete]
func (s *Server) LeaveCommunity(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.membershipService.Leave(c.Context(), communityID, callerID); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveCommunityMember handles DELETE /api/communities/:id/members/:profileId
// @Summary Remove a community member
// @Description Remove another member from a community. Owner or administrator only; self-removal must use the leave route.
// @Tags memberships
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Param profileId path int true "Profile ID of the member to remove"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communities/{id}/members/{profileId} [delete]
func (s *Server) RemoveCommunityMember(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	communityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	profileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	svcErr := s.membershipService.RemoveMember(c.Context(), service.RemoveMemberInput{
		CallerID:        callerID,
		CommunityID:     communityID,
		TargetProfileID: profileID,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
