package server

import (
	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// VerifyProfile handles POST /api/admin/verify-profile
// @Summary Verify a profile
// @Description Mark a profile as verified, recording which admin did it. Administrator only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{profile_id=int,notes=string} true "Verification target"
// @Success 200 {object} server.ProfileDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/verify-profile [post]
func (s *Server) VerifyProfile(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		ProfileID uint   `json:"profile_id"`
		Notes     string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProfileID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("profile_id is required"))
	}

	profile, svcErr := s.adminService.VerifyProfile(c.Context(), service.VerifyProfileInput{
		CallerID:          callerID,
		ProfileID:         req.ProfileID,
		VerificationNotes: req.Notes,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toProfileDTO(profile))
}

// AddAdmin handles POST /api/admin/add-admin
// @Summary Grant admin rights
// @Description Add a user to the admin roster. Administrator only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{user_id=int,notes=string} true "Target user"
// @Success 201 {object} server.AdminDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/add-admin [post]
func (s *Server) AddAdmin(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	admin, svcErr := s.adminService.AddAdmin(c.Context(), service.AddAdminInput{
		CallerID:     callerID,
		TargetUserID: req.UserID,
		Notes:        req.Notes,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdminDTO(admin))
}

// RemoveAdmin handles DELETE /api/admin/remove-admin/:userId
// @Summary Revoke admin rights
// @Description Remove a user from the admin roster. Administrator only; admins cannot remove themselves.
// @Tags admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/remove-admin/{userId} [delete]
func (s *Server) RemoveAdmin(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if svcErr := s.adminService.RemoveAdmin(c.Context(), callerID, userID); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAdmins handles GET /api/admin/list
// @Summary List administrators
// @Description Full admin roster with profiles, newest first. Administrator only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{items=[]server.AdminDTO}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/list [get]
func (s *Server) ListAdmins(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	admins, svcErr := s.adminService.ListAdmins(c.Context(), callerID)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	items := make([]*AdminDTO, 0, len(admins))
	for _, admin := range admins {
		items = append(items, toAdminDTO(admin))
	}
	return c.JSON(fiber.Map{"items": items})
}

// ListFeatureFlags handles GET /api/admin/flags
// @Summary Inspect feature flags
// @Description Configured flags and their evaluation for the calling admin. Administrator only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{flags=map[string]string,evaluated=map[string]bool}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/flags [get]
func (s *Server) ListFeatureFlags(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	isAdmin, adminErr := s.isAdminByUserID(c.Context(), callerID)
	if adminErr != nil {
		return models.RespondWithAppError(c, models.NewInternalError(adminErr))
	}
	if !isAdmin {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only administrators can inspect feature flags"))
	}

	return c.JSON(fiber.Map{
		"flags":     s.flags.Raw(),
		"evaluated": s.flags.Snapshot(callerID),
	})
}
