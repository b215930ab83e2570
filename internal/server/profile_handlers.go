package server

import (
	"time"

	"realme/internal/models"
	"realme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPublicProfiles handles GET /api/profiles
// @Summary List public profiles
// @Description Verified profiles projected to non-sensitive fields.
// @Tags profiles
// @Produce json
// @Success 200 {object} object{items=[]service.PublicProfile}
// @Router /profiles [get]
func (s *Server) ListPublicProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListPublicProfiles(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": profiles})
}

// GetMyProfile handles GET /api/profiles/me
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} server.ProfileDTO
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	profile, svcErr := s.profileService.GetOwnProfile(c.Context(), callerID)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toProfileDTO(profile))
}

// UpdateMyProfile handles PATCH /api/profiles/me
// @Summary Update own profile
// @Description Update self-service fields. Verification fields are admin-only.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{real_name=string,location=string,birth_date=string} true "Fields to update; birth_date as YYYY-MM-DD"
// @Success 200 {object} server.ProfileDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /profiles/me [patch]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	callerID, err := s.requireCaller(c)
	if err != nil {
		return nil
	}

	var req struct {
		RealName  *string `json:"real_name"`
		Location  *string `json:"location"`
		BirthDate *string `json:"birth_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	input := service.UpdateProfileInput{
		ProfileID: callerID,
		RealName:  req.RealName,
		Location:  req.Location,
	}
	if req.BirthDate != nil {
		birthDate, parseErr := time.Parse("2006-01-02", *req.BirthDate)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("birth_date must be in YYYY-MM-DD format"))
		}
		input.BirthDate = &birthDate
	}

	profile, svcErr := s.profileService.UpdateOwnProfile(c.Context(), input)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toProfileDTO(profile))
}

// GetProfile handles GET /api/profiles/:id
// @Summary Get a profile
// @Description Owners and administrators see the full profile; everyone else sees verified profiles only. Unverified profiles are reported as not found.
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} server.ProfileDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/{id} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, _ := s.callerID(c)

	profile, svcErr := s.profileService.GetProfile(c.Context(), caller, id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(toProfileDTO(profile))
}
