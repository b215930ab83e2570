package server

import (
	"fmt"
	"strconv"
	"time"

	"realme/internal/models"
	"realme/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new account and its profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,real_name=string} true "Signup request"
// @Success 201 {object} object{token=string,profile=server.ProfileDTO}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		RealName string `json:"real_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateRealName(req.RealName); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("An account with this email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Profile creation is application-level, not automatic: the account and
	// its profile are written together so one cannot exist without the other.
	user := &models.User{Email: req.Email, Password: string(hashedPassword)}
	var profile *models.Profile
	txErr := s.db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile = &models.Profile{
			ID:       user.ID,
			Email:    user.Email,
			RealName: req.RealName,
		}
		return tx.Create(profile).Error
	})
	if txErr != nil {
		return models.RespondWithAppError(c, models.MapStoreError(txErr, "Account", req.Email))
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"profile": toProfileDTO(profile),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate a user and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,profile=server.ProfileDTO}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile, err := s.profileRepo.GetByID(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	resp := fiber.Map{"token": token}
	if profile != nil {
		resp["profile"] = toProfileDTO(profile)
	}
	return c.JSON(resp)
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if _, err := s.requireCaller(c); err != nil {
		return nil
	}

	tokenString, _ := c.Locals("authToken").(string)
	if s.redis != nil {
		// Best-effort revocation: blacklist the JTI until the token expires.
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				if jti != "" {
					ttl := 7 * 24 * time.Hour
					if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
						if remaining := time.Until(exp.Time); remaining > 0 {
							ttl = remaining
						}
					}
					s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
				}
			}
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID and email
func (s *Server) generateToken(userID uint, email string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"email": email,
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(time.Hour * 24 * 7).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
