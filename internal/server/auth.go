package server

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"realme/internal/middleware"
	"realme/internal/models"
	"realme/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "realme-api"
	tokenAudience = "realme-client"
)

// Authenticate resolves the Authorization header to a caller identity, once
// per request. It never writes a response: a missing, malformed, revoked, or
// invalid token just leaves the identity unset, and each endpoint decides
// whether that is acceptable.
func (s *Server) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			observability.AuthGateResolutions.WithLabelValues("absent").Inc()
			middleware.Logger.DebugContext(c.UserContext(), "auth gate: no authorization header")
			return c.Next()
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			observability.AuthGateResolutions.WithLabelValues("malformed").Inc()
			middleware.Logger.WarnContext(c.UserContext(), "auth gate: malformed authorization header")
			return c.Next()
		}
		tokenString := parts[1]

		claims, err := s.verifyToken(c.Context(), tokenString)
		if err != nil {
			observability.AuthGateResolutions.WithLabelValues("rejected").Inc()
			middleware.Logger.WarnContext(c.UserContext(), "auth gate: token rejected",
				slog.String("reason", err.Error()))
			return c.Next()
		}

		c.Locals("userID", claims.userID)
		c.Locals("userEmail", claims.email)
		c.Locals("authToken", tokenString)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.userID)
		c.SetUserContext(ctx)

		observability.AuthGateResolutions.WithLabelValues("resolved").Inc()
		middleware.Logger.DebugContext(ctx, "auth gate: caller resolved")
		return c.Next()
	}
}

type callerClaims struct {
	userID uint
	email  string
}

// verifyToken validates signature, issuer, audience, subject, and revocation.
func (s *Server) verifyToken(ctx context.Context, tokenString string) (*callerClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, models.NewUnauthenticatedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, models.NewUnauthenticatedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
		isBlacklisted, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
		if err == nil && isBlacklisted > 0 {
			return nil, models.NewUnauthenticatedError("Token has been revoked")
		}
	}

	email, _ := claims["email"].(string)
	return &callerClaims{userID: uint(userID), email: email}, nil
}

// requireCaller enforces the RequireCaller rule: identity and token must both
// be present. On failure it writes a 401 response and returns
// errResponseWritten; callers should then return nil.
func (s *Server) requireCaller(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userID").(uint)
	token, tokenOK := c.Locals("authToken").(string)
	if !ok || !tokenOK || token == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
		return 0, errResponseWritten
	}
	return userID, nil
}

// callerID returns the resolved caller identity, if any.
func (s *Server) callerID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
