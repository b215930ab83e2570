package server

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"realme/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// timeFormat is the timestamp layout used in response DTOs.
const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination extracts limit and offset query parameters, clamping the
// limit to [1, maxLimit].
func parsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "userId" -> "Invalid user ID", "profileId" -> "Invalid profile ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// isAdminByUserID is the IsAdmin predicate shared with the service layer.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	return s.adminRepo.IsAdmin(ctx, userID)
}

// contentSnippet returns the first 100 characters of content, with an
// ellipsis appended when truncated.
func contentSnippet(content string) string {
	const snippetLen = 100
	runes := []rune(content)
	if len(runes) <= snippetLen {
		return content
	}
	return string(runes[:snippetLen]) + "..."
}
