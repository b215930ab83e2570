package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHENTICATED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an application error to its HTTP status code.
// Unclassified errors fall through to 500.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHENTICATED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// MapStoreError translates database-level failures into application errors.
// Postgres constraint codes are recognized via pgconn; the sqlite driver used
// in tests surfaces the same constraints as message text, so both are handled.
// 23505 unique violation -> CONFLICT, 23503 foreign key -> VALIDATION_ERROR,
// 42501 insufficient privilege -> FORBIDDEN, record-not-found -> NOT_FOUND.
func MapStoreError(err error, resource string, id interface{}) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(resource, id)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewConflictError(fmt.Sprintf("%s already exists", resource))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return NewConflictError(fmt.Sprintf("%s already exists", resource))
		case "23503":
			return NewValidationError("Referenced record does not exist")
		case "42501":
			return NewForbiddenError("Not permitted")
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key"):
		return NewConflictError(fmt.Sprintf("%s already exists", resource))
	case strings.Contains(msg, "foreign key constraint"):
		return NewValidationError("Referenced record does not exist")
	}

	return NewInternalError(err)
}

// respondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError writes the error using the status derived from its code.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusForError(err), err)
}
