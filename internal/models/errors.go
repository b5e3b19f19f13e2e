package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized JSON error body. Data carries per-field
// validation errors when present.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// AppError is a categorized application error. Status is the HTTP status the
// dispatch layer maps the category to.
type AppError struct {
	Code    string
	Status  int
	Message string
	Data    any
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

// NewValidationError reports failed input validation (HTTP 422). Optional
// data carries structured per-field errors.
func NewValidationError(message string, data ...any) *AppError {
	e := &AppError{
		Code:    "VALIDATION_ERROR",
		Status:  fiber.StatusUnprocessableEntity,
		Message: message,
	}
	if len(data) > 0 {
		e.Data = data[0]
	}
	return e
}

// NewMissingImageError reports a create/update without an image artifact (HTTP 422).
func NewMissingImageError(message string) *AppError {
	return &AppError{
		Code:    "MISSING_IMAGE",
		Status:  fiber.StatusUnprocessableEntity,
		Message: message,
	}
}

// NewUnauthenticatedError reports a missing or failed identity assertion (HTTP 401).
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHENTICATED",
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

// NewForbiddenError reports an ownership or authorization failure (HTTP 403).
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Status:  fiber.StatusForbidden,
		Message: message,
	}
}

// NewNotFoundError reports a missing resource (HTTP 404).
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Status:  fiber.StatusNotFound,
		Message: message,
	}
}

// NewInternalError wraps an uncategorized failure (HTTP 500).
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError serializes a standardized error response. AppErrors carry
// their own status; anything else is treated as an internal error.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return c.Status(appErr.Status).JSON(ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
			Data:    appErr.Data,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}
