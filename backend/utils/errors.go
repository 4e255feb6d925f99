package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeConflict            = "CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRequiresRecentLogin = "REQUIRES_RECENT_LOGIN"
)

func NewValidationError(details string) *AppError {
	return &AppError{Code: CodeValidation, Message: "invalid request", Details: details, Status: fiber.StatusUnprocessableEntity}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Status: fiber.StatusNotFound}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: fiber.StatusUnauthorized}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: fiber.StatusConflict}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Status: fiber.StatusBadRequest}
}

// NewRequiresRecentLoginError tells the client to sign out and back in.
func NewRequiresRecentLoginError(message string) *AppError {
	return &AppError{Code: CodeRequiresRecentLogin, Message: message, Status: fiber.StatusUnauthorized}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: CodeInternalError, Message: message, Status: fiber.StatusInternalServerError}
}

// ErrorHandler is the fiber error handler. AppErrors keep their status,
// fiber errors keep their code, anything else becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(ErrorResponse{
			Success: false,
			Error:   appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Error(c, fiberErr.Code, fiberErr)
	}

	return InternalServerError(c, "internal server error")
}
