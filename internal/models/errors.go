package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error kind codes returned by the service layer and mapped to HTTP statuses
// by the API layer.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeOwnership     = "OWNERSHIP_VIOLATION"
	CodeAccessDenied  = "ACCESS_DENIED"
	CodeConflict      = "CONFLICT"
	CodeNoSuchElement = "NO_SUCH_ELEMENT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON envelope for non-payload results; the HTTP status
// is mirrored in Code for client convenience.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AppError is a tagged application error. Services return it; handlers
// inspect Kind to pick the response status.
type AppError struct {
	Kind    string
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
		Kind:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewOwnershipError(message string) *AppError {
	return &AppError{Kind: CodeOwnership, Message: message}
}

func NewAccessDeniedError(message string) *AppError {
	return &AppError{Kind: CodeAccessDenied, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: CodeConflict, Message: message}
}

func NewNoSuchElementError(message string) *AppError {
	return &AppError{Kind: CodeNoSuchElement, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: CodeUnauthorized, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Kind:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError returns the HTTP status for an error based on its kind.
// Unknown errors map to 500.
func StatusForError(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeOwnership, CodeAccessDenied, CodeValidation:
		return fiber.StatusBadRequest
	case CodeConflict, CodeNoSuchElement:
		return fiber.StatusConflict
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard {message, code} envelope for err.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)
	message := err.Error()
	if appErr, ok := err.(*AppError); ok {
		message = appErr.Message
	}
	return c.Status(status).JSON(ErrorResponse{Message: message, Code: status})
}
