package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error with an HTTP status, rendered by ErrorHandler.
type AppError struct {
	Code    int
	Message string
	Fields  map[string]string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ErrBadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message)
}

func ErrNotFound(resource string, id any) *AppError {
	return NewAppError(fiber.StatusNotFound, fmt.Sprintf("%s with id %v not found", resource, id))
}

func ErrConflict(message string) *AppError {
	return NewAppError(fiber.StatusConflict, message)
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{
		Code:    fiber.StatusUnprocessableEntity,
		Message: "validation failed",
		Fields:  fields,
	}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler. Unknown errors
// become 500 without leaking their text.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message, appErr.Fields))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message, nil))
	}

	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error", nil))
}
