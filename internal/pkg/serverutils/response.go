package serverutils

import "github.com/gofiber/fiber/v2"

type Response[T any] struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    T                 `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string, errors map[string]string) *Response[any] {
	return &Response[any]{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  errors,
	}
}
