package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the uniform success envelope.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

func OK(ctx *fiber.Ctx, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func OKMessage(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Created(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
