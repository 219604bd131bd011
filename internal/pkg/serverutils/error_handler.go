package serverutils

import (
	"errors"
	"runtime/debug"

	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// NewErrorHandlerMiddleware funnels every handler error through one
// translator producing the uniform {success:false, error, details?} body.
// Unknown errors are logged with full context and reported generically in
// production; stack traces are attached only outside production.
func NewErrorHandlerMiddleware(log logger.ILogger, isProd bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message, details := translate(err)

		if status >= 500 {
			log.Error("http", "Unhandled request error", map[string]interface{}{
				"error":  err.Error(),
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"ip":     ctx.IP(),
			})
			if isProd {
				message = "Internal Server Error"
				details = nil
			}
		}

		body := fiber.Map{
			"success": false,
			"error":   message,
		}
		if details != nil {
			body["details"] = details
		}
		if status >= 500 && !isProd {
			body["stack"] = string(debug.Stack())
		}
		return ctx.Status(status).JSON(body)
	}
}

func translate(err error) (int, string, interface{}) {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Code, appErr.Message, appErr.Details
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "Resource not found", nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fiber.StatusConflict, "Resource already exists", fiber.Map{"constraint": pgErr.ConstraintName}
		case "23503": // foreign_key_violation
			return fiber.StatusBadRequest, "Invalid reference", nil
		}
	}

	return fiber.StatusInternalServerError, "Internal Server Error", nil
}
