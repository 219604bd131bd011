package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }
func (silentLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (silentLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func newErrorApp(isProd bool, handlerErr error) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorHandlerMiddleware(silentLogger{}, isProd))
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandlerAppError(t *testing.T) {
	app := newErrorApp(true, apperror.TooManyRequests("You can only submit one survey per 24 hours"))

	status, body := doRequest(t, app)
	assert.Equal(t, 429, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "You can only submit one survey per 24 hours", body["error"])
	assert.NotContains(t, body, "details")
}

func TestErrorHandlerAppErrorWithDetails(t *testing.T) {
	details := []FieldError{{Field: "email", Message: "must be a valid email address"}}
	app := newErrorApp(true, apperror.BadRequest("Validation failed").WithDetails(details))

	status, body := doRequest(t, app)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Validation failed", body["error"])
	require.Contains(t, body, "details")
}

func TestErrorHandlerRecordNotFound(t *testing.T) {
	app := newErrorApp(true, gorm.ErrRecordNotFound)

	status, body := doRequest(t, app)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Resource not found", body["error"])
}

func TestErrorHandlerGenericErrorInProd(t *testing.T) {
	app := newErrorApp(true, errors.New("pq: connection reset"))

	status, body := doRequest(t, app)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.NotContains(t, body, "stack", "stack traces never leak in production")
}

func TestErrorHandlerGenericErrorInDev(t *testing.T) {
	app := newErrorApp(false, errors.New("pq: connection reset"))

	status, body := doRequest(t, app)
	assert.Equal(t, 500, status)
	assert.Contains(t, body, "stack")
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := newErrorApp(true, fiber.ErrMethodNotAllowed)

	status, body := doRequest(t, app)
	assert.Equal(t, 405, status)
	assert.Equal(t, "Method Not Allowed", body["error"])
}

func TestErrorHandlerPassesSuccessThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorHandlerMiddleware(silentLogger{}, true))
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return OK(ctx, fiber.Map{"fine": true})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
