package serverutils

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		return OK(ctx, fiber.Map{
			"id":   CallerId(ctx).String(),
			"role": ctx.Locals(LocalsUserRole),
		})
	})
	app.Get("/admin", NewJwtMiddleware(testSecret), RequireAdmin(), func(ctx *fiber.Ctx) error {
		return OK(ctx, "ok")
	})
	return app
}

func TestJwtMiddlewareMissingToken(t *testing.T) {
	app := newGuardedApp(t)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Missing token")
}

func TestJwtMiddlewareMalformedToken(t *testing.T) {
	app := newGuardedApp(t)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid or expired token")
}

func TestJwtMiddlewareWrongSecret(t *testing.T) {
	app := newGuardedApp(t)

	token, err := GenerateToken("other-secret", uuid.New(), "user")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareExpiredToken(t *testing.T) {
	app := newGuardedApp(t)

	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewarePassesCallerIdentity(t *testing.T) {
	app := newGuardedApp(t)
	userId := uuid.New()

	token, err := GenerateToken(testSecret, userId, "user")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), userId.String())
	assert.Contains(t, string(body), `"role":"user"`)
}

func TestRequireAdmin(t *testing.T) {
	app := newGuardedApp(t)

	userToken, err := GenerateToken(testSecret, uuid.New(), "user")
	require.NoError(t, err)
	adminToken, err := GenerateToken(testSecret, uuid.New(), "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
