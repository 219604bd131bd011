package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalsUserId   = "user_id"
	LocalsUserRole = "user_role"

	tokenTTL = 24 * time.Hour
)

// GenerateToken signs a bearer token carrying the user id and role.
func GenerateToken(secret string, userId uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// NewJwtMiddleware validates the Authorization header and stores the caller
// identity in ctx.Locals. The secret is injected at startup, never read from
// the environment per request.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Missing token",
			})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid claims",
			})
		}

		rawId, _ := claims["user_id"].(string)
		userId, err := uuid.Parse(rawId)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid claims",
			})
		}

		role, _ := claims["role"].(string)

		ctx.Locals(LocalsUserId, userId)
		ctx.Locals(LocalsUserRole, role)
		return ctx.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// Must run after the JWT middleware.
func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalsUserRole).(string)
		if role != "admin" {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Admin access required",
			})
		}
		return ctx.Next()
	}
}

// CallerId returns the authenticated user id placed by the JWT middleware.
func CallerId(ctx *fiber.Ctx) uuid.UUID {
	id, _ := ctx.Locals(LocalsUserId).(uuid.UUID)
	return id
}
