package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// Limiter is satisfied by ratelimit.FixedWindowLimiter.
type Limiter interface {
	Allow(key string) bool
}

// NewRateLimitMiddleware applies a per-IP request quota. A nil limiter
// disables limiting entirely (Redis not configured).
func NewRateLimitMiddleware(limiter Limiter) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if limiter == nil {
			return ctx.Next()
		}
		if !limiter.Allow(ctx.IP()) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests from this IP, please try again later.",
			})
		}
		return ctx.Next()
	}
}
