package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// FormRateLimit throttles public form submissions per client IP. The
// limiter's store evicts entries after the window expires; an alternative
// store (e.g. Redis) can be injected through the Storage field if the app
// ever runs more than one instance.
func FormRateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}
