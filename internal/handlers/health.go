package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health handles GET /api/health.
func Health(env string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":   true,
			"env":  env,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
