package middleware

import (
	"strings"

	"github.com/RP1999/healthcare-application/internal/repository"
	"github.com/RP1999/healthcare-application/internal/token"
	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth.
const (
	LocalsUserID = "user_id"
	LocalsUser   = "user"
)

// RequireAuth verifies the bearer token on every request and resolves its
// subject against the user store. All failures produce the same generic 401
// so callers learn nothing about the cause.
func RequireAuth(tokens *token.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c)
		}
		subject, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}
		u, err := users.FindByID(c.Context(), subject)
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(LocalsUserID, u.ID.Hex())
		c.Locals(LocalsUser, u.Public())
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
