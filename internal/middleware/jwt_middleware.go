package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hserranome/drawaday-api/pkg/token"
)

// AuthRequired is a Fiber middleware that gates routes behind a valid
// bearer token. A missing header, a malformed header, a bad signature,
// and an expired token all produce the identical 401 response, so a
// caller cannot tell which check rejected them.
func AuthRequired(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return unauthorized(c)
		}

		// Store claims in the Fiber context for subsequent handlers.
		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}
