package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopmanager/internal/auth"
)

// AuthMiddleware validates the bearer token and stores its claims for
// downstream handlers. The role claim is trusted as-is; no database read
// happens here. Missing, malformed and expired tokens are one and the
// same unauthenticated outcome.
func AuthMiddleware(c *fiber.Ctx) error {
	issuer := c.Locals("tokens").(*auth.TokenIssuer)

	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := issuer.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	c.Locals("claims", claims)

	return c.Next()
}
