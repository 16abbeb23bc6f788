package middleware

import (
	"github.com/gofiber/fiber/v2"

	"shopmanager/internal/auth"
	"shopmanager/internal/database"
)

// RequireRole permits the request iff the token's role claim is a member
// of the given set. Runs after AuthMiddleware.
func RequireRole(roles ...database.Role) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role.String()] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims := c.Locals("claims").(*auth.Claims)

		if _, ok := allowed[claims.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}

		return c.Next()
	}
}
