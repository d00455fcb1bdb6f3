package middleware

import (
	"freshfold/internal/authz"

	"github.com/gofiber/fiber/v2"
)

// RequireResource gates a route group on the authorization policy table:
// 401 without a user, 403 when the user's role is not allowed the resource.
// The 403 body names the role's home surface so clients can route there.
func (m *Middleware) RequireResource(resource authz.Resource) fiber.Handler {
	log := m.log.Function("RequireResource")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			log.Info("user not found in context", "resource", resource)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !authz.Allows(user.Role, resource) {
			log.Info(
				"access denied",
				"userID", user.ID,
				"role", user.Role,
				"resource", resource,
			)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
				"home":  string(authz.Home(user.Role)),
			})
		}

		return c.Next()
	}
}
