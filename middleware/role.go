package middleware

import (
	"inspection-app/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole membatasi route untuk role tertentu. ADMIN selalu lolos.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("role").(string)
		if !ok || role == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Invalid role",
			})
		}

		if role == models.RoleAdmin {
			return ctx.Next()
		}

		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}

		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: You do not have permission",
		})
	}
}
