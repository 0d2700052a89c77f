package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authorizer decides whether a role may perform act on obj.
type Authorizer interface {
	Authorize(role, obj, act string) (bool, error)
}

// RequirePermission must run after AuthMiddleware.
func RequirePermission(authz Authorizer, log *zap.Logger, obj, act string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or session data is corrupted"})
		}

		allowed, err := authz.Authorize(claims.Role, obj, act)
		if err != nil {
			log.Error("authorization check failed", zap.String("role", claims.Role), zap.String("object", obj), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again later."})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		return c.Next()
	}
}
