// Package middleware holds the Fiber middleware chain: JWT auth, role
// guards, request logging and Redis-backed rate limiting.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

const claimsKey = "claims"

// JWTAuth verifies the bearer token and stores the session claims in Locals.
func JWTAuth(manager *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "missing authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "invalid authorization"})
		}
		claims, err := manager.VerifySession(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "invalid token"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole rejects callers whose session lacks the role. Must run after
// JWTAuth.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || !claims.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "forbidden"})
		}
		return c.Next()
	}
}

// Claims returns the session claims placed by JWTAuth, or nil.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
