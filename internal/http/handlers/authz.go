package handlers

import (
	"strings"

	"electra/internal/domain"
	applog "electra/internal/log"
	"electra/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth gates a route on a valid, unexpired bearer token and stashes
// the claims for downstream handlers.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			applog.Security(c, "auth.token.missing", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Authentication required")
		}
		claims, err := auth.ParseToken(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return jsonError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals("claims", claims)
		c.Locals("staff_id", claims.StaffID)
		return c.Next()
	}
}

// RequireAdmin runs after RequireAuth and checks the token's role claim.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := claimsFrom(c)
		if claims == nil || claims.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return jsonError(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

func claimsFrom(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals("claims").(*services.Claims)
	return claims
}
