package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// Require checks that the principal carries one of the allowed roles. An empty
// allowed set accepts any authenticated principal. The forbidden outcome is
// distinct from unauthenticated so the transport layer can map them apart.
func Require(principal *domain.Principal, allowed ...domain.Role) error {
	if principal == nil {
		return domain.ErrInvalidCredentials
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if principal.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// RequireRoles returns middleware enforcing the allowed-role set for a route
// group. It must run after the auth middleware has loaded the principal.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := Require(principal, allowed...); err != nil {
			return apperrors.MapError(err)
		}
		return c.Next()
	}
}

// RequireAuthenticated accepts any authenticated principal.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles()
}
