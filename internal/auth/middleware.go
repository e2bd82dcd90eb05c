package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

const principalKey = "auth_principal"

// PrincipalLoader resolves a principal id to its normalized view across both
// account tables.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, id string) (*domain.Principal, error)
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens     *TokenManager
	principals PrincipalLoader
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, principals PrincipalLoader) *Middleware {
	return &Middleware{tokens: tokens, principals: principals}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseAccessToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal, err := m.principals.LoadPrincipal(c.UserContext(), claims.Subject)
	if err != nil {
		return apperrors.NewUnauthorized("inactive or missing user")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
