package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/domain"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// RequireRole ensures the session carries exactly the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Missing token")
		}
		if claims.Role != role {
			return apperrors.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}
