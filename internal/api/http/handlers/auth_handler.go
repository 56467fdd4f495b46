package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/dto"
	"github.com/spec-kit/docket-service/internal/auth"
	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/service"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// AuthHandler exposes login, logout and identity endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	cookieName string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{auth: authService, cookieName: cookieName}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing credentials")
	}

	identifier := req.StudentNumber
	if req.Username != "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		return apperrors.NewValidationError("Missing credentials")
	}

	role := domain.RoleStudent
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return apperrors.NewValidationError("Unknown role.")
		}
		role = parsed
	}

	result, err := h.auth.Login(c.Context(), identifier, req.Password, role)
	if err != nil {
		return err
	}

	if req.UseCookie {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    result.Token,
			Expires:  result.ExpiresAt,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"token": result.Token,
		"user": dto.LoginUser{
			ID:        result.UserID,
			FirstName: result.FirstName,
			LastName:  result.LastName,
			Username:  result.Username,
			Role:      string(result.Role),
		},
	})
}

// Logout handles POST /logout. Sessions are stateless; logout clears the
// cookie client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"ok": true})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Missing token")
	}
	return c.JSON(fiber.Map{
		"ok": true,
		"user": fiber.Map{
			"sub":  claims.Subject,
			"role": claims.Role,
			"iat":  claims.IssuedAt,
			"exp":  claims.ExpiresAt,
		},
	})
}
