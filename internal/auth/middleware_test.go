package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/domain"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

func newTestApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"ok": false, "error": de.Message})
		},
	})
	mw := NewAuthMiddleware(tm, "access_token")
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		claims, _ := ClaimsFromContext(c)
		return c.SendString(claims.Subject)
	})
	app.Get("/admin-only", mw.Handle, RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddlewareMissingToken(t *testing.T) {
	app := newTestApp(t, NewTokenManager("s", time.Hour))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddlewareBearerHeader(t *testing.T) {
	tm := NewTokenManager("s", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.GenerateToken("7", domain.RoleStudent)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMiddlewareCookieFallback(t *testing.T) {
	tm := NewTokenManager("s", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.GenerateToken("7", domain.RoleStudent)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMiddlewareForgedToken(t *testing.T) {
	app := newTestApp(t, NewTokenManager("real-secret", time.Hour))

	forged, _, err := NewTokenManager("other-secret", time.Hour).GenerateToken("7", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireRoleMismatch(t *testing.T) {
	tm := NewTokenManager("s", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.GenerateToken("7", domain.RoleStudent)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
