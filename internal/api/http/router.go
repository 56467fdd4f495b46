package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/http/handlers"
	"github.com/spec-kit/docket-service/internal/auth"
	"github.com/spec-kit/docket-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Dockets        *handlers.DocketsHandler
	Payments       *handlers.PaymentsHandler
	Admin          *handlers.AdminHandler
	Verification   *handlers.VerificationHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireAuth := cfg.AuthMiddleware.Handle
	requireAdmin := auth.RequireRole(domain.RoleAdmin)

	app.Get("/api", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", requireAuth, cfg.Auth.Logout)
	app.Get("/me", requireAuth, cfg.Auth.Me)

	dockets := app.Group("/dockets")
	dockets.Get("/eligibility/:student_id", cfg.Dockets.CheckEligibility)
	dockets.Post("/generate", requireAuth, cfg.Dockets.Generate)
	dockets.Get("/payments", requireAuth, requireAdmin, cfg.Payments.List)
	dockets.Get("/students/search", requireAuth, requireAdmin, cfg.Payments.SearchStudents)
	dockets.Post("/payments/update", requireAuth, requireAdmin, cfg.Payments.RecordPayment)

	admin := app.Group("/admin", requireAuth, requireAdmin)
	admin.Get("/settings", cfg.Admin.GetSettings)
	admin.Post("/settings", cfg.Admin.UpdateSettings)
	admin.Get("/blocked-students", cfg.Admin.ListBlockedStudents)
	admin.Post("/students/:student_number/block", cfg.Admin.BlockStudent)
	admin.Post("/students/:student_number/unblock", cfg.Admin.UnblockStudent)

	app.Post("/verification/redeem", requireAuth, cfg.Verification.Redeem)
}
