package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/dto"
	"github.com/spec-kit/docket-service/internal/auth"
	"github.com/spec-kit/docket-service/internal/service"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// AdminHandler exposes exam settings and blocklist management.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings := h.admin.GetSettings(c.Context())
	return c.JSON(fiber.Map{"ok": true, "settings": settings})
}

// UpdateSettings handles POST /admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid exam type specified.")
	}

	settings, err := h.admin.UpdateSettings(c.Context(), req.ActiveExam, adminID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": fmt.Sprintf("Active exam set to %s.", settings.ActiveExam),
	})
}

// ListBlockedStudents handles GET /admin/blocked-students.
func (h *AdminHandler) ListBlockedStudents(c *fiber.Ctx) error {
	blocked, err := h.admin.ListBlockedStudents(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "blocked_students": blocked})
}

// BlockStudent handles POST /admin/students/:student_number/block.
func (h *AdminHandler) BlockStudent(c *fiber.Ctx) error {
	studentNumber := c.Params("student_number")
	if err := h.admin.BlockStudent(c.Context(), studentNumber, adminID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": fmt.Sprintf("Student %s has been blocked.", studentNumber),
	})
}

// UnblockStudent handles POST /admin/students/:student_number/unblock.
func (h *AdminHandler) UnblockStudent(c *fiber.Ctx) error {
	studentNumber := c.Params("student_number")
	if err := h.admin.UnblockStudent(c.Context(), studentNumber, adminID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": fmt.Sprintf("Student %s has been unblocked.", studentNumber),
	})
}

func adminID(c *fiber.Ctx) string {
	if claims, ok := auth.ClaimsFromContext(c); ok {
		return claims.Subject
	}
	return ""
}
