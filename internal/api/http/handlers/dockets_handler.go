package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/dto"
	"github.com/spec-kit/docket-service/internal/service"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// DocketsHandler exposes eligibility and docket issuance endpoints.
type DocketsHandler struct {
	dockets *service.DocketService
}

// NewDocketsHandler constructs handler.
func NewDocketsHandler(docketService *service.DocketService) *DocketsHandler {
	return &DocketsHandler{dockets: docketService}
}

// CheckEligibility handles GET /dockets/eligibility/:student_id.
func (h *DocketsHandler) CheckEligibility(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.Params("student_id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("Invalid student id.")
	}

	eligibility, err := h.dockets.CheckEligibility(c.Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "eligibility": eligibility})
}

// Generate handles POST /dockets/generate, returning the PDF as an
// attachment download.
func (h *DocketsHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateDocketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing parameters")
	}
	if req.StudentID == 0 || req.ExamType == "" {
		return apperrors.NewValidationError("Missing parameters")
	}

	generated, err := h.dockets.Generate(c.Context(), req.StudentID, req.ExamType)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", generated.Filename))
	return c.Send(generated.PDF)
}
