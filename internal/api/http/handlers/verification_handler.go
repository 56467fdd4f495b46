package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/dto"
	"github.com/spec-kit/docket-service/internal/service"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// VerificationHandler redeems docket tokens at the physical checkpoint.
type VerificationHandler struct {
	dockets *service.DocketService
}

// NewVerificationHandler constructs handler.
func NewVerificationHandler(docketService *service.DocketService) *VerificationHandler {
	return &VerificationHandler{dockets: docketService}
}

// Redeem handles POST /verification/redeem.
func (h *VerificationHandler) Redeem(c *fiber.Ctx) error {
	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing QR payload.")
	}
	if req.QRPayload == "" {
		return apperrors.NewValidationError("Missing QR payload.")
	}

	docket, err := h.dockets.Redeem(c.Context(), req.QRPayload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ok": true,
		"docket": fiber.Map{
			"ref":       docket.Ref,
			"exam_type": docket.ExamType,
			"status":    docket.Status,
		},
	})
}
