package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docket-service/internal/api/dto"
	"github.com/spec-kit/docket-service/internal/service"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// PaymentsHandler exposes admin-only payment and student search endpoints.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// List handles GET /dockets/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	payments, err := h.payments.ListPayments(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}

	items := make([]dto.PaymentSummary, 0, len(payments))
	for _, payment := range payments {
		items = append(items, dto.PaymentSummary{
			Receipt:       payment.Receipt,
			StudentNumber: payment.StudentNumber,
			Amount:        payment.Amount,
			Reference:     payment.Reference,
			CreatedAt:     payment.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(fiber.Map{"ok": true, "payments": items})
}

// SearchStudents handles GET /dockets/students/search?q=.
func (h *PaymentsHandler) SearchStudents(c *fiber.Ctx) error {
	students, err := h.payments.SearchStudents(c.Context(), c.Query("q"), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}

	items := make([]dto.StudentSummary, 0, len(students))
	for _, student := range students {
		items = append(items, dto.StudentSummary{
			ID:            student.ID,
			StudentNumber: student.StudentNumber,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
			ProgrammeName: student.ProgrammeName,
			Balance:       student.Balance,
		})
	}
	return c.JSON(fiber.Map{"ok": true, "students": items})
}

// RecordPayment handles POST /dockets/payments/update.
func (h *PaymentsHandler) RecordPayment(c *fiber.Ctx) error {
	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing or invalid payment details.")
	}

	payment, err := h.payments.RecordPayment(c.Context(), req.StudentNumber, req.Amount, req.Reference)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"receipt": payment.Receipt,
		"message": "Payment recorded.",
	})
}
