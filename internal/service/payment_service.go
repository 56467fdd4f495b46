package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/events"
	"github.com/spec-kit/docket-service/internal/repository"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// PaymentService handles admin-side student search and balance top-ups.
type PaymentService struct {
	students   repository.StudentRepository
	payments   repository.PaymentRepository
	dispatcher events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(students repository.StudentRepository, payments repository.PaymentRepository, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{students: students, payments: payments, dispatcher: dispatcher}
}

// SearchStudents runs a parameterized search over student number and names.
func (s *PaymentService) SearchStudents(ctx context.Context, term string, limit int) ([]domain.Student, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("Missing search query.")
	}
	students, err := s.students.Search(ctx, term, limit)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	return students, nil
}

// ListPayments returns recent payments.
func (s *PaymentService) ListPayments(ctx context.Context, limit int) ([]domain.Payment, error) {
	payments, err := s.payments.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure("", err)
	}
	return payments, nil
}

// RecordPayment credits a student's balance inside a single transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, studentNumber string, amount float64, reference string) (*domain.Payment, error) {
	studentNumber = strings.TrimSpace(studentNumber)
	if studentNumber == "" || amount <= 0 {
		return nil, apperrors.NewValidationError("Missing or invalid payment details.")
	}

	payment := &domain.Payment{
		Receipt:       uuid.NewString(),
		StudentNumber: studentNumber,
		Amount:        amount,
		Reference:     strings.TrimSpace(reference),
	}
	if err := s.payments.Record(ctx, payment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Student not found.")
		}
		return nil, apperrors.NewPersistenceFailure("", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventPaymentRecorded,
			Timestamp: time.Now().UTC(),
			Payload: events.PaymentRecordedPayload{
				Receipt:       payment.Receipt,
				StudentNumber: payment.StudentNumber,
				Amount:        payment.Amount,
			},
		})
	}
	return payment, nil
}
