package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/docket-service/internal/domain"
)

func newTestPaymentService() (*PaymentService, *fakePaymentRepo) {
	students := &fakeStudentRepo{
		students: map[int64]*domain.Student{
			1: {ID: 1, StudentNumber: "21001234", FirstName: "Chipo", LastName: "Banda"},
		},
	}
	payments := newFakePaymentRepo(map[string]int64{"21001234": 1})
	return NewPaymentService(students, payments, nil), payments
}

func TestSearchStudentsRequiresTerm(t *testing.T) {
	svc, _ := newTestPaymentService()

	_, err := svc.SearchStudents(context.Background(), "   ", 10)
	de := assertStatus(t, err, http.StatusBadRequest)
	if de.Message != "Missing search query." {
		t.Fatalf("unexpected message %q", de.Message)
	}
}

func TestSearchStudents(t *testing.T) {
	svc, _ := newTestPaymentService()

	matches, err := svc.SearchStudents(context.Background(), "2100", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(matches) != 1 || matches[0].StudentNumber != "21001234" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestRecordPayment(t *testing.T) {
	svc, repo := newTestPaymentService()

	payment, err := svc.RecordPayment(context.Background(), "21001234", 350.00, "bank-deposit")
	if err != nil {
		t.Fatalf("record error: %v", err)
	}
	if payment.Receipt == "" {
		t.Fatal("expected a receipt to be assigned")
	}
	if payment.StudentID != 1 {
		t.Fatalf("unexpected student id %d", payment.StudentID)
	}
	if len(repo.payments) != 1 {
		t.Fatalf("expected 1 stored payment, got %d", len(repo.payments))
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, _ := newTestPaymentService()

	cases := []struct {
		name          string
		studentNumber string
		amount        float64
	}{
		{"empty student number", "", 100},
		{"zero amount", "21001234", 0},
		{"negative amount", "21001234", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), tc.studentNumber, tc.amount, "")
			assertStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestRecordPaymentUnknownStudent(t *testing.T) {
	svc, _ := newTestPaymentService()

	_, err := svc.RecordPayment(context.Background(), "99999999", 100, "")
	de := assertStatus(t, err, http.StatusNotFound)
	if de.Message != "Student not found." {
		t.Fatalf("unexpected message %q", de.Message)
	}
}
