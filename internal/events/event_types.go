package events

import (
	"time"

	"github.com/spec-kit/docket-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDocketIssued     EventType = "docket_issued"
	EventTokenRedeemed    EventType = "token_redeemed"
	EventStudentBlocked   EventType = "student_blocked"
	EventStudentUnblocked EventType = "student_unblocked"
	EventPaymentRecorded  EventType = "payment_recorded"
	EventSettingsChanged  EventType = "exam_settings_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DocketIssuedPayload payload.
type DocketIssuedPayload struct {
	DocketRef     string          `json:"docket_ref"`
	StudentNumber string          `json:"student_number"`
	ExamType      domain.ExamType `json:"exam_type"`
}

// TokenRedeemedPayload payload.
type TokenRedeemedPayload struct {
	DocketRef string `json:"docket_ref"`
}

// BlocklistChangedPayload payload for block/unblock events.
type BlocklistChangedPayload struct {
	StudentNumber string `json:"student_number"`
	AdminID       string `json:"admin_id"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	Receipt       string  `json:"receipt"`
	StudentNumber string  `json:"student_number"`
	Amount        float64 `json:"amount"`
}

// SettingsChangedPayload payload.
type SettingsChangedPayload struct {
	ActiveExam domain.ExamType `json:"active_exam"`
	AdminID    string          `json:"admin_id"`
}
