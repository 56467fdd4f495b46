package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/events"
	"github.com/spec-kit/docket-service/internal/settings"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// AdminService manages the exam settings and student blocklist documents.
type AdminService struct {
	settings   *settings.ExamSettingsStore
	blocklist  *settings.BlocklistStore
	dispatcher events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(settingsStore *settings.ExamSettingsStore, blocklist *settings.BlocklistStore, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{settings: settingsStore, blocklist: blocklist, dispatcher: dispatcher}
}

// GetSettings returns the current exam settings.
func (s *AdminService) GetSettings(ctx context.Context) domain.ExamSettings {
	return s.settings.Get(ctx)
}

// UpdateSettings validates and persists the active exam phase.
func (s *AdminService) UpdateSettings(ctx context.Context, activeExam, adminID string) (domain.ExamSettings, error) {
	updated, err := s.settings.Set(ctx, activeExam)
	if err != nil {
		return domain.ExamSettings{}, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventSettingsChanged,
		Payload: events.SettingsChangedPayload{ActiveExam: updated.ActiveExam, AdminID: adminID},
	})
	return updated, nil
}

// ListBlockedStudents returns the blocked student numbers.
func (s *AdminService) ListBlockedStudents(ctx context.Context) ([]string, error) {
	return s.blocklist.List(ctx)
}

// BlockStudent bars a student from docket issuance. Idempotent.
func (s *AdminService) BlockStudent(ctx context.Context, studentNumber, adminID string) error {
	studentNumber = strings.TrimSpace(studentNumber)
	if studentNumber == "" {
		return apperrors.NewValidationError("Missing student number.")
	}
	if err := s.blocklist.Block(ctx, studentNumber); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventStudentBlocked,
		Payload: events.BlocklistChangedPayload{StudentNumber: studentNumber, AdminID: adminID},
	})
	return nil
}

// UnblockStudent lifts a block. Idempotent.
func (s *AdminService) UnblockStudent(ctx context.Context, studentNumber, adminID string) error {
	studentNumber = strings.TrimSpace(studentNumber)
	if studentNumber == "" {
		return apperrors.NewValidationError("Missing student number.")
	}
	if err := s.blocklist.Unblock(ctx, studentNumber); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventStudentUnblocked,
		Payload: events.BlocklistChangedPayload{StudentNumber: studentNumber, AdminID: adminID},
	})
	return nil
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
