package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/docket-service/internal/events"
)

// AuditService writes an audit log line for every docket lifecycle event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventDocketIssued, a.handle)
	a.dispatcher.Subscribe(events.EventTokenRedeemed, a.handle)
	a.dispatcher.Subscribe(events.EventStudentBlocked, a.handle)
	a.dispatcher.Subscribe(events.EventStudentUnblocked, a.handle)
	a.dispatcher.Subscribe(events.EventPaymentRecorded, a.handle)
	a.dispatcher.Subscribe(events.EventSettingsChanged, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
