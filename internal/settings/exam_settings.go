package settings

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/docket-service/internal/domain"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

const examSettingsDocument = "exam_settings"

// ExamSettingsStore manages the singleton active-exam document.
type ExamSettingsStore struct {
	docs   DocumentStore
	logger *zap.Logger
}

// NewExamSettingsStore constructs the store.
func NewExamSettingsStore(docs DocumentStore, logger *zap.Logger) *ExamSettingsStore {
	return &ExamSettingsStore{docs: docs, logger: logger}
}

// Get returns the current settings, falling back to the default (ca1) when
// the document is missing or unreadable. The student portal must keep
// working through an admin-side document problem, so the fallback is logged
// rather than surfaced.
func (s *ExamSettingsStore) Get(ctx context.Context) domain.ExamSettings {
	data, err := s.docs.Load(ctx, examSettingsDocument)
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			s.logger.Warn("exam settings unreadable, using default", zap.Error(err))
		}
		return domain.DefaultExamSettings()
	}

	var settings domain.ExamSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("exam settings corrupt, using default", zap.Error(err))
		return domain.DefaultExamSettings()
	}
	if _, ok := domain.ParseExamType(string(settings.ActiveExam)); !ok {
		s.logger.Warn("exam settings hold unknown exam type, using default",
			zap.String("active_exam", string(settings.ActiveExam)))
		return domain.DefaultExamSettings()
	}
	return settings
}

// Set validates and persists the active exam phase.
func (s *ExamSettingsStore) Set(ctx context.Context, activeExam string) (domain.ExamSettings, error) {
	examType, ok := domain.ParseExamType(activeExam)
	if !ok {
		return domain.ExamSettings{}, apperrors.NewValidationError("Invalid exam type specified.")
	}

	settings := domain.ExamSettings{ActiveExam: examType}
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return domain.ExamSettings{}, err
	}
	if err := s.docs.Save(ctx, examSettingsDocument, data); err != nil {
		return domain.ExamSettings{}, apperrors.NewPersistenceFailure("Could not save exam settings.", err)
	}
	return settings, nil
}
