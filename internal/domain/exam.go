package domain

// ExamType enumerates the three gating milestones for docket issuance.
type ExamType string

const (
	ExamTypeCA1   ExamType = "ca1"
	ExamTypeCA2   ExamType = "ca2"
	ExamTypeFinal ExamType = "exam"
)

// ParseExamType validates a raw exam type value.
func ParseExamType(raw string) (ExamType, bool) {
	switch ExamType(raw) {
	case ExamTypeCA1, ExamTypeCA2, ExamTypeFinal:
		return ExamType(raw), true
	}
	return "", false
}

// ExamSettings is the singleton document naming the currently active exam phase.
type ExamSettings struct {
	ActiveExam ExamType `json:"active_exam"`
}

// DefaultExamSettings is returned when the settings document is missing or unreadable.
func DefaultExamSettings() ExamSettings {
	return ExamSettings{ActiveExam: ExamTypeCA1}
}
