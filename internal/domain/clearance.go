package domain

// ClearanceStatus is a per-exam-phase eligibility flag.
type ClearanceStatus string

const (
	ClearanceEligible    ClearanceStatus = "eligible"
	ClearanceNotEligible ClearanceStatus = "not-eligible"
)

// Clearance holds a student's eligibility status per exam phase.
// Rows are maintained by external retention processes; this service only reads them.
type Clearance struct {
	StudentID  int64
	CA1Status  ClearanceStatus
	CA2Status  ClearanceStatus
	ExamStatus ClearanceStatus
}

// StatusFor maps an exam type to its clearance field.
func (c Clearance) StatusFor(examType ExamType) ClearanceStatus {
	switch examType {
	case ExamTypeCA1:
		return c.CA1Status
	case ExamTypeCA2:
		return c.CA2Status
	case ExamTypeFinal:
		return c.ExamStatus
	}
	return ""
}

// Eligible reports whether the student may receive a docket for the exam type.
func (c Clearance) Eligible(examType ExamType) bool {
	return c.StatusFor(examType) == ClearanceEligible
}
