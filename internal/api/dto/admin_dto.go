package dto

// UpdateSettingsRequest payload for setting the active exam phase.
type UpdateSettingsRequest struct {
	ActiveExam string `json:"active_exam"`
}

// RecordPaymentRequest payload for the balance top-up endpoint.
type RecordPaymentRequest struct {
	StudentNumber string  `json:"student_number"`
	Amount        float64 `json:"amount"`
	Reference     string  `json:"reference"`
}

// StudentSummary is the search result row.
type StudentSummary struct {
	ID            int64   `json:"id"`
	StudentNumber string  `json:"student_number"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	ProgrammeName string  `json:"programme_name"`
	Balance       float64 `json:"balance"`
}

// PaymentSummary is one payment row.
type PaymentSummary struct {
	Receipt       string  `json:"receipt"`
	StudentNumber string  `json:"student_number"`
	Amount        float64 `json:"amount"`
	Reference     string  `json:"reference,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
