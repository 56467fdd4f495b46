package dto

// GenerateDocketRequest payload for docket issuance.
type GenerateDocketRequest struct {
	StudentID int64  `json:"student_id"`
	ExamType  string `json:"exam_type"`
}

// RedeemRequest payload for token redemption at the verification point.
type RedeemRequest struct {
	QRPayload string `json:"qr_payload"`
}
