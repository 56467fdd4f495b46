package domain

import "time"

// Payment records a single balance top-up for a student.
type Payment struct {
	ID            int64
	Receipt       string
	StudentID     int64
	StudentNumber string
	Amount        float64
	Reference     string
	CreatedAt     time.Time
}
