package domain

import "time"

// Admin is the domain model for administrative users.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
