package domain

import "time"

// Student is the domain model for registered students.
type Student struct {
	ID            int64
	StudentNumber string
	FirstName     string
	LastName      string
	ProgrammeID   int64
	ProgrammeName string
	Balance       float64
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Course is a single taught course a student may be enrolled in.
type Course struct {
	ID   int64
	Name string
}
