package models

import "time"

// Student is the learner role profile owning a User identity.
type Student struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Year         int       `db:"year" json:"year"`
	AverageGrade *float64  `db:"average_grade" json:"average_grade,omitempty"`
	ProgrammeID  *string   `db:"programme_id" json:"programme_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail joins the student with its user identity and programme.
type StudentDetail struct {
	Student
	FirstName          string  `db:"first_name" json:"first_name"`
	LastName           string  `db:"last_name" json:"last_name"`
	Email              string  `db:"email" json:"email"`
	RegistrationNumber string  `db:"registration_number" json:"registration_number"`
	ProgrammeName      *string `db:"programme_name" json:"programme_name,omitempty"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	ProgrammeID string
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
