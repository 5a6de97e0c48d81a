package models

import "time"

// Professor is the teaching role profile owning a User identity.
type Professor struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	DepartmentID   *string   `db:"department_id" json:"department_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ProfessorDetail joins the professor with its user identity and department.
type ProfessorDetail struct {
	Professor
	FirstName          string  `db:"first_name" json:"first_name"`
	LastName           string  `db:"last_name" json:"last_name"`
	Email              string  `db:"email" json:"email"`
	RegistrationNumber string  `db:"registration_number" json:"registration_number"`
	DepartmentName     *string `db:"department_name" json:"department_name,omitempty"`
}

// ProfessorFilter encapsulates allowed search parameters for listing professors.
type ProfessorFilter struct {
	DepartmentID string
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
