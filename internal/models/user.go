package models

import "time"

// UserType distinguishes the role profile attached to a user account.
type UserType string

const (
	UserTypeStudent         UserType = "Student"
	UserTypeProfessor       UserType = "Professor"
	UserTypeDepartmentAdmin UserType = "DepartmentAdmin"
)

// User represents a base identity record stored in the users table.
// Role profiles (Student, Professor, DepartmentAdmin) reference it by FK.
type User struct {
	ID                 string    `db:"id" json:"id"`
	FirstName          string    `db:"first_name" json:"first_name"`
	LastName           string    `db:"last_name" json:"last_name"`
	Email              string    `db:"email" json:"email"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	RegistrationNumber string    `db:"registration_number" json:"registration_number"`
	Address            *string   `db:"address" json:"address,omitempty"`
	PostalCode         *string   `db:"postal_code" json:"postal_code,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name for display and token claims.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
