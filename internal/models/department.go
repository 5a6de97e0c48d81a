package models

import "time"

// DepartmentAdmin is the administrative role profile owning a User identity.
type DepartmentAdmin struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	RoleTitle *string   `db:"role_title" json:"role_title,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DepartmentAdminDetail joins the admin with its user identity.
type DepartmentAdminDetail struct {
	DepartmentAdmin
	FirstName          string `db:"first_name" json:"first_name"`
	LastName           string `db:"last_name" json:"last_name"`
	Email              string `db:"email" json:"email"`
	RegistrationNumber string `db:"registration_number" json:"registration_number"`
}

// Department groups programmes and professors under a managing admin.
type Department struct {
	ID                string    `db:"id" json:"id"`
	DepartmentName    string    `db:"department_name" json:"department_name"`
	Description       *string   `db:"description" json:"description,omitempty"`
	DepartmentAdminID string    `db:"department_admin_id" json:"department_admin_id"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
