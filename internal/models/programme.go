package models

import "time"

// Programme is a course of study offered by a department for a session window.
type Programme struct {
	ID            string    `db:"id" json:"id"`
	ProgrammeName string    `db:"programme_name" json:"programme_name"`
	SessionStart  time.Time `db:"session_start" json:"session_start"`
	SessionEnd    time.Time `db:"session_end" json:"session_end"`
	DepartmentID  string    `db:"department_id" json:"department_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
