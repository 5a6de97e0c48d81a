package models

import "time"

// Course describes a teachable unit referenced by schedules, grades and links.
type Course struct {
	ID            string    `db:"id" json:"id"`
	CourseName    string    `db:"course_name" json:"course_name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	CreditWeight  int       `db:"credit_weight" json:"credit_weight"`
	CourseContent *string   `db:"course_content" json:"course_content,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter encapsulates allowed search parameters for listing courses.
type CourseFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
