package models

import "time"

// Grade links a student to a course with an optional score.
// (student_id, course_id) form the composite primary key.
type Grade struct {
	StudentID string    `db:"student_id" json:"student_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Score     *float64  `db:"score" json:"score,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GradeDetail joins a grade with display names for list views.
type GradeDetail struct {
	Grade
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}

// TranscriptRow is one line of a student transcript export.
type TranscriptRow struct {
	CourseName   string   `db:"course_name" json:"course_name"`
	CreditWeight int      `db:"credit_weight" json:"credit_weight"`
	Score        *float64 `db:"score" json:"score,omitempty"`
}
