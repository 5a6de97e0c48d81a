package models

import "time"

// ProfessorCourse assigns a course to a professor.
// (professor_id, course_id) form the composite primary key.
type ProfessorCourse struct {
	ProfessorID string    `db:"professor_id" json:"professor_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProgrammeCourse attaches a course to a programme curriculum.
// (programme_id, course_id) form the composite primary key.
type ProgrammeCourse struct {
	ProgrammeID string    `db:"programme_id" json:"programme_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
