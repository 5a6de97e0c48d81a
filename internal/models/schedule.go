package models

import "time"

// CourseSchedule represents a dated teaching slot for a course.
// StartTime and EndTime are wall-clock values in "15:04" form.
type CourseSchedule struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Location  string    `db:"location" json:"location"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CourseScheduleDetail includes the course name for listing views.
type CourseScheduleDetail struct {
	CourseSchedule
	CourseName string `db:"course_name" json:"course_name"`
}
