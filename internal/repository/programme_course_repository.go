package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

// ProgrammeCourseRepository manages programme-course curriculum rows.
type ProgrammeCourseRepository struct {
	db *sqlx.DB
}

// NewProgrammeCourseRepository constructs a ProgrammeCourseRepository.
func NewProgrammeCourseRepository(db *sqlx.DB) *ProgrammeCourseRepository {
	return &ProgrammeCourseRepository{db: db}
}

// List returns all programme-course links.
func (r *ProgrammeCourseRepository) List(ctx context.Context) ([]models.ProgrammeCourse, error) {
	var links []models.ProgrammeCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT programme_id, course_id, created_at FROM programme_courses"); err != nil {
		return nil, fmt.Errorf("list programme courses: %w", err)
	}
	return links, nil
}

// ListByProgramme returns links for a programme.
func (r *ProgrammeCourseRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeCourse, error) {
	var links []models.ProgrammeCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT programme_id, course_id, created_at FROM programme_courses WHERE programme_id = $1", programmeID); err != nil {
		return nil, fmt.Errorf("list programme courses by programme: %w", err)
	}
	return links, nil
}

// ListByCourse returns links for a course.
func (r *ProgrammeCourseRepository) ListByCourse(ctx context.Context, courseID string) ([]models.ProgrammeCourse, error) {
	var links []models.ProgrammeCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT programme_id, course_id, created_at FROM programme_courses WHERE course_id = $1", courseID); err != nil {
		return nil, fmt.Errorf("list programme courses by course: %w", err)
	}
	return links, nil
}

// Exists checks whether the curriculum pair is already present.
func (r *ProgrammeCourseRepository) Exists(ctx context.Context, programmeID, courseID string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM programme_courses WHERE programme_id = $1 AND course_id = $2 LIMIT 1", programmeID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check programme course: %w", err)
	}
	return true, nil
}

// Create inserts a curriculum row. A duplicate pair maps to Conflict via the
// composite primary key.
func (r *ProgrammeCourseRepository) Create(ctx context.Context, link *models.ProgrammeCourse) error {
	link.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO programme_courses (programme_id, course_id, created_at) VALUES (:programme_id, :course_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "this course is already assigned to the programme")
		}
		return fmt.Errorf("create programme course: %w", err)
	}
	return nil
}

// Delete removes the curriculum pair.
func (r *ProgrammeCourseRepository) Delete(ctx context.Context, programmeID, courseID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM programme_courses WHERE programme_id = $1 AND course_id = $2", programmeID, courseID); err != nil {
		return fmt.Errorf("delete programme course: %w", err)
	}
	return nil
}

// CountByProgramme counts links referencing a programme.
func (r *ProgrammeCourseRepository) CountByProgramme(ctx context.Context, programmeID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM programme_courses WHERE programme_id = $1", programmeID); err != nil {
		return 0, fmt.Errorf("count programme courses by programme: %w", err)
	}
	return count, nil
}

// CountByCourse counts links referencing a course.
func (r *ProgrammeCourseRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM programme_courses WHERE course_id = $1", courseID); err != nil {
		return 0, fmt.Errorf("count programme courses by course: %w", err)
	}
	return count, nil
}
