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

// ProfessorCourseRepository manages professor-course assignment rows.
type ProfessorCourseRepository struct {
	db *sqlx.DB
}

// NewProfessorCourseRepository constructs a ProfessorCourseRepository.
func NewProfessorCourseRepository(db *sqlx.DB) *ProfessorCourseRepository {
	return &ProfessorCourseRepository{db: db}
}

// List returns all professor-course assignments.
func (r *ProfessorCourseRepository) List(ctx context.Context) ([]models.ProfessorCourse, error) {
	var links []models.ProfessorCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT professor_id, course_id, created_at FROM professor_courses"); err != nil {
		return nil, fmt.Errorf("list professor courses: %w", err)
	}
	return links, nil
}

// ListByProfessor returns assignments for a professor.
func (r *ProfessorCourseRepository) ListByProfessor(ctx context.Context, professorID string) ([]models.ProfessorCourse, error) {
	var links []models.ProfessorCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT professor_id, course_id, created_at FROM professor_courses WHERE professor_id = $1", professorID); err != nil {
		return nil, fmt.Errorf("list professor courses by professor: %w", err)
	}
	return links, nil
}

// ListByCourse returns assignments for a course.
func (r *ProfessorCourseRepository) ListByCourse(ctx context.Context, courseID string) ([]models.ProfessorCourse, error) {
	var links []models.ProfessorCourse
	if err := r.db.SelectContext(ctx, &links, "SELECT professor_id, course_id, created_at FROM professor_courses WHERE course_id = $1", courseID); err != nil {
		return nil, fmt.Errorf("list professor courses by course: %w", err)
	}
	return links, nil
}

// Exists checks whether the assignment pair is already present.
func (r *ProfessorCourseRepository) Exists(ctx context.Context, professorID, courseID string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM professor_courses WHERE professor_id = $1 AND course_id = $2 LIMIT 1", professorID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check professor course: %w", err)
	}
	return true, nil
}

// Create inserts an assignment row. A duplicate pair maps to Conflict via the
// composite primary key.
func (r *ProfessorCourseRepository) Create(ctx context.Context, link *models.ProfessorCourse) error {
	link.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO professor_courses (professor_id, course_id, created_at) VALUES (:professor_id, :course_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "this course is already assigned to the professor")
		}
		return fmt.Errorf("create professor course: %w", err)
	}
	return nil
}

// Delete removes the assignment pair.
func (r *ProfessorCourseRepository) Delete(ctx context.Context, professorID, courseID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM professor_courses WHERE professor_id = $1 AND course_id = $2", professorID, courseID); err != nil {
		return fmt.Errorf("delete professor course: %w", err)
	}
	return nil
}

// CountByProfessor counts assignments referencing a professor.
func (r *ProfessorCourseRepository) CountByProfessor(ctx context.Context, professorID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM professor_courses WHERE professor_id = $1", professorID); err != nil {
		return 0, fmt.Errorf("count professor courses by professor: %w", err)
	}
	return count, nil
}

// CountByCourse counts assignments referencing a course.
func (r *ProfessorCourseRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM professor_courses WHERE course_id = $1", courseID); err != nil {
		return 0, fmt.Errorf("count professor courses by course: %w", err)
	}
	return count, nil
}
