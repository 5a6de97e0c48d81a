package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

// GradeRepository manages persistence for grade rows keyed by (student, course).
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeDetailColumns = `g.student_id, g.course_id, g.score, g.created_at, g.updated_at,
    u.first_name || ' ' || u.last_name AS student_name, c.course_name`

const gradeDetailJoins = `FROM grades g
    JOIN students s ON s.id = g.student_id
    JOIN users u ON u.id = s.user_id
    JOIN courses c ON c.id = g.course_id`

// List returns all grades with student and course names.
func (r *GradeRepository) List(ctx context.Context) ([]models.GradeDetail, error) {
	query := fmt.Sprintf("SELECT %s %s ORDER BY c.course_name ASC, student_name ASC", gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// ListByStudent returns grades for a student.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.GradeDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE g.student_id = $1 ORDER BY c.course_name ASC", gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades by student: %w", err)
	}
	return grades, nil
}

// ListByCourse returns grades for a course.
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID string) ([]models.GradeDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE g.course_id = $1 ORDER BY student_name ASC", gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, courseID); err != nil {
		return nil, fmt.Errorf("list grades by course: %w", err)
	}
	return grades, nil
}

// Find fetches the grade row for a (student, course) pair.
func (r *GradeRepository) Find(ctx context.Context, studentID, courseID string) (*models.Grade, error) {
	var grade models.Grade
	const query = "SELECT student_id, course_id, score, created_at, updated_at FROM grades WHERE student_id = $1 AND course_id = $2"
	if err := r.db.GetContext(ctx, &grade, query, studentID, courseID); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a new grade row. A duplicate (student, course) pair maps to
// Conflict via the composite primary key.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	const query = `INSERT INTO grades (student_id, course_id, score, created_at, updated_at)
        VALUES (:student_id, :course_id, :score, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "a grade already exists for this student and course")
		}
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}

// UpdateScore overwrites the score for an existing (student, course) pair.
func (r *GradeRepository) UpdateScore(ctx context.Context, studentID, courseID string, score *float64) error {
	const query = "UPDATE grades SET score = $3, updated_at = $4 WHERE student_id = $1 AND course_id = $2"
	if _, err := r.db.ExecContext(ctx, query, studentID, courseID, score, time.Now().UTC()); err != nil {
		return fmt.Errorf("update grade score: %w", err)
	}
	return nil
}

// Delete removes the grade row for a (student, course) pair.
func (r *GradeRepository) Delete(ctx context.Context, studentID, courseID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM grades WHERE student_id = $1 AND course_id = $2", studentID, courseID); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}

// CountByStudent counts grade rows referencing a student.
func (r *GradeRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM grades WHERE student_id = $1", studentID); err != nil {
		return 0, fmt.Errorf("count grades by student: %w", err)
	}
	return count, nil
}

// CountByCourse counts grade rows referencing a course.
func (r *GradeRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM grades WHERE course_id = $1", courseID); err != nil {
		return 0, fmt.Errorf("count grades by course: %w", err)
	}
	return count, nil
}

// TranscriptRows returns the grade lines used by transcript exports.
func (r *GradeRepository) TranscriptRows(ctx context.Context, studentID string) ([]models.TranscriptRow, error) {
	const query = `SELECT c.course_name, c.credit_weight, g.score
        FROM grades g
        JOIN courses c ON c.id = g.course_id
        WHERE g.student_id = $1
        ORDER BY c.course_name ASC`
	var rows []models.TranscriptRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("transcript rows: %w", err)
	}
	return rows, nil
}
