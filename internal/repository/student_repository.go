package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// StudentRepository manages persistence for student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentDetailColumns = `s.id, s.user_id, s.year, s.average_grade, s.programme_id, s.created_at, s.updated_at,
    u.first_name, u.last_name, u.email, u.registration_number, p.programme_name`

const studentDetailJoins = `FROM students s
    JOIN users u ON u.id = s.user_id
    LEFT JOIN programmes p ON p.id = s.programme_id`

// List returns student details matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := studentDetailJoins
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.ProgrammeID != "" {
		conditions = append(conditions, fmt.Sprintf("s.programme_id = $%d", len(args)+1))
		args = append(args, filter.ProgrammeID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(u.first_name) LIKE $%d OR LOWER(u.last_name) LIKE $%d OR LOWER(u.registration_number) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"last_name":           "u.last_name",
		"year":                "s.year",
		"registration_number": "u.registration_number",
		"created_at":          "s.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "s.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", studentDetailColumns, base, column, order, size, offset)

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student profile by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	const query = "SELECT id, user_id, year, average_grade, programme_id, created_at, updated_at FROM students WHERE id = $1"
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindDetailByID fetches a student with user and programme context.
func (r *StudentRepository) FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	var detail models.StudentDetail
	query := fmt.Sprintf("SELECT %s %s WHERE s.id = $1", studentDetailColumns, studentDetailJoins)
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByUserID fetches the student profile owned by a user, if any.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	var student models.Student
	const query = "SELECT id, user_id, year, average_grade, programme_id, created_at, updated_at FROM students WHERE user_id = $1"
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListByProgramme returns student details enrolled in a programme.
func (r *StudentRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.StudentDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE s.programme_id = $1 ORDER BY u.last_name ASC", studentDetailColumns, studentDetailJoins)
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, programmeID); err != nil {
		return nil, fmt.Errorf("list students by programme: %w", err)
	}
	return students, nil
}

// CountByProgramme counts students enrolled in a programme.
func (r *StudentRepository) CountByProgramme(ctx context.Context, programmeID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM students WHERE programme_id = $1", programmeID); err != nil {
		return 0, fmt.Errorf("count students by programme: %w", err)
	}
	return count, nil
}

// Create inserts a new student profile.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, user_id, year, average_grade, programme_id, created_at, updated_at)
        VALUES (:id, :user_id, :year, :average_grade, :programme_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student profile.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET year = :year, average_grade = :average_grade, programme_id = :programme_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student profile. The owning user row is left intact.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
