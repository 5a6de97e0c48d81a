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

// ProfessorRepository manages persistence for professor profiles.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

const professorDetailColumns = `pr.id, pr.user_id, pr.specialization, pr.department_id, pr.created_at, pr.updated_at,
    u.first_name, u.last_name, u.email, u.registration_number, d.department_name`

const professorDetailJoins = `FROM professors pr
    JOIN users u ON u.id = pr.user_id
    LEFT JOIN departments d ON d.id = pr.department_id`

// List returns professor details matching the provided filters.
func (r *ProfessorRepository) List(ctx context.Context, filter models.ProfessorFilter) ([]models.ProfessorDetail, int, error) {
	base := professorDetailJoins
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("pr.department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(u.first_name) LIKE $%d OR LOWER(u.last_name) LIKE $%d OR LOWER(pr.specialization) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"last_name":      "u.last_name",
		"specialization": "pr.specialization",
		"created_at":     "pr.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "pr.created_at"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", professorDetailColumns, base, column, order, size, offset)

	var professors []models.ProfessorDetail
	if err := r.db.SelectContext(ctx, &professors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list professors: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count professors: %w", err)
	}
	return professors, total, nil
}

// FindByID fetches a professor profile by ID.
func (r *ProfessorRepository) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	var professor models.Professor
	const query = "SELECT id, user_id, specialization, department_id, created_at, updated_at FROM professors WHERE id = $1"
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// FindDetailByID fetches a professor with user and department context.
func (r *ProfessorRepository) FindDetailByID(ctx context.Context, id string) (*models.ProfessorDetail, error) {
	var detail models.ProfessorDetail
	query := fmt.Sprintf("SELECT %s %s WHERE pr.id = $1", professorDetailColumns, professorDetailJoins)
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByUserID fetches the professor profile owned by a user, if any.
func (r *ProfessorRepository) FindByUserID(ctx context.Context, userID string) (*models.Professor, error) {
	var professor models.Professor
	const query = "SELECT id, user_id, specialization, department_id, created_at, updated_at FROM professors WHERE user_id = $1"
	if err := r.db.GetContext(ctx, &professor, query, userID); err != nil {
		return nil, err
	}
	return &professor, nil
}

// ListByDepartment returns professor details attached to a department.
func (r *ProfessorRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.ProfessorDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE pr.department_id = $1 ORDER BY u.last_name ASC", professorDetailColumns, professorDetailJoins)
	var professors []models.ProfessorDetail
	if err := r.db.SelectContext(ctx, &professors, query, departmentID); err != nil {
		return nil, fmt.Errorf("list professors by department: %w", err)
	}
	return professors, nil
}

// CountByDepartment counts professors attached to a department.
func (r *ProfessorRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM professors WHERE department_id = $1", departmentID); err != nil {
		return 0, fmt.Errorf("count professors by department: %w", err)
	}
	return count, nil
}

// Create inserts a new professor profile.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	if professor.ID == "" {
		professor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	professor.CreatedAt = now
	professor.UpdatedAt = now
	const query = `INSERT INTO professors (id, user_id, specialization, department_id, created_at, updated_at)
        VALUES (:id, :user_id, :specialization, :department_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// Update modifies an existing professor profile.
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	professor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE professors SET specialization = :specialization, department_id = :department_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("update professor: %w", err)
	}
	return nil
}

// Delete removes a professor profile. The owning user row is left intact.
func (r *ProfessorRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM professors WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete professor: %w", err)
	}
	return nil
}
