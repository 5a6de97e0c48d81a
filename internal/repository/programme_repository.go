package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// ProgrammeRepository manages persistence for programmes.
type ProgrammeRepository struct {
	db *sqlx.DB
}

// NewProgrammeRepository constructs a ProgrammeRepository.
func NewProgrammeRepository(db *sqlx.DB) *ProgrammeRepository {
	return &ProgrammeRepository{db: db}
}

const programmeColumns = "id, programme_name, session_start, session_end, department_id, created_at, updated_at"

// List returns all programmes.
func (r *ProgrammeRepository) List(ctx context.Context) ([]models.Programme, error) {
	query := fmt.Sprintf("SELECT %s FROM programmes ORDER BY programme_name ASC", programmeColumns)
	var programmes []models.Programme
	if err := r.db.SelectContext(ctx, &programmes, query); err != nil {
		return nil, fmt.Errorf("list programmes: %w", err)
	}
	return programmes, nil
}

// ListByDepartment returns programmes owned by a department.
func (r *ProgrammeRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.Programme, error) {
	query := fmt.Sprintf("SELECT %s FROM programmes WHERE department_id = $1 ORDER BY programme_name ASC", programmeColumns)
	var programmes []models.Programme
	if err := r.db.SelectContext(ctx, &programmes, query, departmentID); err != nil {
		return nil, fmt.Errorf("list programmes by department: %w", err)
	}
	return programmes, nil
}

// FindByID fetches a programme by ID.
func (r *ProgrammeRepository) FindByID(ctx context.Context, id string) (*models.Programme, error) {
	var programme models.Programme
	query := fmt.Sprintf("SELECT %s FROM programmes WHERE id = $1", programmeColumns)
	if err := r.db.GetContext(ctx, &programme, query, id); err != nil {
		return nil, err
	}
	return &programme, nil
}

// CountByDepartment counts programmes owned by a department.
func (r *ProgrammeRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM programmes WHERE department_id = $1", departmentID); err != nil {
		return 0, fmt.Errorf("count programmes by department: %w", err)
	}
	return count, nil
}

// Create inserts a new programme.
func (r *ProgrammeRepository) Create(ctx context.Context, programme *models.Programme) error {
	if programme.ID == "" {
		programme.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	programme.CreatedAt = now
	programme.UpdatedAt = now
	const query = `INSERT INTO programmes (id, programme_name, session_start, session_end, department_id, created_at, updated_at)
        VALUES (:id, :programme_name, :session_start, :session_end, :department_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, programme); err != nil {
		return fmt.Errorf("create programme: %w", err)
	}
	return nil
}

// Update modifies an existing programme.
func (r *ProgrammeRepository) Update(ctx context.Context, programme *models.Programme) error {
	programme.UpdatedAt = time.Now().UTC()
	const query = `UPDATE programmes SET programme_name = :programme_name, session_start = :session_start, session_end = :session_end, department_id = :department_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, programme); err != nil {
		return fmt.Errorf("update programme: %w", err)
	}
	return nil
}

// Delete removes a programme row.
func (r *ProgrammeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM programmes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete programme: %w", err)
	}
	return nil
}
