package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// DepartmentRepository manages persistence for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

const departmentColumns = "id, department_name, description, department_admin_id, created_at, updated_at"

// List returns all departments.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	query := fmt.Sprintf("SELECT %s FROM departments ORDER BY department_name ASC", departmentColumns)
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// ListByAdmin returns departments managed by the given admin profile.
func (r *DepartmentRepository) ListByAdmin(ctx context.Context, adminID string) ([]models.Department, error) {
	query := fmt.Sprintf("SELECT %s FROM departments WHERE department_admin_id = $1 ORDER BY department_name ASC", departmentColumns)
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query, adminID); err != nil {
		return nil, fmt.Errorf("list departments by admin: %w", err)
	}
	return departments, nil
}

// ListIDsByAdmin returns the IDs of departments managed by the given admin profile.
func (r *DepartmentRepository) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM departments WHERE department_admin_id = $1", adminID); err != nil {
		return nil, fmt.Errorf("list department ids by admin: %w", err)
	}
	return ids, nil
}

// FindByID fetches a department by ID.
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*models.Department, error) {
	var department models.Department
	query := fmt.Sprintf("SELECT %s FROM departments WHERE id = $1", departmentColumns)
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// Create inserts a new department.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	department.CreatedAt = now
	department.UpdatedAt = now
	const query = `INSERT INTO departments (id, department_name, description, department_admin_id, created_at, updated_at)
        VALUES (:id, :department_name, :description, :department_admin_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// Update modifies an existing department, including admin reassignment.
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	department.UpdatedAt = time.Now().UTC()
	const query = `UPDATE departments SET department_name = :department_name, description = :description, department_admin_id = :department_admin_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// Delete removes a department row.
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM departments WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
