package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// DepartmentAdminRepository manages persistence for department admin profiles.
type DepartmentAdminRepository struct {
	db *sqlx.DB
}

// NewDepartmentAdminRepository constructs a DepartmentAdminRepository.
func NewDepartmentAdminRepository(db *sqlx.DB) *DepartmentAdminRepository {
	return &DepartmentAdminRepository{db: db}
}

const adminDetailColumns = `a.id, a.user_id, a.role_title, a.created_at, a.updated_at,
    u.first_name, u.last_name, u.email, u.registration_number`

// List returns all department admins with their user identity.
func (r *DepartmentAdminRepository) List(ctx context.Context) ([]models.DepartmentAdminDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM department_admins a JOIN users u ON u.id = a.user_id ORDER BY u.last_name ASC", adminDetailColumns)
	var admins []models.DepartmentAdminDetail
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list department admins: %w", err)
	}
	return admins, nil
}

// FindByID fetches a department admin profile by ID.
func (r *DepartmentAdminRepository) FindByID(ctx context.Context, id string) (*models.DepartmentAdmin, error) {
	var admin models.DepartmentAdmin
	const query = "SELECT id, user_id, role_title, created_at, updated_at FROM department_admins WHERE id = $1"
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindDetailByID fetches a department admin with its user identity.
func (r *DepartmentAdminRepository) FindDetailByID(ctx context.Context, id string) (*models.DepartmentAdminDetail, error) {
	var detail models.DepartmentAdminDetail
	query := fmt.Sprintf("SELECT %s FROM department_admins a JOIN users u ON u.id = a.user_id WHERE a.id = $1", adminDetailColumns)
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByUserID fetches the admin profile owned by a user, if any.
func (r *DepartmentAdminRepository) FindByUserID(ctx context.Context, userID string) (*models.DepartmentAdmin, error) {
	var admin models.DepartmentAdmin
	const query = "SELECT id, user_id, role_title, created_at, updated_at FROM department_admins WHERE user_id = $1"
	if err := r.db.GetContext(ctx, &admin, query, userID); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts a new department admin profile.
func (r *DepartmentAdminRepository) Create(ctx context.Context, admin *models.DepartmentAdmin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	const query = `INSERT INTO department_admins (id, user_id, role_title, created_at, updated_at)
        VALUES (:id, :user_id, :role_title, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create department admin: %w", err)
	}
	return nil
}

// Update modifies an existing department admin profile.
func (r *DepartmentAdminRepository) Update(ctx context.Context, admin *models.DepartmentAdmin) error {
	admin.UpdatedAt = time.Now().UTC()
	const query = `UPDATE department_admins SET role_title = :role_title, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("update department admin: %w", err)
	}
	return nil
}

// Delete removes a department admin profile. The owning user row is left intact.
func (r *DepartmentAdminRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM department_admins WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete department admin: %w", err)
	}
	return nil
}
