package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type departmentAdminRepository interface {
	List(ctx context.Context) ([]models.DepartmentAdminDetail, error)
	FindByID(ctx context.Context, id string) (*models.DepartmentAdmin, error)
	FindDetailByID(ctx context.Context, id string) (*models.DepartmentAdminDetail, error)
	Create(ctx context.Context, admin *models.DepartmentAdmin) error
	Update(ctx context.Context, admin *models.DepartmentAdmin) error
	Delete(ctx context.Context, id string) error
}

type adminDepartmentLister interface {
	ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error)
}

// CreateDepartmentAdminRequest attaches an admin profile to a user.
type CreateDepartmentAdminRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	RoleTitle *string `json:"role_title,omitempty"`
}

// UpdateDepartmentAdminRequest updates an admin profile.
type UpdateDepartmentAdminRequest struct {
	RoleTitle *string `json:"role_title,omitempty"`
}

// DepartmentAdminService handles department admin profile use-cases.
type DepartmentAdminService struct {
	repo        departmentAdminRepository
	departments adminDepartmentLister
	users       userReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewDepartmentAdminService constructs the department admin service.
func NewDepartmentAdminService(repo departmentAdminRepository, departments adminDepartmentLister, users userReader, validate *validator.Validate, logger *zap.Logger) *DepartmentAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentAdminService{repo: repo, departments: departments, users: users, validator: validate, logger: logger}
}

// List returns all department admins with identity details.
func (s *DepartmentAdminService) List(ctx context.Context) ([]models.DepartmentAdminDetail, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department admins")
	}
	return admins, nil
}

// Get returns detailed admin information.
func (s *DepartmentAdminService) Get(ctx context.Context, id string) (*models.DepartmentAdminDetail, error) {
	admin, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department admin")
	}
	return admin, nil
}

// Create attaches an admin profile to an existing user.
func (s *DepartmentAdminService) Create(ctx context.Context, req CreateDepartmentAdminRequest) (*models.DepartmentAdmin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department admin payload")
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate user")
	}
	admin := &models.DepartmentAdmin{
		UserID:    req.UserID,
		RoleTitle: req.RoleTitle,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department admin")
	}
	return admin, nil
}

// Update modifies an existing admin profile.
func (s *DepartmentAdminService) Update(ctx context.Context, id string, req UpdateDepartmentAdminRequest) (*models.DepartmentAdmin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department admin payload")
	}
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department admin")
	}
	admin.RoleTitle = req.RoleTitle
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update department admin")
	}
	return admin, nil
}

// Delete removes an admin profile. Blocked while departments are still
// managed by it.
func (s *DepartmentAdminService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "department admin not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department admin")
	}
	ids, err := s.departments.ListIDsByAdmin(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list managed departments")
	}
	if len(ids) > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "admin still manages departments and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department admin")
	}
	return nil
}
