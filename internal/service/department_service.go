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

type departmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	ListByAdmin(ctx context.Context, adminID string) ([]models.Department, error)
	FindByID(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id string) error
}

type departmentProgrammeCounter interface {
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

// CreateDepartmentRequest holds payload for creating departments.
type CreateDepartmentRequest struct {
	DepartmentName    string  `json:"department_name" validate:"required"`
	Description       *string `json:"description,omitempty"`
	DepartmentAdminID string  `json:"department_admin_id" validate:"required"`
}

// UpdateDepartmentRequest holds payload for updating departments, including
// reassignment to another admin.
type UpdateDepartmentRequest struct {
	DepartmentName    string  `json:"department_name" validate:"required"`
	Description       *string `json:"description,omitempty"`
	DepartmentAdminID string  `json:"department_admin_id" validate:"required"`
}

// DepartmentService handles department use-cases. Department admins only see
// and mutate the departments they manage.
type DepartmentService struct {
	repo       departmentRepository
	programmes departmentProgrammeCounter
	admins     departmentAdminReader
	scope      *ScopeService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(repo departmentRepository, programmes departmentProgrammeCounter, admins departmentAdminReader, scope *ScopeService, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, programmes: programmes, admins: admins, scope: scope, validator: validate, logger: logger}
}

// List returns departments visible to the actor. Admins receive only the
// departments they manage, every other caller receives all of them.
func (s *DepartmentService) List(ctx context.Context, actor models.Actor) ([]models.Department, error) {
	var (
		departments []models.Department
		err         error
	)
	if actor.IsDepartmentAdmin() {
		departments, err = s.repo.ListByAdmin(ctx, actor.ProfileID)
	} else {
		departments, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

// Get returns a department by ID.
func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return department, nil
}

// Create registers a new department under the acting admin. The admin
// reference must exist before the row is committed.
func (s *DepartmentService) Create(ctx context.Context, actor models.Actor, req CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	if actor.IsDepartmentAdmin() && req.DepartmentAdminID != actor.ProfileID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "departments may only be created under your own admin profile")
	}
	if _, err := s.admins.FindByID(ctx, req.DepartmentAdminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "department admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department admin")
	}
	department := &models.Department{
		DepartmentName:    req.DepartmentName,
		Description:       req.Description,
		DepartmentAdminID: req.DepartmentAdminID,
	}
	if err := s.repo.Create(ctx, department); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}
	return department, nil
}

// Update modifies an existing department owned by the actor. The admin
// reference is re-validated on every update so the department can be
// reassigned to another existing admin.
func (s *DepartmentService) Update(ctx context.Context, actor models.Actor, id string, req UpdateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	if err := s.scope.EnsureDepartmentOwnership(actor, department); err != nil {
		return nil, err
	}
	if _, err := s.admins.FindByID(ctx, req.DepartmentAdminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "department admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department admin")
	}
	department.DepartmentName = req.DepartmentName
	department.Description = req.Description
	department.DepartmentAdminID = req.DepartmentAdminID
	if err := s.repo.Update(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update department")
	}
	return department, nil
}

// Delete removes a department owned by the actor. Blocked while programmes
// still belong to it.
func (s *DepartmentService) Delete(ctx context.Context, actor models.Actor, id string) error {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	if err := s.scope.EnsureDepartmentOwnership(actor, department); err != nil {
		return err
	}
	count, err := s.programmes.CountByDepartment(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count programmes")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "department has programmes and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department")
	}
	return nil
}
