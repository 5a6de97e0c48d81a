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

type professorRepository interface {
	List(ctx context.Context, filter models.ProfessorFilter) ([]models.ProfessorDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Professor, error)
	FindDetailByID(ctx context.Context, id string) (*models.ProfessorDetail, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id string) error
}

type professorAssignmentCounter interface {
	CountByProfessor(ctx context.Context, professorID string) (int, error)
}

// CreateProfessorRequest holds payload for attaching a professor profile to a user.
type CreateProfessorRequest struct {
	UserID         string  `json:"user_id" validate:"required"`
	Specialization *string `json:"specialization,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
}

// UpdateProfessorRequest holds payload for updating a professor profile.
type UpdateProfessorRequest struct {
	Specialization *string `json:"specialization,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
}

// ProfessorService handles professor profile use-cases.
type ProfessorService struct {
	repo        professorRepository
	assignments professorAssignmentCounter
	users       userReader
	deps        departmentReader
	scope       *ScopeService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewProfessorService constructs the professor service.
func NewProfessorService(repo professorRepository, assignments professorAssignmentCounter, users userReader, deps departmentReader, scope *ScopeService, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorService{repo: repo, assignments: assignments, users: users, deps: deps, scope: scope, validator: validate, logger: logger}
}

// List returns professors and pagination metadata.
func (s *ProfessorService) List(ctx context.Context, filter models.ProfessorFilter) ([]models.ProfessorDetail, *models.Pagination, error) {
	professors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professors")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return professors, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns detailed professor information.
func (s *ProfessorService) Get(ctx context.Context, id string) (*models.ProfessorDetail, error) {
	professor, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}
	return professor, nil
}

// Create attaches a professor profile to an existing user.
func (s *ProfessorService) Create(ctx context.Context, req CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate user")
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	professor := &models.Professor{
		UserID:         req.UserID,
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
	}
	return professor, nil
}

// Update modifies an existing professor profile.
func (s *ProfessorService) Update(ctx context.Context, actor models.Actor, id string, req UpdateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}
	if err := s.scope.EnsureProfessorOwnership(ctx, actor, professor); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	professor.Specialization = req.Specialization
	professor.DepartmentID = req.DepartmentID
	if err := s.repo.Update(ctx, professor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update professor")
	}
	return professor, nil
}

// Delete removes a professor profile. Blocked while course assignments still
// reference it.
func (s *ProfessorService) Delete(ctx context.Context, actor models.Actor, id string) error {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}
	if err := s.scope.EnsureProfessorOwnership(ctx, actor, professor); err != nil {
		return err
	}
	count, err := s.assignments.CountByProfessor(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count course assignments")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "professor has course assignments and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete professor")
	}
	return nil
}

func (s *ProfessorService) checkDepartment(ctx context.Context, departmentID *string) error {
	if departmentID == nil {
		return nil
	}
	if _, err := s.deps.FindByID(ctx, *departmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrMissingReference, "department not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department")
	}
	return nil
}
