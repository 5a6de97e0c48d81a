package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type programmeRepository interface {
	List(ctx context.Context) ([]models.Programme, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]models.Programme, error)
	FindByID(ctx context.Context, id string) (*models.Programme, error)
	Create(ctx context.Context, programme *models.Programme) error
	Update(ctx context.Context, programme *models.Programme) error
	Delete(ctx context.Context, id string) error
}

type programmeStudentCounter interface {
	CountByProgramme(ctx context.Context, programmeID string) (int, error)
}

type programmeCourseLinkCounter interface {
	CountByProgramme(ctx context.Context, programmeID string) (int, error)
}

// CreateProgrammeRequest holds payload for creating programmes.
type CreateProgrammeRequest struct {
	ProgrammeName string    `json:"programme_name" validate:"required"`
	SessionStart  time.Time `json:"session_start" validate:"required"`
	SessionEnd    time.Time `json:"session_end" validate:"required"`
	DepartmentID  string    `json:"department_id" validate:"required"`
}

// UpdateProgrammeRequest holds payload for updating programmes.
type UpdateProgrammeRequest struct {
	ProgrammeName string    `json:"programme_name" validate:"required"`
	SessionStart  time.Time `json:"session_start" validate:"required"`
	SessionEnd    time.Time `json:"session_end" validate:"required"`
}

// ProgrammeService handles programme use-cases.
type ProgrammeService struct {
	repo       programmeRepository
	students   programmeStudentCounter
	courseRefs programmeCourseLinkCounter
	deps       departmentReader
	scope      *ScopeService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewProgrammeService constructs the programme service.
func NewProgrammeService(repo programmeRepository, students programmeStudentCounter, courseRefs programmeCourseLinkCounter, deps departmentReader, scope *ScopeService, validate *validator.Validate, logger *zap.Logger) *ProgrammeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgrammeService{repo: repo, students: students, courseRefs: courseRefs, deps: deps, scope: scope, validator: validate, logger: logger}
}

// List returns programmes, optionally filtered by department.
func (s *ProgrammeService) List(ctx context.Context, departmentID string) ([]models.Programme, error) {
	var (
		programmes []models.Programme
		err        error
	)
	if departmentID != "" {
		programmes, err = s.repo.ListByDepartment(ctx, departmentID)
	} else {
		programmes, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programmes")
	}
	return programmes, nil
}

// Get returns a programme by ID.
func (s *ProgrammeService) Get(ctx context.Context, id string) (*models.Programme, error) {
	programme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load programme")
	}
	return programme, nil
}

// Create registers a programme under a department owned by the actor. The
// session window must end after it starts.
func (s *ProgrammeService) Create(ctx context.Context, actor models.Actor, req CreateProgrammeRequest) (*models.Programme, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid programme payload")
	}
	if !req.SessionEnd.After(req.SessionStart) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTemporalRange, "session end must be after session start")
	}
	if _, err := s.deps.FindByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department")
	}
	if err := s.scope.EnsureDepartmentOwnershipByID(ctx, actor, req.DepartmentID); err != nil {
		return nil, err
	}
	programme := &models.Programme{
		ProgrammeName: req.ProgrammeName,
		SessionStart:  req.SessionStart,
		SessionEnd:    req.SessionEnd,
		DepartmentID:  req.DepartmentID,
	}
	if err := s.repo.Create(ctx, programme); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create programme")
	}
	return programme, nil
}

// Update modifies an existing programme owned by the actor.
func (s *ProgrammeService) Update(ctx context.Context, actor models.Actor, id string, req UpdateProgrammeRequest) (*models.Programme, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid programme payload")
	}
	if !req.SessionEnd.After(req.SessionStart) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTemporalRange, "session end must be after session start")
	}
	programme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load programme")
	}
	if err := s.scope.EnsureProgrammeOwnership(ctx, actor, programme); err != nil {
		return nil, err
	}
	programme.ProgrammeName = req.ProgrammeName
	programme.SessionStart = req.SessionStart
	programme.SessionEnd = req.SessionEnd
	if err := s.repo.Update(ctx, programme); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update programme")
	}
	return programme, nil
}

// Delete removes a programme owned by the actor. Blocked while students are
// enrolled, then while curriculum links remain, checked in that order.
func (s *ProgrammeService) Delete(ctx context.Context, actor models.Actor, id string) error {
	programme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "programme not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load programme")
	}
	if err := s.scope.EnsureProgrammeOwnership(ctx, actor, programme); err != nil {
		return err
	}
	students, err := s.students.CountByProgramme(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if students > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "programme has enrolled students and cannot be deleted")
	}
	links, err := s.courseRefs.CountByProgramme(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count programme courses")
	}
	if links > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "programme has course links and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete programme")
	}
	return nil
}
