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

type programmeCourseRepository interface {
	List(ctx context.Context) ([]models.ProgrammeCourse, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeCourse, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.ProgrammeCourse, error)
	Exists(ctx context.Context, programmeID, courseID string) (bool, error)
	Create(ctx context.Context, link *models.ProgrammeCourse) error
	Delete(ctx context.Context, programmeID, courseID string) error
}

// ProgrammeCourseRequest identifies a programme-course curriculum pair.
type ProgrammeCourseRequest struct {
	ProgrammeID string `json:"programme_id" validate:"required"`
	CourseID    string `json:"course_id" validate:"required"`
}

// ProgrammeCourseService handles curriculum link use-cases.
type ProgrammeCourseService struct {
	repo       programmeCourseRepository
	programmes programmeReader
	courses    courseReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewProgrammeCourseService constructs the curriculum service.
func NewProgrammeCourseService(repo programmeCourseRepository, programmes programmeReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *ProgrammeCourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgrammeCourseService{repo: repo, programmes: programmes, courses: courses, validator: validate, logger: logger}
}

// List returns curriculum links, optionally filtered by programme or course.
func (s *ProgrammeCourseService) List(ctx context.Context, programmeID, courseID string) ([]models.ProgrammeCourse, error) {
	var (
		links []models.ProgrammeCourse
		err   error
	)
	switch {
	case programmeID != "":
		links, err = s.repo.ListByProgramme(ctx, programmeID)
	case courseID != "":
		links, err = s.repo.ListByCourse(ctx, courseID)
	default:
		links, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programme courses")
	}
	return links, nil
}

// Create attaches a course to a programme curriculum. Both sides must exist
// and an existing pair is a conflict.
func (s *ProgrammeCourseService) Create(ctx context.Context, req ProgrammeCourseRequest) (*models.ProgrammeCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curriculum payload")
	}
	if _, err := s.programmes.FindByID(ctx, req.ProgrammeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "programme not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate programme")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
	}
	exists, err := s.repo.Exists(ctx, req.ProgrammeID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check curriculum link")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "this course is already assigned to the programme")
	}
	link := &models.ProgrammeCourse{ProgrammeID: req.ProgrammeID, CourseID: req.CourseID}
	if err := s.repo.Create(ctx, link); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create curriculum link")
	}
	return link, nil
}

// Delete removes a programme-course curriculum link.
func (s *ProgrammeCourseService) Delete(ctx context.Context, programmeID, courseID string) error {
	exists, err := s.repo.Exists(ctx, programmeID, courseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check curriculum link")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "curriculum link not found")
	}
	if err := s.repo.Delete(ctx, programmeID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete curriculum link")
	}
	return nil
}
