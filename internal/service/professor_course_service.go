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

type professorCourseRepository interface {
	List(ctx context.Context) ([]models.ProfessorCourse, error)
	ListByProfessor(ctx context.Context, professorID string) ([]models.ProfessorCourse, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.ProfessorCourse, error)
	Exists(ctx context.Context, professorID, courseID string) (bool, error)
	Create(ctx context.Context, link *models.ProfessorCourse) error
	Delete(ctx context.Context, professorID, courseID string) error
}

// ProfessorCourseRequest identifies a professor-course assignment pair.
type ProfessorCourseRequest struct {
	ProfessorID string `json:"professor_id" validate:"required"`
	CourseID    string `json:"course_id" validate:"required"`
}

// ProfessorCourseService handles course assignment use-cases.
type ProfessorCourseService struct {
	repo       professorCourseRepository
	professors professorReader
	courses    courseReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewProfessorCourseService constructs the assignment service.
func NewProfessorCourseService(repo professorCourseRepository, professors professorReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *ProfessorCourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorCourseService{repo: repo, professors: professors, courses: courses, validator: validate, logger: logger}
}

// List returns assignments, optionally filtered by professor or course.
func (s *ProfessorCourseService) List(ctx context.Context, professorID, courseID string) ([]models.ProfessorCourse, error) {
	var (
		links []models.ProfessorCourse
		err   error
	)
	switch {
	case professorID != "":
		links, err = s.repo.ListByProfessor(ctx, professorID)
	case courseID != "":
		links, err = s.repo.ListByCourse(ctx, courseID)
	default:
		links, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professor courses")
	}
	return links, nil
}

// Create assigns a course to a professor. Both sides must exist and an
// existing pair is a conflict.
func (s *ProfessorCourseService) Create(ctx context.Context, req ProfessorCourseRequest) (*models.ProfessorCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if _, err := s.professors.FindByID(ctx, req.ProfessorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate professor")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
	}
	exists, err := s.repo.Exists(ctx, req.ProfessorID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "this course is already assigned to the professor")
	}
	link := &models.ProfessorCourse{ProfessorID: req.ProfessorID, CourseID: req.CourseID}
	if err := s.repo.Create(ctx, link); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return link, nil
}

// Delete removes a professor-course assignment.
func (s *ProfessorCourseService) Delete(ctx context.Context, professorID, courseID string) error {
	exists, err := s.repo.Exists(ctx, professorID, courseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	if err := s.repo.Delete(ctx, professorID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
