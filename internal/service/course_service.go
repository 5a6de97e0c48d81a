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

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseScheduleCounter interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type courseGradeCounter interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type courseProfessorLinkCounter interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type courseProgrammeLinkCounter interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	CourseName    string  `json:"course_name" validate:"required"`
	Description   *string `json:"description,omitempty"`
	CreditWeight  int     `json:"credit_weight" validate:"required,min=1"`
	CourseContent *string `json:"course_content,omitempty"`
}

// UpdateCourseRequest holds payload for updating courses.
type UpdateCourseRequest struct {
	CourseName    string  `json:"course_name" validate:"required"`
	Description   *string `json:"description,omitempty"`
	CreditWeight  int     `json:"credit_weight" validate:"required,min=1"`
	CourseContent *string `json:"course_content,omitempty"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo           courseRepository
	schedules      courseScheduleCounter
	grades         courseGradeCounter
	professorRefs  courseProfessorLinkCounter
	curriculumRefs courseProgrammeLinkCounter
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, schedules courseScheduleCounter, grades courseGradeCounter, professorRefs courseProfessorLinkCounter, curriculumRefs courseProgrammeLinkCounter, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:           repo,
		schedules:      schedules,
		grades:         grades,
		professorRefs:  professorRefs,
		curriculumRefs: curriculumRefs,
		validator:      validate,
		logger:         logger,
	}
}

// List returns courses and pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return courses, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{
		CourseName:    req.CourseName,
		Description:   req.Description,
		CreditWeight:  req.CreditWeight,
		CourseContent: req.CourseContent,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	course.CourseName = req.CourseName
	course.Description = req.Description
	course.CreditWeight = req.CreditWeight
	course.CourseContent = req.CourseContent
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course. Dependants are checked in schedule, grade,
// professor assignment, programme link order and the first hit blocks the
// delete.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	schedules, err := s.schedules.CountByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count schedules")
	}
	if schedules > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "course has schedules and cannot be deleted")
	}

	grades, err := s.grades.CountByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count grades")
	}
	if grades > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "course has grades and cannot be deleted")
	}

	assignments, err := s.professorRefs.CountByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count professor assignments")
	}
	if assignments > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "course is assigned to professors and cannot be deleted")
	}

	links, err := s.curriculumRefs.CountByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count programme links")
	}
	if links > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "course belongs to programme curricula and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}
