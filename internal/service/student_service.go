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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentGradeCounter interface {
	CountByStudent(ctx context.Context, studentID string) (int, error)
}

// CreateStudentRequest holds payload for attaching a student profile to a user.
type CreateStudentRequest struct {
	UserID      string  `json:"user_id" validate:"required"`
	Year        int     `json:"year" validate:"required,min=1,max=10"`
	ProgrammeID *string `json:"programme_id,omitempty"`
}

// UpdateStudentRequest holds payload for updating a student profile.
type UpdateStudentRequest struct {
	Year         int      `json:"year" validate:"required,min=1,max=10"`
	AverageGrade *float64 `json:"average_grade,omitempty" validate:"omitempty,min=0,max=100"`
	ProgrammeID  *string  `json:"programme_id,omitempty"`
}

// StudentService handles student profile use-cases.
type StudentService struct {
	repo       studentRepository
	grades     studentGradeCounter
	users      userReader
	programmes programmeReader
	scope      *ScopeService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, grades studentGradeCounter, users userReader, programmes programmeReader, scope *ScopeService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, grades: grades, users: users, programmes: programmes, scope: scope, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create attaches a student profile to an existing user.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate user")
	}
	if err := s.checkProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}
	student := &models.Student{
		UserID:      req.UserID,
		Year:        req.Year,
		ProgrammeID: req.ProgrammeID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student profile.
func (s *StudentService) Update(ctx context.Context, actor models.Actor, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.scope.EnsureStudentOwnership(ctx, actor, student); err != nil {
		return nil, err
	}
	if err := s.checkProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}
	student.Year = req.Year
	student.AverageGrade = req.AverageGrade
	student.ProgrammeID = req.ProgrammeID
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student profile. Blocked while grades still reference it.
func (s *StudentService) Delete(ctx context.Context, actor models.Actor, id string) error {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.scope.EnsureStudentOwnership(ctx, actor, student); err != nil {
		return err
	}
	count, err := s.grades.CountByStudent(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count grades")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrDeleteBlocked, "student has grades and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

func (s *StudentService) checkProgramme(ctx context.Context, programmeID *string) error {
	if programmeID == nil {
		return nil
	}
	if _, err := s.programmes.FindByID(ctx, *programmeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrMissingReference, "programme not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate programme")
	}
	return nil
}
