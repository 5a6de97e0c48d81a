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

type gradeRepository interface {
	List(ctx context.Context) ([]models.GradeDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.GradeDetail, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.GradeDetail, error)
	Find(ctx context.Context, studentID, courseID string) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	UpdateScore(ctx context.Context, studentID, courseID string, score *float64) error
	Delete(ctx context.Context, studentID, courseID string) error
}

// GradeRequest holds the payload for recording or overwriting a grade.
type GradeRequest struct {
	StudentID string   `json:"student_id" validate:"required"`
	CourseID  string   `json:"course_id" validate:"required"`
	Score     *float64 `json:"score,omitempty"`
}

// GradeService handles grade use-cases for the (student, course) aggregate.
type GradeService struct {
	repo      gradeRepository
	students  studentReader
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo gradeRepository, students studentReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

// List returns all grades with display names.
func (s *GradeService) List(ctx context.Context) ([]models.GradeDetail, error) {
	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// ListByStudent returns grades for a student. Students may only read their
// own grades.
func (s *GradeService) ListByStudent(ctx context.Context, actor models.Actor, studentID string) ([]models.GradeDetail, error) {
	if actor.UserType == models.UserTypeStudent && actor.ProfileID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students may only read their own grades")
	}
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// ListByCourse returns grades for a course.
func (s *GradeService) ListByCourse(ctx context.Context, courseID string) ([]models.GradeDetail, error) {
	grades, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// Get returns the grade for a (student, course) pair.
func (s *GradeService) Get(ctx context.Context, studentID, courseID string) (*models.Grade, error) {
	grade, err := s.repo.Find(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	return grade, nil
}

// Create records a new grade. An existing (student, course) pair is a
// conflict, the pair must reference live entities and the score must fall
// within the grading scale.
func (s *GradeService) Create(ctx context.Context, req GradeRequest) (*models.Grade, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	grade := &models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Score:     req.Score,
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
	}
	return grade, nil
}

// Upsert overwrites the score for an existing pair or records the grade when
// none exists yet.
func (s *GradeService) Upsert(ctx context.Context, req GradeRequest) (*models.Grade, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	existing, err := s.repo.Find(ctx, req.StudentID, req.CourseID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
		}
		grade := &models.Grade{
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			Score:     req.Score,
		}
		if err := s.repo.Create(ctx, grade); err != nil {
			var appErr *appErrors.Error
			if errors.As(err, &appErr) {
				return nil, appErr
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
		}
		return grade, nil
	}
	if err := s.repo.UpdateScore(ctx, req.StudentID, req.CourseID, req.Score); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
	}
	existing.Score = req.Score
	return existing, nil
}

// Delete removes the grade for a (student, course) pair.
func (s *GradeService) Delete(ctx context.Context, studentID, courseID string) error {
	if _, err := s.repo.Find(ctx, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	if err := s.repo.Delete(ctx, studentID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade")
	}
	return nil
}

func (s *GradeService) validateRequest(ctx context.Context, req GradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return appErrors.Clone(appErrors.ErrInvalidScore, "score must be between 0 and 100")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrMissingReference, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrMissingReference, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
	}
	return nil
}
