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

type scheduleRepository interface {
	List(ctx context.Context) ([]models.CourseScheduleDetail, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.CourseScheduleDetail, error)
	FindByID(ctx context.Context, id string) (*models.CourseSchedule, error)
	Create(ctx context.Context, schedule *models.CourseSchedule) error
	Update(ctx context.Context, schedule *models.CourseSchedule) error
	Delete(ctx context.Context, id string) error
}

// CreateScheduleRequest holds payload for creating course schedules.
type CreateScheduleRequest struct {
	CourseID  string    `json:"course_id" validate:"required"`
	Location  string    `json:"location" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
}

// UpdateScheduleRequest holds payload for updating course schedules.
type UpdateScheduleRequest struct {
	Location  string    `json:"location" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
}

// ScheduleService handles course schedule use-cases.
type ScheduleService struct {
	repo      scheduleRepository
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, courses courseReader, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// List returns schedules, optionally filtered by course.
func (s *ScheduleService) List(ctx context.Context, courseID string) ([]models.CourseScheduleDetail, error) {
	var (
		schedules []models.CourseScheduleDetail
		err       error
	)
	if courseID != "" {
		schedules, err = s.repo.ListByCourse(ctx, courseID)
	} else {
		schedules, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// Get returns a schedule by ID.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.CourseSchedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Create registers a schedule for an existing course. The end time must be
// after the start time within the same day.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.CourseSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrMissingReference, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
	}
	if err := validateTimeWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	schedule := &models.CourseSchedule{
		CourseID:  req.CourseID,
		Location:  req.Location,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	return schedule, nil
}

// Update modifies an existing schedule.
func (s *ScheduleService) Update(ctx context.Context, id string, req UpdateScheduleRequest) (*models.CourseSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if err := validateTimeWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	schedule.Location = req.Location
	schedule.Date = req.Date
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	return schedule, nil
}

// Delete removes a schedule.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	return nil
}

// validateTimeWindow parses wall-clock values in "15:04" form and requires
// the end to come strictly after the start.
func validateTimeWindow(start, end string) error {
	startAt, err := time.Parse("15:04", start)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start time must be in HH:MM form")
	}
	endAt, err := time.Parse("15:04", end)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "end time must be in HH:MM form")
	}
	if !endAt.After(startAt) {
		return appErrors.Clone(appErrors.ErrInvalidTemporalRange, "end time must be after start time")
	}
	return nil
}
