package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type mockScheduleRepo struct {
	schedule *models.CourseSchedule
	deleted  bool
}

func (m *mockScheduleRepo) List(ctx context.Context) ([]models.CourseScheduleDetail, error) {
	return nil, nil
}

func (m *mockScheduleRepo) ListByCourse(ctx context.Context, courseID string) ([]models.CourseScheduleDetail, error) {
	return nil, nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id string) (*models.CourseSchedule, error) {
	if m.schedule == nil || m.schedule.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.schedule, nil
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.CourseSchedule) error {
	schedule.ID = "sch1"
	m.schedule = schedule
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *models.CourseSchedule) error {
	m.schedule = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id string) error {
	m.deleted = true
	m.schedule = nil
	return nil
}

func newScheduleService(repo *mockScheduleRepo, courses *mockCourseReader) *ScheduleService {
	if courses == nil {
		courses = &mockCourseReader{course: &models.Course{ID: "c1"}}
	}
	return NewScheduleService(repo, courses, validator.New(), zap.NewNop())
}

func scheduleRequest() CreateScheduleRequest {
	return CreateScheduleRequest{
		CourseID:  "c1",
		Location:  "Room B204",
		Date:      time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "11:00",
	}
}

func TestScheduleServiceCreate(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newScheduleService(repo, nil)

	schedule, err := svc.Create(context.Background(), scheduleRequest())
	require.NoError(t, err)
	assert.Equal(t, "c1", schedule.CourseID)
	assert.Equal(t, "09:00", schedule.StartTime)
	assert.Equal(t, "11:00", schedule.EndTime)
}

func TestScheduleServiceCreateUnknownCourse(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, &mockCourseReader{})

	_, err := svc.Create(context.Background(), scheduleRequest())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestScheduleServiceCreateInvertedWindow(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, nil)

	req := scheduleRequest()
	req.StartTime = "11:00"
	req.EndTime = "09:00"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTemporalRange.Code))
}

func TestScheduleServiceCreateZeroLengthWindow(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, nil)

	req := scheduleRequest()
	req.EndTime = req.StartTime
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTemporalRange.Code))
}

func TestScheduleServiceCreateMalformedTime(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, nil)

	req := scheduleRequest()
	req.StartTime = "9am"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestScheduleServiceUpdate(t *testing.T) {
	repo := &mockScheduleRepo{schedule: &models.CourseSchedule{ID: "sch1", CourseID: "c1", StartTime: "09:00", EndTime: "11:00"}}
	svc := newScheduleService(repo, nil)

	schedule, err := svc.Update(context.Background(), "sch1", UpdateScheduleRequest{
		Location:  "Room C110",
		Date:      time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Room C110", schedule.Location)
	assert.Equal(t, "14:00", schedule.StartTime)
}

func TestScheduleServiceDeleteMissing(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, nil)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
