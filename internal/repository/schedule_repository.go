package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// ScheduleRepository manages persistence for course schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleDetailColumns = `cs.id, cs.course_id, cs.location, cs.date, cs.start_time, cs.end_time, cs.created_at, cs.updated_at, c.course_name`

// List returns all schedules with course context, soonest first.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.CourseScheduleDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM course_schedules cs JOIN courses c ON c.id = cs.course_id ORDER BY cs.date ASC, cs.start_time ASC", scheduleDetailColumns)
	var schedules []models.CourseScheduleDetail
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ListByCourse returns schedules for a course.
func (r *ScheduleRepository) ListByCourse(ctx context.Context, courseID string) ([]models.CourseScheduleDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM course_schedules cs JOIN courses c ON c.id = cs.course_id WHERE cs.course_id = $1 ORDER BY cs.date ASC, cs.start_time ASC", scheduleDetailColumns)
	var schedules []models.CourseScheduleDetail
	if err := r.db.SelectContext(ctx, &schedules, query, courseID); err != nil {
		return nil, fmt.Errorf("list schedules by course: %w", err)
	}
	return schedules, nil
}

// FindByID fetches a schedule by ID.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.CourseSchedule, error) {
	var schedule models.CourseSchedule
	const query = "SELECT id, course_id, location, date, start_time, end_time, created_at, updated_at FROM course_schedules WHERE id = $1"
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CountByCourse counts schedules attached to a course.
func (r *ScheduleRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM course_schedules WHERE course_id = $1", courseID); err != nil {
		return 0, fmt.Errorf("count schedules by course: %w", err)
	}
	return count, nil
}

// Create inserts a new schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.CourseSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	const query = `INSERT INTO course_schedules (id, course_id, location, date, start_time, end_time, created_at, updated_at)
        VALUES (:id, :course_id, :location, :date, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Update modifies an existing schedule.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.CourseSchedule) error {
	schedule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE course_schedules SET course_id = :course_id, location = :location, date = :date, start_time = :start_time, end_time = :end_time, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

// Delete removes a schedule row.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM course_schedules WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
