package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type mockStudentReader struct {
	student *models.Student
}

func (m *mockStudentReader) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if m.student == nil {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

type mockCourseReader struct {
	course *models.Course
}

func (m *mockCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if m.course == nil {
		return nil, sql.ErrNoRows
	}
	return m.course, nil
}

type mockGradeRepo struct {
	grades       map[string]*models.Grade
	createErr    error
	updatedScore *float64
	updated      bool
	deleted      bool
}

func gradeKey(studentID, courseID string) string {
	return studentID + "/" + courseID
}

func (m *mockGradeRepo) List(ctx context.Context) ([]models.GradeDetail, error) {
	return nil, nil
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID string) ([]models.GradeDetail, error) {
	var out []models.GradeDetail
	for _, g := range m.grades {
		if g.StudentID == studentID {
			out = append(out, models.GradeDetail{Grade: *g})
		}
	}
	return out, nil
}

func (m *mockGradeRepo) ListByCourse(ctx context.Context, courseID string) ([]models.GradeDetail, error) {
	return nil, nil
}

func (m *mockGradeRepo) Find(ctx context.Context, studentID, courseID string) (*models.Grade, error) {
	g, ok := m.grades[gradeKey(studentID, courseID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (m *mockGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.grades == nil {
		m.grades = make(map[string]*models.Grade)
	}
	m.grades[gradeKey(grade.StudentID, grade.CourseID)] = grade
	return nil
}

func (m *mockGradeRepo) UpdateScore(ctx context.Context, studentID, courseID string, score *float64) error {
	m.updated = true
	m.updatedScore = score
	return nil
}

func (m *mockGradeRepo) Delete(ctx context.Context, studentID, courseID string) error {
	m.deleted = true
	delete(m.grades, gradeKey(studentID, courseID))
	return nil
}

func newGradeService(repo *mockGradeRepo, students *mockStudentReader, courses *mockCourseReader) *GradeService {
	if students == nil {
		students = &mockStudentReader{student: &models.Student{ID: "s1"}}
	}
	if courses == nil {
		courses = &mockCourseReader{course: &models.Course{ID: "c1"}}
	}
	return NewGradeService(repo, students, courses, validator.New(), zap.NewNop())
}

func TestGradeServiceCreate(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, nil, nil)

	score := 85.5
	grade, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1", Score: &score})
	require.NoError(t, err)
	assert.Equal(t, "s1", grade.StudentID)
	assert.Equal(t, "c1", grade.CourseID)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 85.5, *grade.Score)
}

func TestGradeServiceCreateNilScore(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, nil, nil)

	grade, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1"})
	require.NoError(t, err)
	assert.Nil(t, grade.Score)
}

func TestGradeServiceCreateScoreOutOfRange(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, nil, nil)

	for _, score := range []float64{-0.5, 100.5} {
		s := score
		_, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1", Score: &s})
		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidScore.Code))
	}
}

func TestGradeServiceCreateScoreBoundaries(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, nil, nil)

	for _, score := range []float64{0, 100} {
		s := score
		_, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1", Score: &s})
		assert.NoError(t, err)
	}
}

func TestGradeServiceCreateUnknownStudent(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, &mockStudentReader{}, nil)

	_, err := svc.Create(context.Background(), GradeRequest{StudentID: "ghost", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestGradeServiceCreateUnknownCourse(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, nil, &mockCourseReader{})

	_, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestGradeServiceCreateConflictPassthrough(t *testing.T) {
	repo := &mockGradeRepo{createErr: appErrors.Clone(appErrors.ErrConflict, "a grade already exists for this student and course")}
	svc := newGradeService(repo, nil, nil)

	_, err := svc.Create(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
}

func TestGradeServiceUpsertCreatesWhenAbsent(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, nil, nil)

	score := 70.0
	grade, err := svc.Upsert(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1", Score: &score})
	require.NoError(t, err)
	assert.False(t, repo.updated)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 70.0, *grade.Score)
}

func TestGradeServiceUpsertOverwritesExisting(t *testing.T) {
	old := 50.0
	repo := &mockGradeRepo{grades: map[string]*models.Grade{
		gradeKey("s1", "c1"): {StudentID: "s1", CourseID: "c1", Score: &old},
	}}
	svc := newGradeService(repo, nil, nil)

	score := 90.0
	grade, err := svc.Upsert(context.Background(), GradeRequest{StudentID: "s1", CourseID: "c1", Score: &score})
	require.NoError(t, err)
	assert.True(t, repo.updated)
	require.NotNil(t, repo.updatedScore)
	assert.Equal(t, 90.0, *repo.updatedScore)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 90.0, *grade.Score)
}

func TestGradeServiceListByStudentSelfOnly(t *testing.T) {
	repo := &mockGradeRepo{grades: map[string]*models.Grade{
		gradeKey("s1", "c1"): {StudentID: "s1", CourseID: "c1"},
	}}
	svc := newGradeService(repo, nil, nil)

	actor := models.Actor{UserType: models.UserTypeStudent, ProfileID: "s1"}
	grades, err := svc.ListByStudent(context.Background(), actor, "s1")
	require.NoError(t, err)
	assert.Len(t, grades, 1)

	_, err = svc.ListByStudent(context.Background(), actor, "s2")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestGradeServiceListByStudentAdminUnrestricted(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, nil, nil)

	actor := models.Actor{UserType: models.UserTypeDepartmentAdmin, ProfileID: "a1"}
	_, err := svc.ListByStudent(context.Background(), actor, "s2")
	assert.NoError(t, err)
}

func TestGradeServiceDeleteMissing(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, nil, nil)

	err := svc.Delete(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestGradeServiceDelete(t *testing.T) {
	repo := &mockGradeRepo{grades: map[string]*models.Grade{
		gradeKey("s1", "c1"): {StudentID: "s1", CourseID: "c1"},
	}}
	svc := newGradeService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "s1", "c1"))
	assert.True(t, repo.deleted)
}
