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

type mockProgrammeRepo struct {
	programme *models.Programme
	deleted   bool
}

func (m *mockProgrammeRepo) List(ctx context.Context) ([]models.Programme, error) {
	if m.programme == nil {
		return nil, nil
	}
	return []models.Programme{*m.programme}, nil
}

func (m *mockProgrammeRepo) ListByDepartment(ctx context.Context, departmentID string) ([]models.Programme, error) {
	if m.programme == nil || m.programme.DepartmentID != departmentID {
		return nil, nil
	}
	return []models.Programme{*m.programme}, nil
}

func (m *mockProgrammeRepo) FindByID(ctx context.Context, id string) (*models.Programme, error) {
	if m.programme == nil || m.programme.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.programme, nil
}

func (m *mockProgrammeRepo) Create(ctx context.Context, programme *models.Programme) error {
	programme.ID = "prog1"
	m.programme = programme
	return nil
}

func (m *mockProgrammeRepo) Update(ctx context.Context, programme *models.Programme) error {
	m.programme = programme
	return nil
}

func (m *mockProgrammeRepo) Delete(ctx context.Context, id string) error {
	m.deleted = true
	m.programme = nil
	return nil
}

type stubProgrammeCounter struct {
	count int
	calls int
}

func (s *stubProgrammeCounter) CountByProgramme(ctx context.Context, programmeID string) (int, error) {
	s.calls++
	return s.count, nil
}

func newProgrammeService(repo *mockProgrammeRepo, students, links *stubProgrammeCounter, deps *mockDepartmentReader) *ProgrammeService {
	if students == nil {
		students = &stubProgrammeCounter{}
	}
	if links == nil {
		links = &stubProgrammeCounter{}
	}
	if deps == nil {
		deps = &mockDepartmentReader{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}}
	}
	scope := NewScopeService(&mockDepartmentScope{}, deps, &mockProgrammeReader{}, zap.NewNop())
	return NewProgrammeService(repo, students, links, deps, scope, validator.New(), zap.NewNop())
}

func sessionWindow() (time.Time, time.Time) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func TestProgrammeServiceCreate(t *testing.T) {
	repo := &mockProgrammeRepo{}
	svc := newProgrammeService(repo, nil, nil, nil)
	start, end := sessionWindow()

	programme, err := svc.Create(context.Background(), adminActor("a1"), CreateProgrammeRequest{
		ProgrammeName: "Computer Science",
		SessionStart:  start,
		SessionEnd:    end,
		DepartmentID:  "dep1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", programme.ProgrammeName)
	assert.Equal(t, "dep1", programme.DepartmentID)
}

func TestProgrammeServiceCreateInvertedSession(t *testing.T) {
	svc := newProgrammeService(&mockProgrammeRepo{}, nil, nil, nil)
	start, end := sessionWindow()

	_, err := svc.Create(context.Background(), adminActor("a1"), CreateProgrammeRequest{
		ProgrammeName: "Computer Science",
		SessionStart:  end,
		SessionEnd:    start,
		DepartmentID:  "dep1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTemporalRange.Code))
}

func TestProgrammeServiceCreateEqualSessionBounds(t *testing.T) {
	svc := newProgrammeService(&mockProgrammeRepo{}, nil, nil, nil)
	start, _ := sessionWindow()

	_, err := svc.Create(context.Background(), adminActor("a1"), CreateProgrammeRequest{
		ProgrammeName: "Computer Science",
		SessionStart:  start,
		SessionEnd:    start,
		DepartmentID:  "dep1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTemporalRange.Code))
}

func TestProgrammeServiceCreateUnknownDepartment(t *testing.T) {
	svc := newProgrammeService(&mockProgrammeRepo{}, nil, nil, &mockDepartmentReader{})
	start, end := sessionWindow()

	_, err := svc.Create(context.Background(), adminActor("a1"), CreateProgrammeRequest{
		ProgrammeName: "Computer Science",
		SessionStart:  start,
		SessionEnd:    end,
		DepartmentID:  "ghost",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestProgrammeServiceCreateForeignDepartment(t *testing.T) {
	svc := newProgrammeService(&mockProgrammeRepo{}, nil, nil, nil)
	start, end := sessionWindow()

	_, err := svc.Create(context.Background(), adminActor("a2"), CreateProgrammeRequest{
		ProgrammeName: "Computer Science",
		SessionStart:  start,
		SessionEnd:    end,
		DepartmentID:  "dep1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestProgrammeServiceDeleteBlockedByStudents(t *testing.T) {
	start, end := sessionWindow()
	repo := &mockProgrammeRepo{programme: &models.Programme{ID: "prog1", DepartmentID: "dep1", SessionStart: start, SessionEnd: end}}
	students := &stubProgrammeCounter{count: 3}
	links := &stubProgrammeCounter{count: 1}
	svc := newProgrammeService(repo, students, links, nil)

	err := svc.Delete(context.Background(), adminActor("a1"), "prog1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.Contains(t, err.Error(), "students")
	assert.Equal(t, 0, links.calls)
	assert.False(t, repo.deleted)
}

func TestProgrammeServiceDeleteBlockedByCourseLinks(t *testing.T) {
	repo := &mockProgrammeRepo{programme: &models.Programme{ID: "prog1", DepartmentID: "dep1"}}
	links := &stubProgrammeCounter{count: 2}
	svc := newProgrammeService(repo, nil, links, nil)

	err := svc.Delete(context.Background(), adminActor("a1"), "prog1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.Contains(t, err.Error(), "course links")
}

func TestProgrammeServiceDeleteUnreferenced(t *testing.T) {
	repo := &mockProgrammeRepo{programme: &models.Programme{ID: "prog1", DepartmentID: "dep1"}}
	svc := newProgrammeService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), adminActor("a1"), "prog1"))
	assert.True(t, repo.deleted)
}

func TestProgrammeServiceDeleteForeignDepartment(t *testing.T) {
	repo := &mockProgrammeRepo{programme: &models.Programme{ID: "prog1", DepartmentID: "dep1"}}
	svc := newProgrammeService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), adminActor("a2"), "prog1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
	assert.False(t, repo.deleted)
}
