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

type mockDepartmentRepo struct {
	department  *models.Department
	deleted     bool
	listedAdmin string
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	if m.department == nil {
		return nil, nil
	}
	return []models.Department{*m.department}, nil
}

func (m *mockDepartmentRepo) ListByAdmin(ctx context.Context, adminID string) ([]models.Department, error) {
	m.listedAdmin = adminID
	if m.department == nil || m.department.DepartmentAdminID != adminID {
		return nil, nil
	}
	return []models.Department{*m.department}, nil
}

func (m *mockDepartmentRepo) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	if m.department == nil || m.department.DepartmentAdminID != adminID {
		return nil, nil
	}
	return []string{m.department.ID}, nil
}

func (m *mockDepartmentRepo) FindByID(ctx context.Context, id string) (*models.Department, error) {
	if m.department == nil || m.department.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.department, nil
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	department.ID = "dep1"
	m.department = department
	return nil
}

func (m *mockDepartmentRepo) Update(ctx context.Context, department *models.Department) error {
	m.department = department
	return nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = true
	m.department = nil
	return nil
}

type mockAdminReader struct {
	admin *models.DepartmentAdmin
}

func (m *mockAdminReader) FindByID(ctx context.Context, id string) (*models.DepartmentAdmin, error) {
	if m.admin == nil || m.admin.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

type stubDepartmentProgrammeCounter struct {
	count int
}

func (s *stubDepartmentProgrammeCounter) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	return s.count, nil
}

func newDepartmentService(repo *mockDepartmentRepo, programmes *stubDepartmentProgrammeCounter, admins *mockAdminReader) *DepartmentService {
	if programmes == nil {
		programmes = &stubDepartmentProgrammeCounter{}
	}
	if admins == nil {
		admins = &mockAdminReader{admin: &models.DepartmentAdmin{ID: "a1", UserID: "u1"}}
	}
	scope := NewScopeService(repo, &mockDepartmentReader{}, &mockProgrammeReader{}, zap.NewNop())
	return NewDepartmentService(repo, programmes, admins, scope, validator.New(), zap.NewNop())
}

func TestDepartmentServiceListScopedToAdmin(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, nil, nil)

	departments, err := svc.List(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	assert.Len(t, departments, 1)
	assert.Equal(t, "a1", repo.listedAdmin)

	departments, err = svc.List(context.Background(), adminActor("a2"))
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestDepartmentServiceCreateOwnProfile(t *testing.T) {
	repo := &mockDepartmentRepo{}
	svc := newDepartmentService(repo, nil, nil)

	department, err := svc.Create(context.Background(), adminActor("a1"), CreateDepartmentRequest{
		DepartmentName:    "Computer Science",
		DepartmentAdminID: "a1",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", department.DepartmentAdminID)
}

func TestDepartmentServiceCreateForeignProfile(t *testing.T) {
	svc := newDepartmentService(&mockDepartmentRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), adminActor("a2"), CreateDepartmentRequest{
		DepartmentName:    "Computer Science",
		DepartmentAdminID: "a1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestDepartmentServiceCreateUnknownAdmin(t *testing.T) {
	svc := newDepartmentService(&mockDepartmentRepo{}, nil, &mockAdminReader{})

	_, err := svc.Create(context.Background(), adminActor("a1"), CreateDepartmentRequest{
		DepartmentName:    "Computer Science",
		DepartmentAdminID: "a1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestDepartmentServiceUpdateForeignDepartment(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, nil, nil)

	_, err := svc.Update(context.Background(), adminActor("a2"), "dep1", UpdateDepartmentRequest{DepartmentName: "Maths", DepartmentAdminID: "a1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestDepartmentServiceUpdateReassignsAdmin(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentName: "Computer Science", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, nil, &mockAdminReader{admin: &models.DepartmentAdmin{ID: "a2", UserID: "u2"}})

	department, err := svc.Update(context.Background(), adminActor("a1"), "dep1", UpdateDepartmentRequest{
		DepartmentName:    "Computer Science",
		DepartmentAdminID: "a2",
	})
	require.NoError(t, err)
	assert.Equal(t, "a2", department.DepartmentAdminID)
}

func TestDepartmentServiceUpdateUnknownAdmin(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentName: "Computer Science", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, nil, nil)

	_, err := svc.Update(context.Background(), adminActor("a1"), "dep1", UpdateDepartmentRequest{
		DepartmentName:    "Computer Science",
		DepartmentAdminID: "ghost",
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
	assert.Equal(t, "a1", repo.department.DepartmentAdminID)
}

func TestDepartmentServiceDeleteBlockedByProgrammes(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, &stubDepartmentProgrammeCounter{count: 2}, nil)

	err := svc.Delete(context.Background(), adminActor("a1"), "dep1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.False(t, repo.deleted)
}

func TestDepartmentServiceDeleteWithoutProgrammes(t *testing.T) {
	repo := &mockDepartmentRepo{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}}
	svc := newDepartmentService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), adminActor("a1"), "dep1"))
	assert.True(t, repo.deleted)
}
