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

type mockAdminRepo struct {
	admin   *models.DepartmentAdmin
	deleted bool
}

func (m *mockAdminRepo) List(ctx context.Context) ([]models.DepartmentAdminDetail, error) {
	if m.admin == nil {
		return nil, nil
	}
	return []models.DepartmentAdminDetail{{DepartmentAdmin: *m.admin}}, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*models.DepartmentAdmin, error) {
	if m.admin == nil || m.admin.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

func (m *mockAdminRepo) FindDetailByID(ctx context.Context, id string) (*models.DepartmentAdminDetail, error) {
	if m.admin == nil || m.admin.ID != id {
		return nil, sql.ErrNoRows
	}
	return &models.DepartmentAdminDetail{DepartmentAdmin: *m.admin}, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.DepartmentAdmin) error {
	admin.ID = "a1"
	m.admin = admin
	return nil
}

func (m *mockAdminRepo) Update(ctx context.Context, admin *models.DepartmentAdmin) error {
	m.admin = admin
	return nil
}

func (m *mockAdminRepo) Delete(ctx context.Context, id string) error {
	m.deleted = true
	m.admin = nil
	return nil
}

type stubAdminDepartmentLister struct {
	ids []string
}

func (s *stubAdminDepartmentLister) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	return s.ids, nil
}

func newAdminService(repo *mockAdminRepo, departments *stubAdminDepartmentLister, users *mockUserReader) *DepartmentAdminService {
	if departments == nil {
		departments = &stubAdminDepartmentLister{}
	}
	if users == nil {
		users = &mockUserReader{user: &models.User{ID: "u1"}}
	}
	return NewDepartmentAdminService(repo, departments, users, validator.New(), zap.NewNop())
}

func TestDepartmentAdminServiceCreate(t *testing.T) {
	repo := &mockAdminRepo{}
	svc := newAdminService(repo, nil, nil)

	title := "Head of Department"
	admin, err := svc.Create(context.Background(), CreateDepartmentAdminRequest{UserID: "u1", RoleTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "u1", admin.UserID)
	require.NotNil(t, admin.RoleTitle)
	assert.Equal(t, "Head of Department", *admin.RoleTitle)
}

func TestDepartmentAdminServiceCreateUnknownUser(t *testing.T) {
	svc := newAdminService(&mockAdminRepo{}, nil, &mockUserReader{})

	_, err := svc.Create(context.Background(), CreateDepartmentAdminRequest{UserID: "ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestDepartmentAdminServiceDeleteBlockedByDepartments(t *testing.T) {
	repo := &mockAdminRepo{admin: &models.DepartmentAdmin{ID: "a1", UserID: "u1"}}
	svc := newAdminService(repo, &stubAdminDepartmentLister{ids: []string{"dep1"}}, nil)

	err := svc.Delete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.False(t, repo.deleted)
}

func TestDepartmentAdminServiceDeleteWithoutDepartments(t *testing.T) {
	repo := &mockAdminRepo{admin: &models.DepartmentAdmin{ID: "a1", UserID: "u1"}}
	svc := newAdminService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.True(t, repo.deleted)
}

func TestDepartmentAdminServiceUpdateMissing(t *testing.T) {
	svc := newAdminService(&mockAdminRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), "ghost", UpdateDepartmentAdminRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
