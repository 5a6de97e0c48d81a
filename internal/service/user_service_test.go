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

type mockUserRepo struct {
	user    *models.User
	deleted bool
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	if m.user == nil {
		return nil, 0, nil
	}
	return []models.User{*m.user}, 1, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.user = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.deleted = true
	m.user = nil
	return nil
}

func newUserService(repo *mockUserRepo, students *mockStudentProfiles, professors *mockProfessorProfiles, admins *mockAdminProfiles) *UserService {
	if students == nil {
		students = &mockStudentProfiles{}
	}
	if professors == nil {
		professors = &mockProfessorProfiles{}
	}
	if admins == nil {
		admins = &mockAdminProfiles{}
	}
	return NewUserService(repo, students, professors, admins, validator.New(), zap.NewNop())
}

func TestUserServiceUpdate(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "u1", FirstName: "Jean", LastName: "Moreau"}}
	svc := newUserService(repo, nil, nil, nil)

	address := "12 rue des Lilas"
	user, err := svc.Update(context.Background(), "u1", UpdateUserRequest{FirstName: "Jean", LastName: "Dupont", Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Dupont", user.LastName)
	require.NotNil(t, user.Address)
	assert.Equal(t, "12 rue des Lilas", *user.Address)
}

func TestUserServiceUpdateMissing(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), "ghost", UpdateUserRequest{FirstName: "Jean", LastName: "Moreau"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestUserServiceDeleteBlockedByStudentProfile(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "u1"}}
	students := &mockStudentProfiles{student: &models.Student{ID: "s1", UserID: "u1"}}
	svc := newUserService(repo, students, nil, nil)

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.Contains(t, err.Error(), "student")
	assert.False(t, repo.deleted)
}

func TestUserServiceDeleteBlockedByProfessorProfile(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "u1"}}
	professors := &mockProfessorProfiles{professor: &models.Professor{ID: "p1", UserID: "u1"}}
	svc := newUserService(repo, nil, professors, nil)

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.Contains(t, err.Error(), "professor")
}

func TestUserServiceDeleteBlockedByAdminProfile(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "u1"}}
	admins := &mockAdminProfiles{admin: &models.DepartmentAdmin{ID: "a1", UserID: "u1"}}
	svc := newUserService(repo, nil, nil, admins)

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDeleteBlocked.Code))
	assert.Contains(t, err.Error(), "admin")
}

func TestUserServiceDeleteWithoutProfiles(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "u1"}}
	svc := newUserService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "u1"))
	assert.True(t, repo.deleted)
}
