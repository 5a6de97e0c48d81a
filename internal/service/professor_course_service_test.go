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

type mockProfessorReader struct {
	professor *models.Professor
}

func (m *mockProfessorReader) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	if m.professor == nil || m.professor.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.professor, nil
}

type mockProfessorCourseRepo struct {
	links   map[string]models.ProfessorCourse
	deleted bool
}

func (m *mockProfessorCourseRepo) key(professorID, courseID string) string {
	return professorID + "/" + courseID
}

func (m *mockProfessorCourseRepo) List(ctx context.Context) ([]models.ProfessorCourse, error) {
	var out []models.ProfessorCourse
	for _, l := range m.links {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockProfessorCourseRepo) ListByProfessor(ctx context.Context, professorID string) ([]models.ProfessorCourse, error) {
	var out []models.ProfessorCourse
	for _, l := range m.links {
		if l.ProfessorID == professorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockProfessorCourseRepo) ListByCourse(ctx context.Context, courseID string) ([]models.ProfessorCourse, error) {
	return nil, nil
}

func (m *mockProfessorCourseRepo) Exists(ctx context.Context, professorID, courseID string) (bool, error) {
	_, ok := m.links[m.key(professorID, courseID)]
	return ok, nil
}

func (m *mockProfessorCourseRepo) Create(ctx context.Context, link *models.ProfessorCourse) error {
	if m.links == nil {
		m.links = make(map[string]models.ProfessorCourse)
	}
	m.links[m.key(link.ProfessorID, link.CourseID)] = *link
	return nil
}

func (m *mockProfessorCourseRepo) Delete(ctx context.Context, professorID, courseID string) error {
	m.deleted = true
	delete(m.links, m.key(professorID, courseID))
	return nil
}

func newProfessorCourseService(repo *mockProfessorCourseRepo, professors *mockProfessorReader, courses *mockCourseReader) *ProfessorCourseService {
	if professors == nil {
		professors = &mockProfessorReader{professor: &models.Professor{ID: "p1"}}
	}
	if courses == nil {
		courses = &mockCourseReader{course: &models.Course{ID: "c1"}}
	}
	return NewProfessorCourseService(repo, professors, courses, validator.New(), zap.NewNop())
}

func TestProfessorCourseServiceCreate(t *testing.T) {
	repo := &mockProfessorCourseRepo{}
	svc := newProfessorCourseService(repo, nil, nil)

	link, err := svc.Create(context.Background(), ProfessorCourseRequest{ProfessorID: "p1", CourseID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "p1", link.ProfessorID)
	assert.Equal(t, "c1", link.CourseID)
}

func TestProfessorCourseServiceCreateDuplicate(t *testing.T) {
	repo := &mockProfessorCourseRepo{links: map[string]models.ProfessorCourse{
		"p1/c1": {ProfessorID: "p1", CourseID: "c1"},
	}}
	svc := newProfessorCourseService(repo, nil, nil)

	_, err := svc.Create(context.Background(), ProfessorCourseRequest{ProfessorID: "p1", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
}

func TestProfessorCourseServiceCreateUnknownProfessor(t *testing.T) {
	svc := newProfessorCourseService(&mockProfessorCourseRepo{}, &mockProfessorReader{}, nil)

	_, err := svc.Create(context.Background(), ProfessorCourseRequest{ProfessorID: "ghost", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestProfessorCourseServiceCreateUnknownCourse(t *testing.T) {
	svc := newProfessorCourseService(&mockProfessorCourseRepo{}, nil, &mockCourseReader{})

	_, err := svc.Create(context.Background(), ProfessorCourseRequest{ProfessorID: "p1", CourseID: "ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrMissingReference.Code))
}

func TestProfessorCourseServiceDeleteMissing(t *testing.T) {
	svc := newProfessorCourseService(&mockProfessorCourseRepo{}, nil, nil)

	err := svc.Delete(context.Background(), "p1", "c1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestProfessorCourseServiceDelete(t *testing.T) {
	repo := &mockProfessorCourseRepo{links: map[string]models.ProfessorCourse{
		"p1/c1": {ProfessorID: "p1", CourseID: "c1"},
	}}
	svc := newProfessorCourseService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "p1", "c1"))
	assert.True(t, repo.deleted)
}
