package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/export"
)

type mockTranscriptStudents struct {
	student *models.StudentDetail
}

func (m *mockTranscriptStudents) FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if m.student == nil || m.student.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

type mockTranscriptGrades struct {
	rows []models.TranscriptRow
}

func (m *mockTranscriptGrades) TranscriptRows(ctx context.Context, studentID string) ([]models.TranscriptRow, error) {
	return m.rows, nil
}

func newTranscriptService(students *mockTranscriptStudents, grades *mockTranscriptGrades) *TranscriptService {
	if students == nil {
		students = &mockTranscriptStudents{student: &models.StudentDetail{
			Student:            models.Student{ID: "s1"},
			FirstName:          "Jean",
			LastName:           "Moreau",
			RegistrationNumber: "STU-20240305-102207-001",
		}}
	}
	if grades == nil {
		grades = &mockTranscriptGrades{}
	}
	return NewTranscriptService(students, grades, newScopeService(nil, nil), export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())
}

func TestTranscriptServiceExportCSV(t *testing.T) {
	score := 87.5
	grades := &mockTranscriptGrades{rows: []models.TranscriptRow{
		{CourseName: "Algorithms", CreditWeight: 6, Score: &score},
		{CourseName: "Databases", CreditWeight: 4, Score: nil},
	}}
	svc := newTranscriptService(nil, grades)

	doc, err := svc.Export(context.Background(), adminActor("a1"), "s1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", doc.ContentType)
	assert.Equal(t, "transcript-STU-20240305-102207-001.csv", doc.Filename)

	lines := strings.Split(strings.TrimSpace(string(doc.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course,Credits,Score", lines[0])
	assert.Equal(t, "Algorithms,6,87.50", lines[1])
	assert.Equal(t, "Databases,4,-", lines[2])
}

func TestTranscriptServiceExportDefaultsToCSV(t *testing.T) {
	svc := newTranscriptService(nil, nil)

	doc, err := svc.Export(context.Background(), adminActor("a1"), "s1", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", doc.ContentType)
}

func TestTranscriptServiceExportPDF(t *testing.T) {
	score := 64.0
	grades := &mockTranscriptGrades{rows: []models.TranscriptRow{
		{CourseName: "Algorithms", CreditWeight: 6, Score: &score},
	}}
	svc := newTranscriptService(nil, grades)

	doc, err := svc.Export(context.Background(), adminActor("a1"), "s1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "transcript-STU-20240305-102207-001.pdf", doc.Filename)
	assert.True(t, len(doc.Content) > 0)
}

func TestTranscriptServiceExportSelfOnly(t *testing.T) {
	svc := newTranscriptService(nil, nil)
	actor := models.Actor{UserID: "u2", UserType: models.UserTypeStudent, ProfileID: "s2"}

	_, err := svc.Export(context.Background(), actor, "s1", "csv")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))

	own := models.Actor{UserID: "u1", UserType: models.UserTypeStudent, ProfileID: "s1"}
	_, err = svc.Export(context.Background(), own, "s1", "csv")
	require.NoError(t, err)
}

func TestTranscriptServiceExportAdminScoped(t *testing.T) {
	programmeID := "pr1"
	students := &mockTranscriptStudents{student: &models.StudentDetail{
		Student:            models.Student{ID: "s1", ProgrammeID: &programmeID},
		FirstName:          "Jean",
		LastName:           "Moreau",
		RegistrationNumber: "STU-20240305-102207-001",
	}}
	scope := NewScopeService(&mockDepartmentScope{},
		&mockDepartmentReader{department: &models.Department{ID: "dep1", DepartmentAdminID: "a1"}},
		&mockProgrammeReader{programme: &models.Programme{ID: "pr1", DepartmentID: "dep1"}},
		zap.NewNop())
	svc := NewTranscriptService(students, &mockTranscriptGrades{}, scope, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())

	_, err := svc.Export(context.Background(), adminActor("a1"), "s1", "csv")
	require.NoError(t, err)

	_, err = svc.Export(context.Background(), adminActor("a2"), "s1", "csv")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestTranscriptServiceExportUnknownStudent(t *testing.T) {
	svc := newTranscriptService(&mockTranscriptStudents{}, nil)

	_, err := svc.Export(context.Background(), adminActor("a1"), "ghost", "csv")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestTranscriptServiceExportUnsupportedFormat(t *testing.T) {
	svc := newTranscriptService(nil, nil)

	_, err := svc.Export(context.Background(), adminActor("a1"), "s1", "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}
