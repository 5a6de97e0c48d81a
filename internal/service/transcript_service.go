package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/export"
)

type transcriptStudentReader interface {
	FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

type transcriptGradeReader interface {
	TranscriptRows(ctx context.Context, studentID string) ([]models.TranscriptRow, error)
}

// TranscriptDocument is a rendered transcript export.
type TranscriptDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// TranscriptService renders student transcripts as CSV or PDF documents.
type TranscriptService struct {
	students transcriptStudentReader
	grades   transcriptGradeReader
	scope    *ScopeService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewTranscriptService constructs the transcript service.
func NewTranscriptService(students transcriptStudentReader, grades transcriptGradeReader, scope *ScopeService, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{students: students, grades: grades, scope: scope, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the transcript for a student in the requested format.
// Students may only export their own transcript; department admins only
// transcripts of students within their departments.
func (s *TranscriptService) Export(ctx context.Context, actor models.Actor, studentID, format string) (*TranscriptDocument, error) {
	if actor.UserType == models.UserTypeStudent && actor.ProfileID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students may only export their own transcript")
	}

	student, err := s.students.FindDetailByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if actor.IsDepartmentAdmin() {
		if err := s.scope.EnsureStudentOwnership(ctx, actor, &student.Student); err != nil {
			return nil, err
		}
	}

	rows, err := s.grades.TranscriptRows(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transcript rows")
	}

	data := export.Dataset{
		Headers: []string{"Course", "Credits", "Score"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		score := "-"
		if row.Score != nil {
			score = fmt.Sprintf("%.2f", *row.Score)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Course":  row.CourseName,
			"Credits": fmt.Sprintf("%d", row.CreditWeight),
			"Score":   score,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv transcript")
		}
		return &TranscriptDocument{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("transcript-%s.csv", student.RegistrationNumber),
		}, nil
	case "pdf":
		title := "Student Transcript"
		subtitle := fmt.Sprintf("%s %s (%s)", student.FirstName, student.LastName, student.RegistrationNumber)
		content, err := s.pdf.Render(data, title, subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf transcript")
		}
		return &TranscriptDocument{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("transcript-%s.pdf", student.RegistrationNumber),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported transcript format")
	}
}
