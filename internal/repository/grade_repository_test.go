package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

func TestGradeListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"student_id", "course_id", "score", "created_at", "updated_at", "student_name", "course_name"}).
		AddRow("s1", "c1", 87.5, now, now, "Jean Moreau", "Algorithms").
		AddRow("s1", "c2", nil, now, now, "Jean Moreau", "Databases")
	mock.ExpectQuery("SELECT (.+) FROM grades g").
		WithArgs("s1").
		WillReturnRows(rows)

	grades, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	require.NotNil(t, grades[0].Score)
	assert.Equal(t, 87.5, *grades[0].Score)
	assert.Nil(t, grades[1].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grades").WillReturnResult(sqlmock.NewResult(1, 1))

	score := 64.0
	grade := &models.Grade{StudentID: "s1", CourseID: "c1", Score: &score}
	require.NoError(t, repo.Create(context.Background(), grade))
	assert.False(t, grade.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeCreateDuplicatePair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grades").WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), &models.Grade{StudentID: "s1", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeUpdateScore(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	score := 92.0
	mock.ExpectExec("UPDATE grades SET score").
		WithArgs("s1", "c1", score, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateScore(context.Background(), "s1", "c1", &score))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grades WHERE student_id = $1 AND course_id = $2")).
		WithArgs("s1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "s1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeCountByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM grades WHERE student_id = $1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStudent(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeTranscriptRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	rows := sqlmock.NewRows([]string{"course_name", "credit_weight", "score"}).
		AddRow("Algorithms", 6, 87.5).
		AddRow("Databases", 4, nil)
	mock.ExpectQuery("SELECT c.course_name, c.credit_weight, g.score").
		WithArgs("s1").
		WillReturnRows(rows)

	transcript, err := repo.TranscriptRows(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, "Algorithms", transcript[0].CourseName)
	assert.Equal(t, 6, transcript[0].CreditWeight)
	assert.Nil(t, transcript[1].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
