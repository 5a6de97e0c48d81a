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

func TestProgrammeCourseExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM programme_courses WHERE programme_id = $1 AND course_id = $2 LIMIT 1")).
		WithArgs("pr1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "pr1", "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM programme_courses WHERE programme_id = $1 AND course_id = $2 LIMIT 1")).
		WithArgs("pr1", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.Exists(context.Background(), "pr1", "c2")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgrammeCourseCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	mock.ExpectExec("INSERT INTO programme_courses").WillReturnResult(sqlmock.NewResult(1, 1))

	link := &models.ProgrammeCourse{ProgrammeID: "pr1", CourseID: "c1"}
	require.NoError(t, repo.Create(context.Background(), link))
	assert.False(t, link.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgrammeCourseCreateDuplicatePair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	mock.ExpectExec("INSERT INTO programme_courses").WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), &models.ProgrammeCourse{ProgrammeID: "pr1", CourseID: "c1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgrammeCourseListByProgramme(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	rows := sqlmock.NewRows([]string{"programme_id", "course_id", "created_at"}).
		AddRow("pr1", "c1", time.Now()).
		AddRow("pr1", "c2", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT programme_id, course_id, created_at FROM programme_courses WHERE programme_id = $1")).
		WithArgs("pr1").
		WillReturnRows(rows)

	links, err := repo.ListByProgramme(context.Background(), "pr1")
	require.NoError(t, err)
	assert.Len(t, links, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgrammeCourseCountByCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM programme_courses WHERE course_id = $1")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgrammeCourseDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProgrammeCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM programme_courses WHERE programme_id = $1 AND course_id = $2")).
		WithArgs("pr1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "pr1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
