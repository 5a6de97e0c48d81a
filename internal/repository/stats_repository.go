package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// StatsRepository aggregates dashboard counts across the portal tables.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts returns the global entity totals.
func (r *StatsRepository) Counts(ctx context.Context) (*models.StatsOverview, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM departments) AS departments,
        (SELECT COUNT(*) FROM programmes) AS programmes,
        (SELECT COUNT(*) FROM courses) AS courses,
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM professors) AS professors`
	var row struct {
		Departments int `db:"departments"`
		Programmes  int `db:"programmes"`
		Courses     int `db:"courses"`
		Students    int `db:"students"`
		Professors  int `db:"professors"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("stats counts: %w", err)
	}
	return &models.StatsOverview{
		Departments: row.Departments,
		Programmes:  row.Programmes,
		Courses:     row.Courses,
		Students:    row.Students,
		Professors:  row.Professors,
	}, nil
}

// DepartmentBreakdown returns per-department totals. When adminID is non-empty
// the breakdown is restricted to departments managed by that admin.
func (r *StatsRepository) DepartmentBreakdown(ctx context.Context, adminID string) ([]models.DepartmentStats, error) {
	query := `SELECT d.id AS department_id, d.department_name,
        (SELECT COUNT(*) FROM programmes p WHERE p.department_id = d.id) AS programmes,
        (SELECT COUNT(*) FROM students s JOIN programmes p ON p.id = s.programme_id WHERE p.department_id = d.id) AS students,
        (SELECT COUNT(*) FROM professors pr WHERE pr.department_id = d.id) AS professors
        FROM departments d`
	args := []interface{}{}
	if adminID != "" {
		query += " WHERE d.department_admin_id = $1"
		args = append(args, adminID)
	}
	query += " ORDER BY d.department_name ASC"

	var stats []models.DepartmentStats
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("stats department breakdown: %w", err)
	}
	return stats, nil
}
