package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

// UserRepository manages persistence for user identity records.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, first_name, last_name, email, password_hash, registration_number, address, postal_code, created_at, updated_at"

// List returns users matching the provided filters.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	base := "FROM users"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"last_name":           "last_name",
		"email":               "email",
		"registration_number": "registration_number",
		"created_at":          "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", userColumns, base, column, order, size, offset)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// FindByID fetches a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks whether a user with the email exists, optionally excluding an ID.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM users WHERE email = $1"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// CountRegistrationNumbers counts registration numbers carrying the given
// prefix and day segment, mirroring the portal numbering scheme.
func (r *UserRepository) CountRegistrationNumbers(ctx context.Context, prefix, day string) (int, error) {
	const query = "SELECT COUNT(*) FROM users WHERE registration_number LIKE $1 || '%' AND registration_number LIKE '%' || $2 || '%'"
	var count int
	if err := r.db.GetContext(ctx, &count, query, prefix, day); err != nil {
		return 0, fmt.Errorf("count registration numbers: %w", err)
	}
	return count, nil
}

const insertUserQuery = `INSERT INTO users (id, first_name, last_name, email, password_hash, registration_number, address, postal_code, created_at, updated_at)
    VALUES (:id, :first_name, :last_name, :email, :password_hash, :registration_number, :address, :postal_code, :created_at, :updated_at)`

// CreateStudentAccount inserts a user and its student profile atomically.
func (r *UserRepository) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	return r.createAccount(ctx, user, func(tx *sqlx.Tx) error {
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		student.UserID = user.ID
		student.CreatedAt = user.CreatedAt
		student.UpdatedAt = user.UpdatedAt
		const query = `INSERT INTO students (id, user_id, year, average_grade, programme_id, created_at, updated_at)
            VALUES (:id, :user_id, :year, :average_grade, :programme_id, :created_at, :updated_at)`
		_, err := tx.NamedExecContext(ctx, query, student)
		return err
	})
}

// CreateProfessorAccount inserts a user and its professor profile atomically.
func (r *UserRepository) CreateProfessorAccount(ctx context.Context, user *models.User, professor *models.Professor) error {
	return r.createAccount(ctx, user, func(tx *sqlx.Tx) error {
		if professor.ID == "" {
			professor.ID = uuid.NewString()
		}
		professor.UserID = user.ID
		professor.CreatedAt = user.CreatedAt
		professor.UpdatedAt = user.UpdatedAt
		const query = `INSERT INTO professors (id, user_id, specialization, department_id, created_at, updated_at)
            VALUES (:id, :user_id, :specialization, :department_id, :created_at, :updated_at)`
		_, err := tx.NamedExecContext(ctx, query, professor)
		return err
	})
}

func (r *UserRepository) createAccount(ctx context.Context, user *models.User, insertProfile func(tx *sqlx.Tx) error) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin account tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.NamedExecContext(ctx, insertUserQuery, user); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}
	if err := insertProfile(tx); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit account tx: %w", err)
	}
	return nil
}

// Update modifies the mutable identity attributes of a user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET first_name = :first_name, last_name = :last_name, address = :address, postal_code = :postal_code, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user row.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CreateAuditLog persists an audit trail record.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at)
        VALUES (:id, :user_id, :action, :resource, :resource_id, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
