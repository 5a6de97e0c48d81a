package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type departmentScopeRepository interface {
	ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error)
}

// ScopeService enforces ownership rules for department admins. An admin may
// only mutate departments they manage, along with the programmes, students
// and professors hanging off those departments.
type ScopeService struct {
	departments departmentScopeRepository
	deps        departmentReader
	programmes  programmeReader
	logger      *zap.Logger
}

// NewScopeService constructs a ScopeService.
func NewScopeService(departments departmentScopeRepository, deps departmentReader, programmes programmeReader, logger *zap.Logger) *ScopeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScopeService{departments: departments, deps: deps, programmes: programmes, logger: logger}
}

// OwnedDepartmentIDs returns the departments managed by the acting admin.
func (s *ScopeService) OwnedDepartmentIDs(ctx context.Context, actor models.Actor) ([]string, error) {
	if !actor.IsDepartmentAdmin() {
		return nil, nil
	}
	ids, err := s.departments.ListIDsByAdmin(ctx, actor.ProfileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve managed departments")
	}
	return ids, nil
}

// EnsureDepartmentOwnership verifies the actor manages the given department.
func (s *ScopeService) EnsureDepartmentOwnership(actor models.Actor, department *models.Department) error {
	if !actor.IsDepartmentAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only department admins may manage departments")
	}
	if department.DepartmentAdminID != actor.ProfileID {
		return appErrors.Clone(appErrors.ErrForbidden, "department is managed by another admin")
	}
	return nil
}

// EnsureDepartmentOwnershipByID loads the department and verifies ownership.
func (s *ScopeService) EnsureDepartmentOwnershipByID(ctx context.Context, actor models.Actor, departmentID string) error {
	department, err := s.deps.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return s.EnsureDepartmentOwnership(actor, department)
}

// EnsureProgrammeOwnership verifies the actor manages the programme's department.
func (s *ScopeService) EnsureProgrammeOwnership(ctx context.Context, actor models.Actor, programme *models.Programme) error {
	return s.EnsureDepartmentOwnershipByID(ctx, actor, programme.DepartmentID)
}

// EnsureStudentOwnership verifies the actor manages the student's programme
// department. Students without a programme are manageable by any admin.
func (s *ScopeService) EnsureStudentOwnership(ctx context.Context, actor models.Actor, student *models.Student) error {
	if !actor.IsDepartmentAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only department admins may manage students")
	}
	if student.ProgrammeID == nil {
		return nil
	}
	programme, err := s.programmes.FindByID(ctx, *student.ProgrammeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load programme")
	}
	return s.EnsureProgrammeOwnership(ctx, actor, programme)
}

// EnsureProfessorOwnership verifies the actor manages the professor's
// department. Professors without a department are manageable by any admin.
func (s *ScopeService) EnsureProfessorOwnership(ctx context.Context, actor models.Actor, professor *models.Professor) error {
	if !actor.IsDepartmentAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only department admins may manage professors")
	}
	if professor.DepartmentID == nil {
		return nil
	}
	return s.EnsureDepartmentOwnershipByID(ctx, actor, *professor.DepartmentID)
}
