package service

import (
	"context"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

// Shared read-side interfaces used by services to validate references
// across entities. Each service declares its own repository interface
// for the aggregate it owns and composes these for foreign lookups.

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type professorReader interface {
	FindByID(ctx context.Context, id string) (*models.Professor, error)
}

type departmentAdminReader interface {
	FindByID(ctx context.Context, id string) (*models.DepartmentAdmin, error)
}

type departmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Department, error)
}

type programmeReader interface {
	FindByID(ctx context.Context, id string) (*models.Programme, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}
