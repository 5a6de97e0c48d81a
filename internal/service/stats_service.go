package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type statsRepository interface {
	Counts(ctx context.Context) (*models.StatsOverview, error)
	DepartmentBreakdown(ctx context.Context, adminID string) ([]models.DepartmentStats, error)
}

// StatsService serves the dashboard overview, backed by the cache layer.
type StatsService struct {
	repo   statsRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService constructs the stats service.
func NewStatsService(repo statsRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Overview returns entity totals with a per-department breakdown. Department
// admins receive a breakdown restricted to their own departments.
func (s *StatsService) Overview(ctx context.Context, actor models.Actor) (*models.StatsOverview, error) {
	key := s.cacheKey(actor)

	var cached models.StatsOverview
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	overview, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}

	adminID := ""
	if actor.IsDepartmentAdmin() {
		adminID = actor.ProfileID
	}
	breakdown, err := s.repo.DepartmentBreakdown(ctx, adminID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute department stats")
	}
	overview.ByDepartment = breakdown

	if err := s.cache.Set(ctx, key, overview, s.ttl); err != nil {
		s.logger.Warn("failed to cache stats overview", zap.Error(err))
	}
	return overview, nil
}

// Invalidate drops all cached dashboard entries. Called after mutations that
// change entity counts.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "stats:*"); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *StatsService) cacheKey(actor models.Actor) string {
	if actor.IsDepartmentAdmin() {
		return fmt.Sprintf("stats:overview:admin:%s", actor.ProfileID)
	}
	return "stats:overview:global"
}
