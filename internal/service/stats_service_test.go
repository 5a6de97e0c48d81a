package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

type mockStatsRepo struct {
	countsCalls    int
	breakdownAdmin string
}

func (m *mockStatsRepo) Counts(ctx context.Context) (*models.StatsOverview, error) {
	m.countsCalls++
	return &models.StatsOverview{Departments: 2, Programmes: 4, Courses: 10, Students: 120, Professors: 15}, nil
}

func (m *mockStatsRepo) DepartmentBreakdown(ctx context.Context, adminID string) ([]models.DepartmentStats, error) {
	m.breakdownAdmin = adminID
	return []models.DepartmentStats{{DepartmentID: "dep1", DepartmentName: "Computer Science", Programmes: 2, Students: 60, Professors: 8}}, nil
}

func newStatsService(repo *mockStatsRepo, cacheRepo *mockCacheRepo) *StatsService {
	enabled := cacheRepo != nil
	var inner CacheRepository
	if cacheRepo != nil {
		inner = cacheRepo
	}
	cache := NewCacheService(inner, nil, time.Minute, zap.NewNop(), enabled)
	return NewStatsService(repo, cache, time.Minute, zap.NewNop())
}

func TestStatsServiceOverview(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := newStatsService(repo, nil)

	overview, err := svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	assert.Equal(t, 120, overview.Students)
	require.Len(t, overview.ByDepartment, 1)
	assert.Equal(t, "dep1", overview.ByDepartment[0].DepartmentID)
	assert.Equal(t, "a1", repo.breakdownAdmin)
}

func TestStatsServiceOverviewGlobalForNonAdmin(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := newStatsService(repo, nil)
	actor := models.Actor{UserID: "u1", UserType: models.UserTypeProfessor, ProfileID: "p1"}

	_, err := svc.Overview(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, "", repo.breakdownAdmin)
}

func TestStatsServiceOverviewServesFromCache(t *testing.T) {
	repo := &mockStatsRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newStatsService(repo, cacheRepo)

	_, err := svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.countsCalls)
	assert.Contains(t, cacheRepo.entries, "stats:overview:admin:a1")

	_, err = svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.countsCalls)
}

func TestStatsServiceCacheKeyPerAdmin(t *testing.T) {
	repo := &mockStatsRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newStatsService(repo, cacheRepo)

	_, err := svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	_, err = svc.Overview(context.Background(), adminActor("a2"))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countsCalls)
	assert.Contains(t, cacheRepo.entries, "stats:overview:admin:a1")
	assert.Contains(t, cacheRepo.entries, "stats:overview:admin:a2")
}

func TestStatsServiceInvalidate(t *testing.T) {
	repo := &mockStatsRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newStatsService(repo, cacheRepo)

	_, err := svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)

	svc.Invalidate(context.Background())
	assert.Equal(t, []string{"stats:*"}, cacheRepo.patterns)

	_, err = svc.Overview(context.Background(), adminActor("a1"))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countsCalls)
}
