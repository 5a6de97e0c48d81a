package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type mockCacheRepo struct {
	entries  map[string][]byte
	lastTTL  time.Duration
	patterns []string
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = raw
	m.lastTTL = ttl
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	m.entries = nil
	return nil
}

func TestCacheServiceGetMiss(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	var dest string
	hit, err := svc.Get(context.Background(), "stats:overview:global", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSetThenGet(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Set(context.Background(), "k1", "hello", 0))
	assert.Equal(t, time.Minute, repo.lastTTL)

	var dest string
	hit, err := svc.Get(context.Background(), "k1", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "hello", dest)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	require.NoError(t, svc.Set(context.Background(), "k1", "hello", 0))
	assert.Empty(t, repo.entries)

	var dest string
	hit, err := svc.Get(context.Background(), "k1", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceNilRepoIsNoop(t *testing.T) {
	svc := NewCacheService(nil, nil, time.Minute, zap.NewNop(), true)

	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k1", "hello", 0))
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := &mockCacheRepo{entries: map[string][]byte{"stats:overview:global": []byte(`1`)}}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Invalidate(context.Background(), "stats:*"))
	assert.Equal(t, []string{"stats:*"}, repo.patterns)
	assert.Empty(t, repo.entries)
}

func TestCacheServiceRecordsMetrics(t *testing.T) {
	repo := &mockCacheRepo{}
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Minute, zap.NewNop(), true)

	var dest string
	_, err := svc.Get(context.Background(), "k1", &dest)
	require.NoError(t, err)

	require.NoError(t, svc.Set(context.Background(), "k1", "hello", 0))
	hit, err := svc.Get(context.Background(), "k1", &dest)
	require.NoError(t, err)
	assert.True(t, hit)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.001)
}
