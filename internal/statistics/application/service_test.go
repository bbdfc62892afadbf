package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/defaultmanagement/internal/statistics/domain"
)

type fakeStatsRepo struct {
	counts   domain.RawCounts
	severity []domain.NameCount
	industry []domain.NameCount
	calls    int
}

func (f *fakeStatsRepo) Counts(_ context.Context) (*domain.RawCounts, error) {
	f.calls++
	counts := f.counts
	return &counts, nil
}

func (f *fakeStatsRepo) CountBySeverity(_ context.Context) ([]domain.NameCount, error) {
	f.calls++
	return f.severity, nil
}

func (f *fakeStatsRepo) CountByIndustry(_ context.Context) ([]domain.NameCount, error) {
	f.calls++
	return f.industry, nil
}

func (f *fakeStatsRepo) CountByRegion(_ context.Context) ([]domain.NameCount, error) {
	f.calls++
	return nil, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func TestOverview(t *testing.T) {
	repo := &fakeStatsRepo{counts: domain.RawCounts{
		TotalCustomers:   200,
		ActiveDefaults:   15,
		PendingDefaults:  3,
		ApprovedDefaults: 20,
		RejectedDefaults: 4,
		PendingRenewals:  2,
		ApprovedRenewals: 5,
		RejectedRenewals: 1,
	}}
	svc := NewStatisticsService(repo, newMemoryCache())

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(200), stats.TotalCustomers)
	assert.Equal(t, int64(15), stats.ActiveDefaults)
	assert.Equal(t, "7.5", stats.DefaultRate.String())
	assert.Equal(t, int64(4), stats.RejectedDefaults)
	assert.Equal(t, "25", stats.RenewalRate.String())
}

func TestOverviewUsesCache(t *testing.T) {
	repo := &fakeStatsRepo{counts: domain.RawCounts{TotalCustomers: 10, ActiveDefaults: 1}}
	svc := NewStatisticsService(repo, newMemoryCache())
	ctx := context.Background()

	_, err := svc.Overview(ctx)
	require.NoError(t, err)
	_, err = svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second call should be served from cache")
}

func TestOverviewWithoutCache(t *testing.T) {
	repo := &fakeStatsRepo{counts: domain.RawCounts{TotalCustomers: 10}}
	svc := NewStatisticsService(repo, nil)

	_, err := svc.Overview(context.Background())
	require.NoError(t, err)
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestBySeverity(t *testing.T) {
	repo := &fakeStatsRepo{severity: []domain.NameCount{
		{Name: "HIGH", Count: 6},
		{Name: "MEDIUM", Count: 3},
		{Name: "LOW", Count: 1},
	}}
	svc := NewStatisticsService(repo, newMemoryCache())

	out, err := svc.BySeverity(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "HIGH", out[0].Severity)
	assert.Equal(t, "60", out[0].Percent.String())
	assert.Equal(t, "30", out[1].Percent.String())
	assert.Equal(t, "10", out[2].Percent.String())
}

func TestByIndustry(t *testing.T) {
	repo := &fakeStatsRepo{industry: []domain.NameCount{
		{Name: "制造业", Count: 2},
		{Name: "UNKNOWN", Count: 1},
	}}
	svc := NewStatisticsService(repo, newMemoryCache())

	out, err := svc.ByIndustry(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "66.67", out[0].Percent.String())
}

func TestRateOf(t *testing.T) {
	assert.Equal(t, "0", domain.RateOf(5, 0).String())
	assert.Equal(t, "50", domain.RateOf(1, 2).String())
	assert.Equal(t, "33.33", domain.RateOf(1, 3).String())
	assert.Equal(t, "100", domain.RateOf(3, 3).String())
}
