package application

import (
	"context"
	"time"

	"github.com/wyfcoding/defaultmanagement/internal/statistics/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
)

// Cache 统计结果缓存端口，pkg/cache 的 Redis 实现满足该接口
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	cacheKeyOverview = "stats:overview"
	cacheKeySeverity = "stats:severity"
	cacheKeyIndustry = "stats:industry"
	cacheKeyRegion   = "stats:region"

	cacheTTL = 5 * time.Minute
)

// StatisticsService 统计查询服务。聚合查询全表扫描偏重，结果短时
// 缓存，缓存故障降级为直查。
type StatisticsService struct {
	repo  domain.StatsRepository
	cache Cache
}

// NewStatisticsService 创建统计查询服务实例
func NewStatisticsService(repo domain.StatsRepository, cache Cache) *StatisticsService {
	return &StatisticsService{repo: repo, cache: cache}
}

// Overview 全局概览统计
func (s *StatisticsService) Overview(ctx context.Context) (*domain.OverviewStats, error) {
	var cached domain.OverviewStats
	if s.fromCache(ctx, cacheKeyOverview, &cached) {
		return &cached, nil
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, apperrors.Wrap("load overview stats failed", err)
	}

	stats := &domain.OverviewStats{
		TotalCustomers:   counts.TotalCustomers,
		ActiveDefaults:   counts.ActiveDefaults,
		DefaultRate:      domain.RateOf(counts.ActiveDefaults, counts.TotalCustomers),
		PendingDefaults:  counts.PendingDefaults,
		ApprovedDefaults: counts.ApprovedDefaults,
		RejectedDefaults: counts.RejectedDefaults,
		PendingRenewals:  counts.PendingRenewals,
		ApprovedRenewals: counts.ApprovedRenewals,
		RejectedRenewals: counts.RejectedRenewals,
		RenewalRate:      domain.RateOf(counts.ApprovedRenewals, counts.ApprovedDefaults),
	}
	s.toCache(ctx, cacheKeyOverview, stats)
	return stats, nil
}

// BySeverity 当前生效违约记录按严重程度的分布
func (s *StatisticsService) BySeverity(ctx context.Context) ([]domain.SeverityCount, error) {
	var cached []domain.SeverityCount
	if s.fromCache(ctx, cacheKeySeverity, &cached) {
		return cached, nil
	}

	rows, err := s.repo.CountBySeverity(ctx)
	if err != nil {
		return nil, apperrors.Wrap("load severity stats failed", err)
	}

	total := sumCounts(rows)
	out := make([]domain.SeverityCount, len(rows))
	for i, row := range rows {
		out[i] = domain.SeverityCount{
			Severity: row.Name,
			Count:    row.Count,
			Percent:  domain.RateOf(row.Count, total),
		}
	}
	s.toCache(ctx, cacheKeySeverity, out)
	return out, nil
}

// ByIndustry 当前生效违约记录按客户行业的分布
func (s *StatisticsService) ByIndustry(ctx context.Context) ([]domain.GroupCount, error) {
	return s.groupStats(ctx, cacheKeyIndustry, s.repo.CountByIndustry)
}

// ByRegion 当前生效违约记录按客户区域的分布
func (s *StatisticsService) ByRegion(ctx context.Context) ([]domain.GroupCount, error) {
	return s.groupStats(ctx, cacheKeyRegion, s.repo.CountByRegion)
}

func (s *StatisticsService) groupStats(ctx context.Context, key string, load func(context.Context) ([]domain.NameCount, error)) ([]domain.GroupCount, error) {
	var cached []domain.GroupCount
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := load(ctx)
	if err != nil {
		return nil, apperrors.Wrap("load group stats failed", err)
	}

	total := sumCounts(rows)
	out := make([]domain.GroupCount, len(rows))
	for i, row := range rows {
		out[i] = domain.GroupCount{
			Name:    row.Name,
			Count:   row.Count,
			Percent: domain.RateOf(row.Count, total),
		}
	}
	s.toCache(ctx, key, out)
	return out, nil
}

func (s *StatisticsService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warn(ctx, "stats cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *StatisticsService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, cacheTTL); err != nil {
		logger.Warn(ctx, "stats cache write failed", "key", key, "error", err)
	}
}

func sumCounts(rows []domain.NameCount) int64 {
	var total int64
	for _, row := range rows {
		total += row.Count
	}
	return total
}
