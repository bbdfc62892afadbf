package domain

import "context"

// RawCounts 概览统计的原始计数
type RawCounts struct {
	TotalCustomers   int64
	ActiveDefaults   int64
	PendingDefaults  int64
	ApprovedDefaults int64
	RejectedDefaults int64
	PendingRenewals  int64
	ApprovedRenewals int64
	RejectedRenewals int64
}

// NameCount 单个维度值的生效违约记录数
type NameCount struct {
	Name  string
	Count int64
}

// StatsRepository 统计聚合仓储，只读
type StatsRepository interface {
	// Counts 返回概览统计的原始计数
	Counts(ctx context.Context) (*RawCounts, error)
	// CountBySeverity 按严重程度统计当前生效的违约记录
	CountBySeverity(ctx context.Context) ([]NameCount, error)
	// CountByIndustry 按客户行业统计当前生效的违约记录
	CountByIndustry(ctx context.Context) ([]NameCount, error)
	// CountByRegion 按客户区域统计当前生效的违约记录
	CountByRegion(ctx context.Context) ([]NameCount, error)
}
