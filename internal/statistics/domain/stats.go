package domain

import "github.com/shopspring/decimal"

// OverviewStats 全局概览统计
type OverviewStats struct {
	TotalCustomers   int64           `json:"total_customers"`
	ActiveDefaults   int64           `json:"active_defaults"`
	DefaultRate      decimal.Decimal `json:"default_rate"`
	PendingDefaults  int64           `json:"pending_defaults"`
	ApprovedDefaults int64           `json:"approved_defaults"`
	RejectedDefaults int64           `json:"rejected_defaults"`
	PendingRenewals  int64           `json:"pending_renewals"`
	ApprovedRenewals int64           `json:"approved_renewals"`
	RejectedRenewals int64           `json:"rejected_renewals"`
	// RenewalRate 已批准重生占已批准违约认定的百分比
	RenewalRate decimal.Decimal `json:"renewal_rate"`
}

// SeverityCount 按严重程度的违约分布
type SeverityCount struct {
	Severity string          `json:"severity"`
	Count    int64           `json:"count"`
	Percent  decimal.Decimal `json:"percent"`
}

// GroupCount 按维度（行业/区域）的违约分布
type GroupCount struct {
	Name    string          `json:"name"`
	Count   int64           `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// RateOf 计算 part/total 的百分比，保留两位小数，total 为 0 时返回 0
func RateOf(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
