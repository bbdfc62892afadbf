package mysql

import (
	"context"

	customerdomain "github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	defaultdomain "github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	renewaldomain "github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/internal/statistics/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/db"
)

type statsRepository struct {
	db *db.DB
}

func NewStatsRepository(database *db.DB) domain.StatsRepository {
	return &statsRepository{db: database}
}

func (r *statsRepository) Counts(ctx context.Context) (*domain.RawCounts, error) {
	var counts domain.RawCounts
	g := r.db.WithContext(ctx)

	if err := g.Model(&customerdomain.Customer{}).Count(&counts.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := g.Model(&defaultdomain.DefaultCustomer{}).
		Where("is_active = ?", true).
		Distinct("customer_id").
		Count(&counts.ActiveDefaults).Error; err != nil {
		return nil, err
	}
	appCounts := []struct {
		status defaultdomain.ApplicationStatus
		dest   *int64
	}{
		{defaultdomain.StatusPending, &counts.PendingDefaults},
		{defaultdomain.StatusApproved, &counts.ApprovedDefaults},
		{defaultdomain.StatusRejected, &counts.RejectedDefaults},
	}
	for _, ac := range appCounts {
		if err := g.Model(&defaultdomain.DefaultApplication{}).
			Where("status = ?", ac.status).
			Count(ac.dest).Error; err != nil {
			return nil, err
		}
	}

	renewalCounts := []struct {
		status renewaldomain.RenewalStatus
		dest   *int64
	}{
		{renewaldomain.StatusPending, &counts.PendingRenewals},
		{renewaldomain.StatusApproved, &counts.ApprovedRenewals},
		{renewaldomain.StatusRejected, &counts.RejectedRenewals},
	}
	for _, rc := range renewalCounts {
		if err := g.Model(&renewaldomain.RenewalApplication{}).
			Where("status = ?", rc.status).
			Count(rc.dest).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}

func (r *statsRepository) CountBySeverity(ctx context.Context) ([]domain.NameCount, error) {
	var rows []domain.NameCount
	err := r.db.WithContext(ctx).Model(&defaultdomain.DefaultCustomer{}).
		Select("severity AS name, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("severity").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}

// CountByIndustry 行业维度挂在客户表上，违约记录关联客户后分组。
// 行业为空的归入 UNKNOWN。
func (r *statsRepository) CountByIndustry(ctx context.Context) ([]domain.NameCount, error) {
	return r.countByCustomerField(ctx, "industry")
}

func (r *statsRepository) CountByRegion(ctx context.Context) ([]domain.NameCount, error) {
	return r.countByCustomerField(ctx, "region")
}

func (r *statsRepository) countByCustomerField(ctx context.Context, field string) ([]domain.NameCount, error) {
	var rows []domain.NameCount
	err := r.db.WithContext(ctx).Model(&defaultdomain.DefaultCustomer{}).
		Select("COALESCE(NULLIF(customers."+field+", ''), 'UNKNOWN') AS name, COUNT(*) AS count").
		Joins("JOIN customers ON customers.id = default_customers.customer_id").
		Where("default_customers.is_active = ?", true).
		Group("name").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}
