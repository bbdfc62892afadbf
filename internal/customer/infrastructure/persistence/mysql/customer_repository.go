package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, q domain.ListQuery) ([]*domain.Customer, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Customer{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CustomerName != "" {
		db = db.Where("customer_name LIKE ?", "%"+q.CustomerName+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := utils.NewPagination(q.Page, q.PageSize, total)
	var customers []*domain.Customer
	if err := db.Order("created_at desc").Limit(p.Limit()).Offset(p.Offset()).Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

// NextCustomerCode 生成下一个顺序客户编号（CUST + 零填充序号）。
// 必须在 SERIALIZABLE 事务内调用，配合 customer_code 唯一约束
// 和上层的冲突重试，避免并发插入产生重复编号。
func NextCustomerCode(tx *gorm.DB) (string, error) {
	var maxSeq int64
	err := tx.Raw(
		"SELECT COALESCE(MAX(CAST(SUBSTRING(customer_code, 5) AS UNSIGNED)), 0) FROM customers",
	).Scan(&maxSeq).Error
	if err != nil {
		return "", fmt.Errorf("failed to compute next customer code: %w", err)
	}
	return fmt.Sprintf("CUST%03d", maxSeq+1), nil
}
