package domain

import "context"

// ListQuery 客户列表查询条件
type ListQuery struct {
	Page         int
	PageSize     int
	Status       CustomerStatus
	CustomerName string
}

type CustomerRepository interface {
	// GetByID 客户不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Customer, error)
	List(ctx context.Context, q ListQuery) ([]*Customer, int64, error)
}
