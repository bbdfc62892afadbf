package domain

import (
	"context"
	"time"
)

// ListQuery 重生申请列表查询条件
type ListQuery struct {
	Page         int
	PageSize     int
	Status       RenewalStatus
	CustomerName string // 子串匹配，大小写不敏感
	Applicant    string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type RenewalRepository interface {
	// Create 在单个事务内落库。客户处于违约状态和无待审申请这两个
	// 前置条件在事务内重新校验，失败返回对应的领域错误。
	Create(ctx context.Context, app *RenewalApplication) error
	// GetByRenewalID 按业务编号查找，不存在时返回 (nil, nil)
	GetByRenewalID(ctx context.Context, renewalID string) (*RenewalApplication, error)
	// List 按条件分页查询，createTime 倒序，total 为同条件计数
	List(ctx context.Context, q ListQuery) ([]*RenewalApplication, int64, error)
	// HasPending 客户是否已有待审批的重生申请
	HasPending(ctx context.Context, customerID uint) (bool, error)
	// SaveDecision 持久化审批结果。更新以 status=PENDING 为条件，
	// 命中 0 行返回 ErrAlreadyDecided；APPROVED 时在同一事务内
	// 停用客户的全部违约记录并把客户状态置回 NORMAL。
	SaveDecision(ctx context.Context, app *RenewalApplication) error
}

// DefaultRecordGateway 违约上下文网关，查询客户当前的违约状态
type DefaultRecordGateway interface {
	// ActiveDefault 返回客户当前生效的违约记录，客户不存在或
	// 不处于违约状态时返回 (nil, nil)
	ActiveDefault(ctx context.Context, customerID uint) (*ActiveDefaultRecord, error)
}

// ReasonGateway 重生原因目录网关，创建申请时校验引用
type ReasonGateway interface {
	// Available 原因存在且启用时返回 true
	Available(ctx context.Context, id uint) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
