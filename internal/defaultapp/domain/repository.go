package domain

import (
	"context"
	"time"
)

// ListQuery 申请列表查询条件
type ListQuery struct {
	Page         int
	PageSize     int
	Status       ApplicationStatus
	CustomerName string // 子串匹配，大小写不敏感
	Applicant    string
	Severity     Severity
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type ApplicationRepository interface {
	// Create 在单个事务内完成：按客户名查找客户，不存在则生成顺序
	// 客户编号并创建；插入申请、原因关联与附件。任一步失败整体回滚。
	Create(ctx context.Context, app *DefaultApplication, reasonIDs []uint, attachments []Attachment) error
	// GetByApplicationID 按业务编号查找，不存在时返回 (nil, nil)
	GetByApplicationID(ctx context.Context, applicationID string) (*DefaultApplication, error)
	// List 按条件分页查询，createTime 倒序，total 为同条件计数
	List(ctx context.Context, q ListQuery) ([]*DefaultApplication, int64, error)
	// ReasonIDs 返回申请关联的违约原因 id
	ReasonIDs(ctx context.Context, applicationRowID uint) ([]uint, error)
	// Attachments 返回申请的附件
	Attachments(ctx context.Context, applicationRowID uint) ([]Attachment, error)
	// SaveDecision 持久化审批结果。更新以 status=PENDING 为条件，
	// 命中 0 行返回 ErrAlreadyDecided；APPROVED 时在同一事务内
	// 物化违约客户记录、复制原因关联并把客户状态置为 DEFAULT。
	SaveDecision(ctx context.Context, app *DefaultApplication) error
	// CountActiveDefaults 当前处于违约状态的客户数
	CountActiveDefaults(ctx context.Context) (int64, error)
}

// ReasonGateway 违约原因目录网关，创建申请时校验引用
type ReasonGateway interface {
	// AvailableReasonIDs 返回 ids 中存在且启用的原因 id
	AvailableReasonIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
