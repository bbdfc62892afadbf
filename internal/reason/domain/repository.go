package domain

import "context"

type DefaultReasonRepository interface {
	Save(ctx context.Context, reason *DefaultReason) error
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*DefaultReason, error)
	// ListAll 按 sort_order 升序返回全部原因
	ListAll(ctx context.Context) ([]*DefaultReason, error)
	// ListEnabled 按 sort_order 升序返回启用的原因
	ListEnabled(ctx context.Context) ([]*DefaultReason, error)
	// EnabledIDs 返回 ids 中存在且启用的原因 id
	EnabledIDs(ctx context.Context, ids []uint) ([]uint, error)
	Delete(ctx context.Context, id uint) error
}

type RenewalReasonRepository interface {
	Save(ctx context.Context, reason *RenewalReason) error
	GetByID(ctx context.Context, id uint) (*RenewalReason, error)
	ListAll(ctx context.Context) ([]*RenewalReason, error)
	ListEnabled(ctx context.Context) ([]*RenewalReason, error)
	EnabledIDs(ctx context.Context, ids []uint) ([]uint, error)
	Delete(ctx context.Context, id uint) error
}
