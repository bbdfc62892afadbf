package application

import (
	"context"

	"github.com/wyfcoding/defaultmanagement/internal/reason/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
)

// ReasonDTO 原因目录视图
type ReasonDTO struct {
	ID        uint   `json:"id"`
	Reason    string `json:"reason"`
	Enabled   bool   `json:"enabled"`
	SortOrder int    `json:"sort_order"`
}

// CreateReasonCommand 创建原因命令
type CreateReasonCommand struct {
	Reason    string
	SortOrder int
}

// UpdateReasonCommand 更新原因命令
type UpdateReasonCommand struct {
	ID        uint
	Reason    string
	Enabled   *bool
	SortOrder *int
}

// ReasonService 违约/重生原因目录服务
type ReasonService struct {
	defaultRepo domain.DefaultReasonRepository
	renewalRepo domain.RenewalReasonRepository
}

// NewReasonService 创建原因目录服务实例
func NewReasonService(defaultRepo domain.DefaultReasonRepository, renewalRepo domain.RenewalReasonRepository) *ReasonService {
	return &ReasonService{defaultRepo: defaultRepo, renewalRepo: renewalRepo}
}

// CreateDefaultReason 新增违约原因
func (s *ReasonService) CreateDefaultReason(ctx context.Context, cmd CreateReasonCommand) (*ReasonDTO, error) {
	if cmd.Reason == "" {
		return nil, apperrors.Validation("reason text is required")
	}
	r := domain.NewDefaultReason(cmd.Reason, cmd.SortOrder)
	if err := s.defaultRepo.Save(ctx, r); err != nil {
		return nil, apperrors.Wrap("save default reason failed", err)
	}
	dto := defaultToDTO(r)
	return &dto, nil
}

// UpdateDefaultReason 更新违约原因（文本、启用状态、排序）
func (s *ReasonService) UpdateDefaultReason(ctx context.Context, cmd UpdateReasonCommand) (*ReasonDTO, error) {
	r, err := s.defaultRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, apperrors.Wrap("get default reason failed", err)
	}
	if r == nil {
		return nil, apperrors.NotFound("default reason not found")
	}

	if cmd.Reason != "" {
		r.Reason = cmd.Reason
	}
	if cmd.Enabled != nil {
		r.Enabled = *cmd.Enabled
	}
	if cmd.SortOrder != nil {
		r.SortOrder = *cmd.SortOrder
	}
	if err := s.defaultRepo.Save(ctx, r); err != nil {
		return nil, apperrors.Wrap("update default reason failed", err)
	}
	dto := defaultToDTO(r)
	return &dto, nil
}

// DeleteDefaultReason 删除违约原因，引用约束冲突由存储层错误向上传播
func (s *ReasonService) DeleteDefaultReason(ctx context.Context, id uint) error {
	r, err := s.defaultRepo.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap("get default reason failed", err)
	}
	if r == nil {
		return apperrors.NotFound("default reason not found")
	}
	return s.defaultRepo.Delete(ctx, id)
}

// ListDefaultReasons 查询违约原因目录
func (s *ReasonService) ListDefaultReasons(ctx context.Context, enabledOnly bool) ([]ReasonDTO, error) {
	var (
		reasons []*domain.DefaultReason
		err     error
	)
	if enabledOnly {
		reasons, err = s.defaultRepo.ListEnabled(ctx)
	} else {
		reasons, err = s.defaultRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, apperrors.Wrap("list default reasons failed", err)
	}

	dtos := make([]ReasonDTO, len(reasons))
	for i, r := range reasons {
		dtos[i] = defaultToDTO(r)
	}
	return dtos, nil
}

// CreateRenewalReason 新增重生原因
func (s *ReasonService) CreateRenewalReason(ctx context.Context, cmd CreateReasonCommand) (*ReasonDTO, error) {
	if cmd.Reason == "" {
		return nil, apperrors.Validation("reason text is required")
	}
	r := domain.NewRenewalReason(cmd.Reason, cmd.SortOrder)
	if err := s.renewalRepo.Save(ctx, r); err != nil {
		return nil, apperrors.Wrap("save renewal reason failed", err)
	}
	dto := renewalToDTO(r)
	return &dto, nil
}

// UpdateRenewalReason 更新重生原因
func (s *ReasonService) UpdateRenewalReason(ctx context.Context, cmd UpdateReasonCommand) (*ReasonDTO, error) {
	r, err := s.renewalRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, apperrors.Wrap("get renewal reason failed", err)
	}
	if r == nil {
		return nil, apperrors.NotFound("renewal reason not found")
	}

	if cmd.Reason != "" {
		r.Reason = cmd.Reason
	}
	if cmd.Enabled != nil {
		r.Enabled = *cmd.Enabled
	}
	if cmd.SortOrder != nil {
		r.SortOrder = *cmd.SortOrder
	}
	if err := s.renewalRepo.Save(ctx, r); err != nil {
		return nil, apperrors.Wrap("update renewal reason failed", err)
	}
	dto := renewalToDTO(r)
	return &dto, nil
}

// DeleteRenewalReason 删除重生原因
func (s *ReasonService) DeleteRenewalReason(ctx context.Context, id uint) error {
	r, err := s.renewalRepo.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap("get renewal reason failed", err)
	}
	if r == nil {
		return apperrors.NotFound("renewal reason not found")
	}
	return s.renewalRepo.Delete(ctx, id)
}

// ListRenewalReasons 查询启用的重生原因，按 sort_order 升序
func (s *ReasonService) ListRenewalReasons(ctx context.Context) ([]ReasonDTO, error) {
	reasons, err := s.renewalRepo.ListEnabled(ctx)
	if err != nil {
		return nil, apperrors.Wrap("list renewal reasons failed", err)
	}

	dtos := make([]ReasonDTO, len(reasons))
	for i, r := range reasons {
		dtos[i] = renewalToDTO(r)
	}
	return dtos, nil
}

func defaultToDTO(r *domain.DefaultReason) ReasonDTO {
	return ReasonDTO{ID: r.ID, Reason: r.Reason, Enabled: r.Enabled, SortOrder: r.SortOrder}
}

func renewalToDTO(r *domain.RenewalReason) ReasonDTO {
	return ReasonDTO{ID: r.ID, Reason: r.Reason, Enabled: r.Enabled, SortOrder: r.SortOrder}
}
