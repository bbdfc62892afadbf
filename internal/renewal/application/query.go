package application

import (
	"context"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// RenewalQueryService 重生申请查询服务
type RenewalQueryService struct {
	repo domain.RenewalRepository
}

// NewRenewalQueryService 创建重生申请查询服务实例
func NewRenewalQueryService(repo domain.RenewalRepository) *RenewalQueryService {
	return &RenewalQueryService{repo: repo}
}

// List 分页查询申请。own 范围强制以调用方为申请人过滤。
func (s *RenewalQueryService) List(ctx context.Context, q domain.ListQuery, scope identitydomain.DataScope) (*ListResult, error) {
	if owner, ok := scope.OwnerOnly(); ok {
		q.Applicant = owner
	}

	apps, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperrors.Wrap("list renewals failed", err)
	}

	items := make([]RenewalDTO, len(apps))
	for i, app := range apps {
		items[i] = toDTO(app)
		if scope.Level == identitydomain.ScopeBasic {
			items[i].sanitize()
		}
	}
	return &ListResult{
		Items:      items,
		Pagination: utils.NewPagination(q.Page, q.PageSize, total),
	}, nil
}

// Detail 查询申请详情。own 范围下非本人提交的申请返回权限错误，
// 与不存在可区分，审批轨迹对操作员之间互不可见。
func (s *RenewalQueryService) Detail(ctx context.Context, renewalID string, scope identitydomain.DataScope) (*RenewalDTO, error) {
	app, err := s.repo.GetByRenewalID(ctx, renewalID)
	if err != nil {
		return nil, apperrors.Wrap("get renewal failed", err)
	}
	if app == nil {
		return nil, domain.ErrRenewalNotFound
	}
	if owner, ok := scope.OwnerOnly(); ok && app.Applicant != owner {
		return nil, domain.ErrNoPermission
	}

	dto := toDTO(app)
	if scope.Level == identitydomain.ScopeBasic {
		dto.sanitize()
	}
	return &dto, nil
}
