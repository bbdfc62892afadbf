package application

import (
	"context"

	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

// RenewalService 重生申请服务门面，整合命令服务和查询服务
type RenewalService struct {
	commandService *RenewalCommandService
	queryService   *RenewalQueryService
}

// NewRenewalService 创建重生申请服务门面实例
func NewRenewalService(
	repo domain.RenewalRepository,
	defaults domain.DefaultRecordGateway,
	reasons domain.ReasonGateway,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *RenewalService {
	return &RenewalService{
		commandService: NewRenewalCommandService(repo, defaults, reasons, publisher, m),
		queryService:   NewRenewalQueryService(repo),
	}
}

// CreateRenewal 创建重生申请
func (s *RenewalService) CreateRenewal(ctx context.Context, cmd CreateRenewalCommand) (*RenewalDTO, error) {
	return s.commandService.CreateRenewal(ctx, cmd)
}

// ApproveRenewal 审批重生申请
func (s *RenewalService) ApproveRenewal(ctx context.Context, cmd ApproveCommand) error {
	return s.commandService.ApproveRenewal(ctx, cmd)
}

// BatchApprove 批量审批重生申请
func (s *RenewalService) BatchApprove(ctx context.Context, cmd BatchApproveCommand) *BatchResultDTO {
	return s.commandService.BatchApprove(ctx, cmd)
}

// List 分页查询重生申请
func (s *RenewalService) List(ctx context.Context, q domain.ListQuery, scope identitydomain.DataScope) (*ListResult, error) {
	return s.queryService.List(ctx, q, scope)
}

// Detail 查询重生申请详情
func (s *RenewalService) Detail(ctx context.Context, renewalID string, scope identitydomain.DataScope) (*RenewalDTO, error) {
	return s.queryService.Detail(ctx, renewalID, scope)
}
