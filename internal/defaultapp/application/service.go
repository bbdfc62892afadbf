package application

import (
	"context"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

// DefaultApplicationService 违约申请服务门面，整合命令服务和查询服务
type DefaultApplicationService struct {
	commandService *ApplicationCommandService
	queryService   *ApplicationQueryService
}

// NewDefaultApplicationService 创建违约申请服务门面实例
func NewDefaultApplicationService(
	repo domain.ApplicationRepository,
	reasons domain.ReasonGateway,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *DefaultApplicationService {
	return &DefaultApplicationService{
		commandService: NewApplicationCommandService(repo, reasons, publisher, m),
		queryService:   NewApplicationQueryService(repo),
	}
}

// CreateApplication 创建违约申请
func (s *DefaultApplicationService) CreateApplication(ctx context.Context, cmd CreateApplicationCommand) (*ApplicationDetailDTO, error) {
	return s.commandService.CreateApplication(ctx, cmd)
}

// ApproveApplication 审批违约申请
func (s *DefaultApplicationService) ApproveApplication(ctx context.Context, cmd ApproveCommand) error {
	return s.commandService.ApproveApplication(ctx, cmd)
}

// BatchApprove 批量审批违约申请
func (s *DefaultApplicationService) BatchApprove(ctx context.Context, cmd BatchApproveCommand) *BatchResultDTO {
	return s.commandService.BatchApprove(ctx, cmd)
}

// List 分页查询违约申请
func (s *DefaultApplicationService) List(ctx context.Context, q domain.ListQuery, scope identitydomain.DataScope) (*ListResult, error) {
	return s.queryService.List(ctx, q, scope)
}

// Detail 查询违约申请详情
func (s *DefaultApplicationService) Detail(ctx context.Context, applicationID string, scope identitydomain.DataScope) (*ApplicationDetailDTO, error) {
	return s.queryService.Detail(ctx, applicationID, scope)
}
