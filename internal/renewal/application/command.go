package application

import (
	"context"
	"time"

	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

// RenewalCommandService 重生申请命令服务
type RenewalCommandService struct {
	repo      domain.RenewalRepository
	defaults  domain.DefaultRecordGateway
	reasons   domain.ReasonGateway
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewRenewalCommandService 创建重生申请命令服务实例
func NewRenewalCommandService(
	repo domain.RenewalRepository,
	defaults domain.DefaultRecordGateway,
	reasons domain.ReasonGateway,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *RenewalCommandService {
	return &RenewalCommandService{
		repo:      repo,
		defaults:  defaults,
		reasons:   reasons,
		publisher: publisher,
		metrics:   m,
	}
}

// CreateRenewal 创建重生申请。客户必须处于违约状态且无待审申请，
// 前置条件在仓储事务内再次校验，避免校验与落库之间被并发打穿。
func (s *RenewalCommandService) CreateRenewal(ctx context.Context, cmd CreateRenewalCommand) (*RenewalDTO, error) {
	if cmd.CustomerID == 0 {
		return nil, apperrors.Validation("customer id is required")
	}
	if cmd.RenewalReasonID == 0 {
		return nil, apperrors.Validation("renewal reason is required")
	}

	ok, err := s.reasons.Available(ctx, cmd.RenewalReasonID)
	if err != nil {
		return nil, apperrors.Wrap("check renewal reason failed", err)
	}
	if !ok {
		return nil, domain.ErrReasonNotAvailable
	}

	record, err := s.defaults.ActiveDefault(ctx, cmd.CustomerID)
	if err != nil {
		return nil, apperrors.Wrap("check default status failed", err)
	}
	if record == nil {
		return nil, domain.ErrCustomerNotInDefault
	}

	pending, err := s.repo.HasPending(ctx, record.CustomerID)
	if err != nil {
		return nil, apperrors.Wrap("check pending renewal failed", err)
	}
	if pending {
		return nil, domain.ErrPendingRenewalExists
	}

	app := domain.NewRenewalApplication(
		record.CustomerID,
		record.CustomerName,
		cmd.RenewalReasonID,
		cmd.Applicant,
		cmd.Remark,
	)
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.RenewalsSubmitted.Inc()
	s.publishEvent(ctx, "renewal.submitted", app.RenewalID, domain.RenewalSubmittedEvent{
		RenewalID:    app.RenewalID,
		CustomerID:   app.CustomerID,
		CustomerName: app.CustomerName,
		Applicant:    app.Applicant,
		Timestamp:    time.Now(),
	})

	logger.Info(ctx, "renewal application submitted",
		"renewal_id", app.RenewalID,
		"customer_name", app.CustomerName,
		"applicant", app.Applicant,
	)

	dto := toDTO(app)
	return &dto, nil
}

// ApproveRenewal 审批重生申请。批准时在同一事务内停用客户的全部
// 违约记录并把客户状态置回 NORMAL；驳回时仅更新申请自身。
func (s *RenewalCommandService) ApproveRenewal(ctx context.Context, cmd ApproveCommand) error {
	app, err := s.repo.GetByRenewalID(ctx, cmd.RenewalID)
	if err != nil {
		return apperrors.Wrap("get renewal failed", err)
	}
	if app == nil {
		return domain.ErrRenewalNotFound
	}

	if err := app.Decide(cmd.Approved, cmd.Approver, cmd.Remark); err != nil {
		return err
	}

	if err := s.repo.SaveDecision(ctx, app); err != nil {
		return err
	}

	s.metrics.RenewalsDecided.WithLabelValues(string(app.Status)).Inc()
	s.publishEvent(ctx, "renewal.decided", app.RenewalID, domain.RenewalDecidedEvent{
		RenewalID:  app.RenewalID,
		CustomerID: app.CustomerID,
		Status:     app.Status,
		Approver:   app.Approver,
		Timestamp:  time.Now(),
	})

	logger.Info(ctx, "renewal application decided",
		"renewal_id", app.RenewalID,
		"status", app.Status,
		"approver", cmd.Approver,
	)
	return nil
}

// BatchApprove 逐条审批，单条失败不影响其它条目，结果顺序与入参一致
func (s *RenewalCommandService) BatchApprove(ctx context.Context, cmd BatchApproveCommand) *BatchResultDTO {
	result := &BatchResultDTO{Details: make([]BatchItemResult, 0, len(cmd.Items))}

	for _, item := range cmd.Items {
		err := s.ApproveRenewal(ctx, ApproveCommand{ApproveItem: item, Approver: cmd.Approver})
		if err != nil {
			result.FailCount++
			result.Details = append(result.Details, BatchItemResult{
				RenewalID: item.RenewalID,
				Success:   false,
				Message:   apperrors.MessageOf(err),
			})
			continue
		}
		result.SuccessCount++
		result.Details = append(result.Details, BatchItemResult{
			RenewalID: item.RenewalID,
			Success:   true,
		})
	}
	return result
}

func (s *RenewalCommandService) publishEvent(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "publish renewal event failed", "topic", topic, "error", err)
	}
}
