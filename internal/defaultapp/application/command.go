package application

import (
	"context"
	"time"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
)

// ApplicationCommandService 违约申请命令服务
type ApplicationCommandService struct {
	repo      domain.ApplicationRepository
	reasons   domain.ReasonGateway
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewApplicationCommandService 创建违约申请命令服务实例
func NewApplicationCommandService(
	repo domain.ApplicationRepository,
	reasons domain.ReasonGateway,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *ApplicationCommandService {
	return &ApplicationCommandService{
		repo:      repo,
		reasons:   reasons,
		publisher: publisher,
		metrics:   m,
	}
}

// CreateApplication 创建违约申请。客户按名查找，不存在时在同一事务内创建。
func (s *ApplicationCommandService) CreateApplication(ctx context.Context, cmd CreateApplicationCommand) (*ApplicationDetailDTO, error) {
	if cmd.CustomerName == "" {
		return nil, domain.ErrCustomerNameRequired
	}
	if !cmd.Severity.Valid() {
		return nil, domain.ErrInvalidSeverity
	}
	if len(cmd.DefaultReasons) == 0 {
		return nil, domain.ErrNoReasons
	}

	// 入参里的重复原因只落一条关联
	reasonIDs := uniqueIDs(cmd.DefaultReasons)
	available, err := s.reasons.AvailableReasonIDs(ctx, reasonIDs)
	if err != nil {
		return nil, apperrors.Wrap("check default reasons failed", err)
	}
	if len(available) != len(reasonIDs) {
		return nil, domain.ErrReasonNotAvailable
	}

	app := domain.NewDefaultApplication(
		cmd.CustomerName,
		cmd.LatestExternalRating,
		cmd.Severity,
		cmd.Applicant,
		cmd.Remark,
	)

	attachments := make([]domain.Attachment, len(cmd.Attachments))
	for i, a := range cmd.Attachments {
		attachments[i] = domain.Attachment{FileName: a.FileName, FileURL: a.FileURL}
	}

	if err := s.repo.Create(ctx, app, reasonIDs, attachments); err != nil {
		return nil, apperrors.Wrap("create application failed", err)
	}

	s.metrics.ApplicationsSubmitted.Inc()
	s.publishEvent(ctx, "default.application.submitted", app.ApplicationID, domain.ApplicationSubmittedEvent{
		ApplicationID: app.ApplicationID,
		CustomerID:    app.CustomerID,
		CustomerName:  app.CustomerName,
		Severity:      app.Severity,
		Applicant:     app.Applicant,
		Timestamp:     time.Now(),
	})

	logger.Info(ctx, "default application submitted",
		"application_id", app.ApplicationID,
		"customer_name", app.CustomerName,
		"applicant", app.Applicant,
	)

	detail := &ApplicationDetailDTO{
		ApplicationDTO: toDTO(app),
		DefaultReasons: reasonIDs,
		Attachments:    make([]AttachmentDTO, len(cmd.Attachments)),
	}
	for i, a := range cmd.Attachments {
		detail.Attachments[i] = AttachmentDTO{FileName: a.FileName, FileURL: a.FileURL}
	}
	return detail, nil
}

// ApproveApplication 审批违约申请。批准时在同一事务内物化违约客户记录
// 并把客户状态置为 DEFAULT；驳回时仅更新申请自身。
func (s *ApplicationCommandService) ApproveApplication(ctx context.Context, cmd ApproveCommand) error {
	app, err := s.repo.GetByApplicationID(ctx, cmd.ApplicationID)
	if err != nil {
		return apperrors.Wrap("get application failed", err)
	}
	if app == nil {
		return domain.ErrApplicationNotFound
	}

	if err := app.Decide(cmd.Approved, cmd.Approver, cmd.Remark); err != nil {
		return err
	}

	if err := s.repo.SaveDecision(ctx, app); err != nil {
		return err
	}

	s.metrics.ApplicationsDecided.WithLabelValues(string(app.Status)).Inc()
	s.refreshActiveDefaultsGauge(ctx)
	s.publishEvent(ctx, "default.application.decided", app.ApplicationID, domain.ApplicationDecidedEvent{
		ApplicationID: app.ApplicationID,
		CustomerID:    app.CustomerID,
		Status:        app.Status,
		Approver:      app.Approver,
		Timestamp:     time.Now(),
	})

	logger.Info(ctx, "default application decided",
		"application_id", app.ApplicationID,
		"status", app.Status,
		"approver", cmd.Approver,
	)
	return nil
}

// BatchApprove 逐条审批，单条失败不影响其它条目，结果顺序与入参一致
func (s *ApplicationCommandService) BatchApprove(ctx context.Context, cmd BatchApproveCommand) *BatchResultDTO {
	result := &BatchResultDTO{Details: make([]BatchItemResult, 0, len(cmd.Items))}

	for _, item := range cmd.Items {
		err := s.ApproveApplication(ctx, ApproveCommand{ApproveItem: item, Approver: cmd.Approver})
		if err != nil {
			result.FailCount++
			result.Details = append(result.Details, BatchItemResult{
				ApplicationID: item.ApplicationID,
				Success:       false,
				Message:       apperrors.MessageOf(err),
			})
			continue
		}
		result.SuccessCount++
		result.Details = append(result.Details, BatchItemResult{
			ApplicationID: item.ApplicationID,
			Success:       true,
		})
	}
	return result
}

func (s *ApplicationCommandService) refreshActiveDefaultsGauge(ctx context.Context) {
	count, err := s.repo.CountActiveDefaults(ctx)
	if err != nil {
		logger.Warn(ctx, "count active defaults failed", "error", err)
		return
	}
	s.metrics.ActiveDefaults.Set(float64(count))
}

func (s *ApplicationCommandService) publishEvent(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "publish application event failed", "topic", topic, "error", err)
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
