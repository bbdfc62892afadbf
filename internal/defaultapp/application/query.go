package application

import (
	"context"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// ApplicationQueryService 违约申请查询服务。
// 所有读取都先套用调用方的数据可见范围再返回。
type ApplicationQueryService struct {
	repo domain.ApplicationRepository
}

// NewApplicationQueryService 创建违约申请查询服务实例
func NewApplicationQueryService(repo domain.ApplicationRepository) *ApplicationQueryService {
	return &ApplicationQueryService{repo: repo}
}

// List 分页查询申请。own 范围强制以调用方为申请人过滤，
// 覆盖调用方自带的 applicant 条件。
func (s *ApplicationQueryService) List(ctx context.Context, q domain.ListQuery, scope identitydomain.DataScope) (*ListResult, error) {
	if owner, ok := scope.OwnerOnly(); ok {
		q.Applicant = owner
	}

	apps, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperrors.Wrap("list applications failed", err)
	}

	items := make([]ApplicationDTO, len(apps))
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

// Detail 查询申请详情。own 范围下非本人提交的申请与不存在同样返回
// not-found，调用方无法区分两者。
func (s *ApplicationQueryService) Detail(ctx context.Context, applicationID string, scope identitydomain.DataScope) (*ApplicationDetailDTO, error) {
	app, err := s.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Wrap("get application failed", err)
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}
	if owner, ok := scope.OwnerOnly(); ok && app.Applicant != owner {
		return nil, domain.ErrApplicationNotFound
	}

	reasonIDs, err := s.repo.ReasonIDs(ctx, app.ID)
	if err != nil {
		return nil, apperrors.Wrap("get application reasons failed", err)
	}
	attachments, err := s.repo.Attachments(ctx, app.ID)
	if err != nil {
		return nil, apperrors.Wrap("get application attachments failed", err)
	}

	detail := &ApplicationDetailDTO{
		ApplicationDTO: toDTO(app),
		DefaultReasons: reasonIDs,
		Attachments:    make([]AttachmentDTO, len(attachments)),
	}
	for i, a := range attachments {
		detail.Attachments[i] = AttachmentDTO{FileName: a.FileName, FileURL: a.FileURL}
	}
	if scope.Level == identitydomain.ScopeBasic {
		detail.sanitize()
	}
	return detail, nil
}
