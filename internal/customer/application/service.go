package application

import (
	"context"

	"github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/apperrors"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// CustomerDTO 客户视图
type CustomerDTO struct {
	ID                   uint   `json:"id"`
	CustomerCode         string `json:"customer_code"`
	CustomerName         string `json:"customer_name"`
	Industry             string `json:"industry,omitempty"`
	Region               string `json:"region,omitempty"`
	LatestExternalRating string `json:"latest_external_rating,omitempty"`
	Status               string `json:"status"`
	CreatedAt            int64  `json:"created_at"`
}

// ListResult 分页结果
type ListResult struct {
	Items      []CustomerDTO     `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

// CustomerQueryService 客户登记册查询服务
type CustomerQueryService struct {
	repo domain.CustomerRepository
}

// NewCustomerQueryService 创建客户查询服务实例
func NewCustomerQueryService(repo domain.CustomerRepository) *CustomerQueryService {
	return &CustomerQueryService{repo: repo}
}

// List 分页查询客户
func (s *CustomerQueryService) List(ctx context.Context, q domain.ListQuery) (*ListResult, error) {
	customers, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperrors.Wrap("list customers failed", err)
	}

	items := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		items[i] = toDTO(c)
	}
	return &ListResult{
		Items:      items,
		Pagination: utils.NewPagination(q.Page, q.PageSize, total),
	}, nil
}

// Get 查询单个客户
func (s *CustomerQueryService) Get(ctx context.Context, id uint) (*CustomerDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap("get customer failed", err)
	}
	if c == nil {
		return nil, apperrors.NotFound("customer not found")
	}
	dto := toDTO(c)
	return &dto, nil
}

func toDTO(c *domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:                   c.ID,
		CustomerCode:         c.CustomerCode,
		CustomerName:         c.CustomerName,
		Industry:             c.Industry,
		Region:               c.Region,
		LatestExternalRating: c.LatestExternalRating,
		Status:               string(c.Status),
		CreatedAt:            c.CreatedAt.Unix(),
	}
}
