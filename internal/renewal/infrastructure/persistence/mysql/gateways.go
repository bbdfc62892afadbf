package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	customerdomain "github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	defaultdomain "github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	reasondomain "github.com/wyfcoding/defaultmanagement/internal/reason/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/db"
)

// defaultRecordGateway 违约上下文防腐层。按客户 ID 定位客户，再查其
// 当前生效的违约记录，客户名取违约记录上的快照。
type defaultRecordGateway struct {
	customers customerdomain.CustomerRepository
	db        *db.DB
}

func NewDefaultRecordGateway(customers customerdomain.CustomerRepository, database *db.DB) domain.DefaultRecordGateway {
	return &defaultRecordGateway{customers: customers, db: database}
}

func (g *defaultRecordGateway) ActiveDefault(ctx context.Context, customerID uint) (*domain.ActiveDefaultRecord, error) {
	cust, err := g.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cust == nil || cust.Status != customerdomain.StatusDefault {
		return nil, nil
	}

	var dc defaultdomain.DefaultCustomer
	err = g.db.WithContext(ctx).
		Where("customer_id = ? AND is_active = ?", cust.ID, true).
		Order("created_at desc").
		First(&dc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 客户状态与违约记录不同步，按未违约处理
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.ActiveDefaultRecord{
		CustomerID:   dc.CustomerID,
		CustomerName: dc.CustomerName,
	}, nil
}

// renewalReasonGateway 重生原因目录防腐层
type renewalReasonGateway struct {
	reasons reasondomain.RenewalReasonRepository
}

func NewRenewalReasonGateway(reasons reasondomain.RenewalReasonRepository) domain.ReasonGateway {
	return &renewalReasonGateway{reasons: reasons}
}

func (g *renewalReasonGateway) Available(ctx context.Context, id uint) (bool, error) {
	ids, err := g.reasons.EnabledIDs(ctx, []uint{id})
	if err != nil {
		return false, err
	}
	return len(ids) == 1, nil
}
