package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	customerdomain "github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	defaultdomain "github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	"github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/db"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

type renewalRepository struct {
	db *db.DB
}

func NewRenewalRepository(database *db.DB) domain.RenewalRepository {
	return &renewalRepository{db: database}
}

// createAttempts 串行化冲突回滚后的重试次数
const createAttempts = 3

// Create 实现 domain.RenewalRepository.Create。
// 服务层的前置校验与落库之间存在窗口，事务内重查客户状态和
// 待审申请，窗口内被并发改掉的在这里兜住。重查必须在 SERIALIZABLE
// 下执行：REPEATABLE READ 的计数是快照读，两个并发事务会各自数到
// 0 条待审申请然后都插入；串行化让计数持有共享锁，后到的一方
// 死锁回滚，重试时读到已提交的待审申请。
func (r *renewalRepository) Create(ctx context.Context, app *domain.RenewalApplication) error {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := r.createOnce(ctx, app)
		if err == nil {
			return nil
		}
		if !retryableTxError(err) {
			return err
		}
		lastErr = err
		// 回滚后 gorm 已往实体里写了主键，重试前必须清掉
		app.ID = 0
		logger.Warn(ctx, "renewal create hit serialization conflict, retrying",
			"renewal_id", app.RenewalID,
			"attempt", attempt+1,
		)
	}
	return fmt.Errorf("create renewal failed after %d attempts: %w", createAttempts, lastErr)
}

func (r *renewalRepository) createOnce(ctx context.Context, app *domain.RenewalApplication) error {
	return r.db.WithTxIsolation(ctx, "SERIALIZABLE", func(tx *gorm.DB) error {
		var cust customerdomain.Customer
		err := tx.Where("id = ? AND status = ?", app.CustomerID, customerdomain.StatusDefault).First(&cust).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCustomerNotInDefault
		}
		if err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&domain.RenewalApplication{}).
			Where("customer_id = ? AND status = ?", app.CustomerID, domain.StatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return domain.ErrPendingRenewalExists
		}

		return tx.Create(app).Error
	})
}

// retryableTxError 死锁和锁等待超时由 MySQL 回滚整个事务，可以安全重放
func retryableTxError(err error) bool {
	var me *gomysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == 1213 || me.Number == 1205
}

func (r *renewalRepository) GetByRenewalID(ctx context.Context, renewalID string) (*domain.RenewalApplication, error) {
	var app domain.RenewalApplication
	err := r.db.WithContext(ctx).Where("renewal_id = ?", renewalID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get renewal: %w", err)
	}
	return &app, nil
}

func (r *renewalRepository) List(ctx context.Context, q domain.ListQuery) ([]*domain.RenewalApplication, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.RenewalApplication{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CustomerName != "" {
		db = db.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(q.CustomerName)+"%")
	}
	if q.Applicant != "" {
		db = db.Where("applicant = ?", q.Applicant)
	}
	if q.CreatedFrom != nil {
		db = db.Where("created_at >= ?", q.CreatedFrom)
	}
	if q.CreatedTo != nil {
		db = db.Where("created_at <= ?", q.CreatedTo)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := utils.NewPagination(q.Page, q.PageSize, total)
	var apps []*domain.RenewalApplication
	if err := db.Order("created_at desc").Limit(p.Limit()).Offset(p.Offset()).Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list renewals: %w", err)
	}
	return apps, total, nil
}

func (r *renewalRepository) HasPending(ctx context.Context, customerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RenewalApplication{}).
		Where("customer_id = ? AND status = ?", customerID, domain.StatusPending).
		Count(&count).Error
	return count > 0, err
}

// SaveDecision 实现 domain.RenewalRepository.SaveDecision。
// 状态更新以 status=PENDING 为条件，并发的第二个审批命中 0 行，
// 返回 ErrAlreadyDecided。批准时停用该客户的全部违约记录（而非
// 只停用一条），客户状态回到 NORMAL。
func (r *renewalRepository) SaveDecision(ctx context.Context, app *domain.RenewalApplication) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&domain.RenewalApplication{}).
			Where("renewal_id = ? AND status = ?", app.RenewalID, domain.StatusPending).
			Updates(map[string]any{
				"status":         app.Status,
				"approver":       app.Approver,
				"approve_time":   app.ApproveTime,
				"approve_remark": app.ApproveRemark,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyDecided
		}

		if app.Status != domain.StatusApproved {
			return nil
		}

		if err := tx.Model(&defaultdomain.DefaultCustomer{}).
			Where("customer_id = ? AND is_active = ?", app.CustomerID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&customerdomain.Customer{}).
			Where("id = ?", app.CustomerID).
			Update("status", customerdomain.StatusNormal).Error
	})
}
