package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	customerdomain "github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	customermysql "github.com/wyfcoding/defaultmanagement/internal/customer/infrastructure/persistence/mysql"
	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	"github.com/wyfcoding/defaultmanagement/pkg/db"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// createAttempts 并发创建同名客户触碰唯一约束时的重试次数
const createAttempts = 3

type applicationRepository struct {
	db *db.DB
}

func NewApplicationRepository(database *db.DB) domain.ApplicationRepository {
	return &applicationRepository{db: database}
}

// Create 实现 domain.ApplicationRepository.Create。
// 客户查找/创建与编号生成在 SERIALIZABLE 事务内执行；并发插入同名
// 客户会触碰 customer_name 唯一约束，整个事务回滚后重试，第二次
// 走查找分支命中已创建的客户。
func (r *applicationRepository) Create(ctx context.Context, app *domain.DefaultApplication, reasonIDs []uint, attachments []domain.Attachment) error {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := r.createOnce(ctx, app, reasonIDs, attachments)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		lastErr = err
		resetForRetry(app, attachments)
		logger.Warn(ctx, "application create hit duplicate key, retrying",
			"application_id", app.ApplicationID,
			"attempt", attempt+1,
		)
	}
	return fmt.Errorf("create application failed after %d attempts: %w", createAttempts, lastErr)
}

// resetForRetry 回滚后 gorm 已往实体里写了主键，重试前必须清掉；
// 冲突的唯一键也可能是业务编号本身，原样重放只会撞上同一条记录，
// 所以编号一并重新生成
func resetForRetry(app *domain.DefaultApplication, attachments []domain.Attachment) {
	app.ID = 0
	app.CustomerID = 0
	app.ApplicationID = utils.NewBusinessID("APP")
	for i := range attachments {
		attachments[i].ID = 0
		attachments[i].ApplicationID = 0
	}
}

func (r *applicationRepository) createOnce(ctx context.Context, app *domain.DefaultApplication, reasonIDs []uint, attachments []domain.Attachment) error {
	return r.db.WithTxIsolation(ctx, "SERIALIZABLE", func(tx *gorm.DB) error {
		var cust customerdomain.Customer
		err := tx.Where("customer_name = ?", app.CustomerName).First(&cust).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			code, cerr := customermysql.NextCustomerCode(tx)
			if cerr != nil {
				return cerr
			}
			cust = *customerdomain.NewCustomer(code, app.CustomerName, app.LatestExternalRating)
			if cerr := tx.Create(&cust).Error; cerr != nil {
				return cerr
			}
		case err != nil:
			return err
		}

		app.CustomerID = cust.ID
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		links := make([]domain.ApplicationReason, len(reasonIDs))
		for i, rid := range reasonIDs {
			links[i] = domain.ApplicationReason{ApplicationID: app.ID, ReasonID: rid}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		if len(attachments) > 0 {
			for i := range attachments {
				attachments[i].ApplicationID = app.ID
			}
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *applicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*domain.DefaultApplication, error) {
	var app domain.DefaultApplication
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) List(ctx context.Context, q domain.ListQuery) ([]*domain.DefaultApplication, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.DefaultApplication{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CustomerName != "" {
		db = db.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(q.CustomerName)+"%")
	}
	if q.Applicant != "" {
		db = db.Where("applicant = ?", q.Applicant)
	}
	if q.Severity != "" {
		db = db.Where("severity = ?", q.Severity)
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
	var apps []*domain.DefaultApplication
	if err := db.Order("created_at desc").Limit(p.Limit()).Offset(p.Offset()).Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, total, nil
}

func (r *applicationRepository) ReasonIDs(ctx context.Context, applicationRowID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.ApplicationReason{}).
		Where("application_id = ?", applicationRowID).
		Pluck("reason_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get application reasons: %w", err)
	}
	return ids, nil
}

func (r *applicationRepository) Attachments(ctx context.Context, applicationRowID uint) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationRowID).Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}
	return attachments, nil
}

// SaveDecision 实现 domain.ApplicationRepository.SaveDecision。
// 状态更新以 status=PENDING 为条件，并发的第二个审批命中 0 行，
// 返回 ErrAlreadyDecided 而不是二次物化违约客户记录。
func (r *applicationRepository) SaveDecision(ctx context.Context, app *domain.DefaultApplication) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&domain.DefaultApplication{}).
			Where("application_id = ? AND status = ?", app.ApplicationID, domain.StatusPending).
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

		// 同一客户允许多份待审申请，后批准的替换先前的生效记录，
		// 每客户任一时刻至多一条 is_active=true
		if err := tx.Model(&domain.DefaultCustomer{}).
			Where("customer_id = ? AND is_active = ?", app.CustomerID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		dc := domain.NewDefaultCustomerFromApplication(app)
		if err := tx.Create(dc).Error; err != nil {
			return err
		}

		var reasonIDs []uint
		if err := tx.Model(&domain.ApplicationReason{}).
			Where("application_id = ?", app.ID).
			Pluck("reason_id", &reasonIDs).Error; err != nil {
			return err
		}
		if len(reasonIDs) > 0 {
			links := make([]domain.DefaultCustomerReason, len(reasonIDs))
			for i, rid := range reasonIDs {
				links[i] = domain.DefaultCustomerReason{DefaultCustomerID: dc.ID, ReasonID: rid}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return tx.Model(&customerdomain.Customer{}).
			Where("id = ?", app.CustomerID).
			Update("status", customerdomain.StatusDefault).Error
	})
}

func (r *applicationRepository) CountActiveDefaults(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DefaultCustomer{}).
		Where("is_active = ?", true).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}
