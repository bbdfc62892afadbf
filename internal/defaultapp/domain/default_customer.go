package domain

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCustomer 违约客户记录，一次违约事件对应一行。
// 同一 customer_id 任一时刻至多一行 is_active=true，
// 这是"当前处于违约状态"的标记，区别于申请流水的审计历史。
// 记录只停用不删除，保留完整历史。
type DefaultCustomer struct {
	gorm.Model
	CustomerID           uint      `gorm:"column:customer_id;index;not null"`
	ApplicationID        string    `gorm:"column:application_id;type:varchar(32);not null"`
	CustomerName         string    `gorm:"column:customer_name;type:varchar(128);not null"`
	Severity             Severity  `gorm:"column:severity;type:varchar(8);not null"`
	Applicant            string    `gorm:"column:applicant;type:varchar(64);not null"`
	ApplicationTime      time.Time `gorm:"column:application_time;not null"`
	Approver             string    `gorm:"column:approver;type:varchar(64);not null"`
	ApproveTime          time.Time `gorm:"column:approve_time;not null"`
	LatestExternalRating string    `gorm:"column:latest_external_rating;type:varchar(16)"`
	IsActive             bool      `gorm:"column:is_active;index;not null;default:true"`
}

func (DefaultCustomer) TableName() string { return "default_customers" }

// NewDefaultCustomerFromApplication 由已批准的申请物化违约客户记录
func NewDefaultCustomerFromApplication(app *DefaultApplication) *DefaultCustomer {
	dc := &DefaultCustomer{
		CustomerID:           app.CustomerID,
		ApplicationID:        app.ApplicationID,
		CustomerName:         app.CustomerName,
		Severity:             app.Severity,
		Applicant:            app.Applicant,
		ApplicationTime:      app.CreatedAt,
		Approver:             app.Approver,
		LatestExternalRating: app.LatestExternalRating,
		IsActive:             true,
	}
	if app.ApproveTime != nil {
		dc.ApproveTime = *app.ApproveTime
	}
	return dc
}

// DefaultCustomerReason 违约客户记录与违约原因的关联，审批时从申请复制
type DefaultCustomerReason struct {
	gorm.Model
	DefaultCustomerID uint `gorm:"column:default_customer_id;index;not null"`
	ReasonID          uint `gorm:"column:reason_id;not null"`
}

func (DefaultCustomerReason) TableName() string { return "default_customer_reasons" }
