package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// RenewalStatus 重生申请状态
type RenewalStatus string

const (
	StatusPending  RenewalStatus = "PENDING"
	StatusApproved RenewalStatus = "APPROVED"
	StatusRejected RenewalStatus = "REJECTED"
)

// RenewalApplication 重生（脱离违约）申请实体。
// customer_name 取自当前生效的违约客户记录快照。
// 同一客户任一时刻至多一条 PENDING 申请。
type RenewalApplication struct {
	gorm.Model
	RenewalID       string        `gorm:"column:renewal_id;type:varchar(32);uniqueIndex;not null"`
	CustomerID      uint          `gorm:"column:customer_id;index;not null"`
	CustomerName    string        `gorm:"column:customer_name;type:varchar(128);index;not null"`
	RenewalReasonID uint          `gorm:"column:renewal_reason_id;not null"`
	Status          RenewalStatus `gorm:"column:status;type:varchar(16);index;not null;default:'PENDING'"`
	Applicant       string        `gorm:"column:applicant;type:varchar(64);index;not null"`
	Remark          string        `gorm:"column:remark;type:varchar(512)"`
	Approver        string        `gorm:"column:approver;type:varchar(64)"`
	ApproveTime     *time.Time    `gorm:"column:approve_time"`
	ApproveRemark   string        `gorm:"column:approve_remark;type:varchar(512)"`
}

func (RenewalApplication) TableName() string { return "renewal_applications" }

// NewRenewalApplication 创建 PENDING 状态的重生申请，生成业务编号
func NewRenewalApplication(customerID uint, customerName string, reasonID uint, applicant, remark string) *RenewalApplication {
	return &RenewalApplication{
		RenewalID:       utils.NewBusinessID("REN"),
		CustomerID:      customerID,
		CustomerName:    customerName,
		RenewalReasonID: reasonID,
		Status:          StatusPending,
		Applicant:       applicant,
		Remark:          remark,
	}
}

// Decide 审批申请。仅 PENDING 状态可审批，重复审批返回 ErrAlreadyDecided。
func (r *RenewalApplication) Decide(approved bool, approver, remark string) error {
	if r.Status != StatusPending {
		return ErrAlreadyDecided
	}

	now := time.Now()
	if approved {
		r.Status = StatusApproved
	} else {
		r.Status = StatusRejected
	}
	r.Approver = approver
	r.ApproveTime = &now
	r.ApproveRemark = remark
	return nil
}

// ActiveDefaultRecord 当前生效的违约客户记录视图，由违约上下文提供
type ActiveDefaultRecord struct {
	CustomerID   uint
	CustomerName string
}
