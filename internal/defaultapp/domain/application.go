package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/defaultmanagement/pkg/utils"
)

// ApplicationStatus 违约申请状态
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusApproved ApplicationStatus = "APPROVED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// Severity 违约严重程度
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Valid 校验严重程度取值
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// DefaultApplication 违约认定申请实体。
// customer_name 是创建时刻的快照，客户后续改名不回写历史记录。
// PENDING 是唯一可变状态，进入终态后不可再次审批。
type DefaultApplication struct {
	gorm.Model
	ApplicationID        string            `gorm:"column:application_id;type:varchar(32);uniqueIndex;not null"`
	CustomerID           uint              `gorm:"column:customer_id;index;not null"`
	CustomerName         string            `gorm:"column:customer_name;type:varchar(128);index;not null"`
	LatestExternalRating string            `gorm:"column:latest_external_rating;type:varchar(16)"`
	Severity             Severity          `gorm:"column:severity;type:varchar(8);not null"`
	Status               ApplicationStatus `gorm:"column:status;type:varchar(16);index;not null;default:'PENDING'"`
	Applicant            string            `gorm:"column:applicant;type:varchar(64);index;not null"`
	Remark               string            `gorm:"column:remark;type:varchar(512)"`
	Approver             string            `gorm:"column:approver;type:varchar(64)"`
	ApproveTime          *time.Time        `gorm:"column:approve_time"`
	ApproveRemark        string            `gorm:"column:approve_remark;type:varchar(512)"`
}

func (DefaultApplication) TableName() string { return "default_applications" }

// NewDefaultApplication 创建 PENDING 状态的违约申请，生成业务编号
func NewDefaultApplication(customerName, rating string, severity Severity, applicant, remark string) *DefaultApplication {
	return &DefaultApplication{
		ApplicationID:        utils.NewBusinessID("APP"),
		CustomerName:         customerName,
		LatestExternalRating: rating,
		Severity:             severity,
		Status:               StatusPending,
		Applicant:            applicant,
		Remark:               remark,
	}
}

// Decide 审批申请。仅 PENDING 状态可审批，重复审批返回 ErrAlreadyDecided。
func (a *DefaultApplication) Decide(approved bool, approver, remark string) error {
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}

	now := time.Now()
	if approved {
		a.Status = StatusApproved
	} else {
		a.Status = StatusRejected
	}
	a.Approver = approver
	a.ApproveTime = &now
	a.ApproveRemark = remark
	return nil
}

// ApplicationReason 申请与违约原因的关联
type ApplicationReason struct {
	gorm.Model
	ApplicationID uint `gorm:"column:application_id;index;not null"`
	ReasonID      uint `gorm:"column:reason_id;not null"`
}

func (ApplicationReason) TableName() string { return "application_reasons" }

// Attachment 申请附件
type Attachment struct {
	gorm.Model
	ApplicationID uint   `gorm:"column:application_id;index;not null"`
	FileName      string `gorm:"column:file_name;type:varchar(255);not null"`
	FileURL       string `gorm:"column:file_url;type:varchar(512);not null"`
}

func (Attachment) TableName() string { return "attachments" }
