package domain

import (
	"gorm.io/gorm"
)

// DefaultReason 违约原因目录项
type DefaultReason struct {
	gorm.Model
	Reason    string `gorm:"column:reason;type:varchar(255);not null"`
	Enabled   bool   `gorm:"column:enabled;not null;default:true"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
}

func (DefaultReason) TableName() string { return "default_reasons" }

// RenewalReason 重生原因目录项
type RenewalReason struct {
	gorm.Model
	Reason    string `gorm:"column:reason;type:varchar(255);not null"`
	Enabled   bool   `gorm:"column:enabled;not null;default:true"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
}

func (RenewalReason) TableName() string { return "renewal_reasons" }

// NewDefaultReason 创建违约原因
func NewDefaultReason(reason string, sortOrder int) *DefaultReason {
	return &DefaultReason{Reason: reason, Enabled: true, SortOrder: sortOrder}
}

// NewRenewalReason 创建重生原因
func NewRenewalReason(reason string, sortOrder int) *RenewalReason {
	return &RenewalReason{Reason: reason, Enabled: true, SortOrder: sortOrder}
}
