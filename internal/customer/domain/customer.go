package domain

import (
	"gorm.io/gorm"
)

// CustomerStatus 客户状态，只在 NORMAL/DEFAULT 之间切换
type CustomerStatus string

const (
	StatusNormal  CustomerStatus = "NORMAL"
	StatusDefault CustomerStatus = "DEFAULT"
)

// Customer 客户实体，违约/重生的长生命周期聚合根。
// status 是客户当前是否处于违约状态的唯一事实来源，
// 仅由两个工作流的审批步骤修改。
type Customer struct {
	gorm.Model
	CustomerCode         string         `gorm:"column:customer_code;type:varchar(32);uniqueIndex;not null"`
	CustomerName         string         `gorm:"column:customer_name;type:varchar(128);uniqueIndex;not null"`
	Industry             string         `gorm:"column:industry;type:varchar(64)"`
	Region               string         `gorm:"column:region;type:varchar(64)"`
	LatestExternalRating string         `gorm:"column:latest_external_rating;type:varchar(16)"`
	Status               CustomerStatus `gorm:"column:status;type:varchar(16);not null;default:'NORMAL'"`
}

func (Customer) TableName() string { return "customers" }

// NewCustomer 创建客户实体，状态默认 NORMAL
func NewCustomer(code, name, rating string) *Customer {
	return &Customer{
		CustomerCode:         code,
		CustomerName:         name,
		LatestExternalRating: rating,
		Status:               StatusNormal,
	}
}
