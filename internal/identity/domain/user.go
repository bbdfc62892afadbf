package domain

import (
	"gorm.io/gorm"
)

// Role 调用方角色
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleAuditor  Role = "AUDITOR"
	RoleUser     Role = "USER"
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleAuditor, RoleUser:
		return true
	}
	return false
}

// User 系统用户实体
type User struct {
	gorm.Model
	Username     string `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	DisplayName  string `gorm:"column:display_name;type:varchar(64)"`
	Role         Role   `gorm:"column:role;type:varchar(16);not null;default:'USER'"`
}

func (User) TableName() string { return "users" }

// NewUser 创建用户实体
func NewUser(username, passwordHash, displayName string, role Role) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Role:         role,
	}
}
