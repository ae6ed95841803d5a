package model

import (
	"time"
)

// UserModel 用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name  string   `json:"name" gorm:"not null" binding:"required"`
	Email string   `json:"email" gorm:"uniqueIndex"`
	Role  UserRole `json:"role" gorm:"default:'freelancer'"`

	// 可支配余额（单位：分）
	// 只允许结算引擎和充值/提现流程修改
	Amount int64 `json:"amount" gorm:"default:0"`
}

// UserRole 用户角色
type UserRole string

const (
	UserRoleOwner      UserRole = "owner"      // 项目方
	UserRoleFreelancer UserRole = "freelancer" // 自由职业者
	UserRoleAdmin      UserRole = "admin"      // 平台管理员
)

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}
