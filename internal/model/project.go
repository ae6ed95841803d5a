package model

import (
	"time"
)

// ProjectModel 项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`

	// 项目方
	OwnerId int64 `json:"owner_id" gorm:"not null;index"`

	// 状态（由各成员当前阶段推导）
	Status ProjectStatus `json:"status" gorm:"default:'pending'"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending     ProjectStatus = "pending"              // 待接单（尚无成员）
	ProjectStatusProcessing  ProjectStatus = "processing"           // 进行中
	ProjectStatusMemberReady ProjectStatus = "pending_member_ready" // 等待成员开工
	ProjectStatusComplete    ProjectStatus = "complete"             // 已完成
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
