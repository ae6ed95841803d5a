package model

import (
	"time"
)

// DisputeModel 纠纷模型
type DisputeModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 对外展示的纠纷编号
	RefNo string `json:"ref_no" gorm:"uniqueIndex;not null"`

	ProjectId    int64 `json:"project_id" gorm:"not null;index"`
	FreelancerId int64 `json:"freelancer_id" gorm:"not null"`
	ReporterId   int64 `json:"reporter_id" gorm:"not null"`

	// 被冻结的里程碑；纠纷未关联到里程碑时为空
	MilestoneId *int64 `json:"milestone_id"`
	// 冻结前的里程碑状态，解决时据此恢复
	FrozenStatus MilestoneStatus `json:"frozen_status"`

	Reason string        `json:"reason" gorm:"type:text"`
	Status DisputeStatus `json:"status" gorm:"default:'open'"`

	ResolvedAt *time.Time `json:"resolved_at"`
}

// DisputeStatus 纠纷状态
type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"     // 待处理
	DisputeStatusResolved DisputeStatus = "resolved" // 已解决
)

// TableName 自定义表名
func (DisputeModel) TableName() string {
	return "dispute"
}
