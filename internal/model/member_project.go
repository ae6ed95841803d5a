package model

import (
	"time"
)

// MemberProjectModel 项目成员合约
// 一个项目与一个成员的雇佣关系，按里程碑顺序分期结算
type MemberProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId    int64 `json:"user_id" gorm:"not null;index:idx_member_project,unique"`
	ProjectId int64 `json:"project_id" gorm:"not null;index:idx_member_project,unique"`

	// 合约总金额（单位：分）
	Salary int64 `json:"salary" gorm:"not null"`

	// 项目方已预存、尚未发放的金额
	// 不变式: 0 <= escrowed <= salary
	Escrowed int64 `json:"escrowed" gorm:"default:0"`

	// 整体预计完成时间
	DateToComplete time.Time `json:"date_to_complete"`

	// 关联：按 sequence_no 升序的里程碑序列
	Milestones []MilestoneModel `json:"milestones,omitempty" gorm:"foreignKey:MemberProjectId"`
}

// TableName 自定义表名
func (MemberProjectModel) TableName() string {
	return "member_project"
}
