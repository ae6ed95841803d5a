package model

import (
	"time"
)

// HistoryAmountModel 资金流水记录
// 只追加，不修改不删除，作为余额变动的审计凭证
type HistoryAmountModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId    int64 `json:"user_id" gorm:"not null;index"`
	ProjectId int64 `json:"project_id" gorm:"index"`

	// 金额恒为正，方向由 direction 区分
	Amount    int64         `json:"amount" gorm:"not null"`
	Direction FlowDirection `json:"direction" gorm:"not null"`
}

// FlowDirection 资金流向
type FlowDirection string

const (
	DirectionFromProject FlowDirection = "from_project" // 项目发放给成员
	DirectionToProject   FlowDirection = "to_project"   // 项目方支出
)

// TableName 自定义表名
func (HistoryAmountModel) TableName() string {
	return "history_amount"
}
