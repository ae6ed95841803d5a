package model

import (
	"time"
)

// MilestoneModel 里程碑模型
// 顺序一经创建不可变，sequence_no 从 1 开始连续编号
type MilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MemberProjectId int64 `json:"member_project_id" gorm:"not null;index:idx_milestone_seq,unique"`
	SequenceNo      int   `json:"sequence_no" gorm:"not null;index:idx_milestone_seq,unique"`

	// 本里程碑分配金额（单位：分）
	Salary int64 `json:"salary" gorm:"not null"`
	// 尚未发放金额，创建时等于 salary，结算后归零
	SalaryUnpaid int64 `json:"salary_unpaid" gorm:"not null"`

	// 预计/实际完成时间
	DayToDone time.Time `json:"day_to_done"`
	// 发放时间，结算前为空
	DayToPayment *time.Time `json:"day_to_payment"`

	Status MilestoneStatus `json:"status" gorm:"default:'not_ready'"`

	// 仅在 status = disputed 时有值，纠纷解决后清空
	DisputeId *int64 `json:"dispute_id" gorm:"index"`
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusNotReady   MilestoneStatus = "not_ready"  // 未开工
	MilestoneStatusProcessing MilestoneStatus = "processing" // 进行中
	MilestoneStatusPaying     MilestoneStatus = "paying"     // 待结算
	MilestoneStatusComplete   MilestoneStatus = "complete"   // 已结算（终态）
	MilestoneStatusDisputed   MilestoneStatus = "disputed"   // 纠纷冻结
)

// milestoneTransitions 里程碑状态转换表
// 结算引擎可从任意非冻结状态直接推进到 complete；
// disputed 只能回到被冻结前的状态
var milestoneTransitions = map[MilestoneStatus]map[MilestoneStatus]bool{
	MilestoneStatusNotReady: {
		MilestoneStatusProcessing: true,
		MilestoneStatusPaying:     true,
		MilestoneStatusComplete:   true,
		MilestoneStatusDisputed:   true,
	},
	MilestoneStatusProcessing: {
		MilestoneStatusPaying:   true,
		MilestoneStatusComplete: true,
		MilestoneStatusDisputed: true,
	},
	MilestoneStatusPaying: {
		MilestoneStatusComplete: true,
		MilestoneStatusDisputed: true,
	},
	MilestoneStatusDisputed: {
		MilestoneStatusNotReady:   true,
		MilestoneStatusProcessing: true,
		MilestoneStatusPaying:     true,
	},
	MilestoneStatusComplete: {},
}

// CanTransitionTo 校验状态转换是否合法
func (s MilestoneStatus) CanTransitionTo(target MilestoneStatus) bool {
	allowed, ok := milestoneTransitions[s]
	if !ok {
		return false
	}
	return allowed[target]
}

// IsTerminal 是否为终态
func (s MilestoneStatus) IsTerminal() bool {
	return s == MilestoneStatusComplete
}

// TableName 自定义表名
func (MilestoneModel) TableName() string {
	return "milestone"
}
