package handler

import (
	"time"

	"github.com/blues/fms/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name   string         `json:"name" binding:"required"`
	Email  string         `json:"email"`
	Role   model.UserRole `json:"role"`
	Amount int64          `json:"amount"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	OwnerId     int64  `json:"owner_id" binding:"required"`
}

// MilestonePlanItem 里程碑计划项
type MilestonePlanItem struct {
	SequenceNo int       `json:"sequence_no" binding:"required"`
	Salary     int64     `json:"salary" binding:"required"`
	DayToDone  time.Time `json:"day_to_done"`
}

// CreateMemberProjectRequest 接受成员加入项目请求
type CreateMemberProjectRequest struct {
	UserId         int64               `json:"user_id" binding:"required"`
	Salary         int64               `json:"salary" binding:"required"`
	DateToComplete time.Time           `json:"date_to_complete"`
	Milestones     []MilestonePlanItem `json:"milestones" binding:"required"`
}

// EscrowRequest 预存请求
type EscrowRequest struct {
	OwnerId int64 `json:"owner_id" binding:"required"`
	Amount  int64 `json:"amount" binding:"required"`
}

// PayRequest 结算请求
type PayRequest struct {
	OwnerId int64 `json:"owner_id" binding:"required"`
}

// UpdatePhaseRequest 推进阶段状态请求
type UpdatePhaseRequest struct {
	Status model.MilestoneStatus `json:"status" binding:"required"`
}

// OpenDisputeRequest 开启纠纷请求
type OpenDisputeRequest struct {
	ProjectId    int64  `json:"project_id" binding:"required"`
	FreelancerId int64  `json:"freelancer_id" binding:"required"`
	ReporterId   int64  `json:"reporter_id" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}

// MemberProjectResponse 成员合约响应
type MemberProjectResponse struct {
	MemberProject *model.MemberProjectModel `json:"member_project"`
	CurrentPhase  *model.MilestoneModel     `json:"current_phase"`
}

// HistoryResponse 流水响应
type HistoryResponse struct {
	History    []model.HistoryAmountModel `json:"history"`
	Pagination Pagination                 `json:"pagination"`
}
