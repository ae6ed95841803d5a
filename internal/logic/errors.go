package logic

import (
	"errors"
)

// 业务错误
// 结算、预存相关操作失败时返回下列哨兵错误，由 handler 层映射为 HTTP 状态码
var (
	ErrMemberProjectNotFound = errors.New("成员合约不存在")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrProjectNotFound       = errors.New("项目不存在")
	ErrDisputeNotFound       = errors.New("纠纷不存在")

	// 预存总额超出项目方可支配余额
	ErrInsufficientFunds = errors.New("可支配余额不足")
	// 预存金额超出合约尚欠金额
	ErrEscrowExceedsSalary = errors.New("预存金额超出合约金额")
	// 结算会使预存余额变为负数
	ErrEscrowUnderflow = errors.New("预存余额不足以结算当前阶段")

	// 所有里程碑均已结算，无可结算阶段
	ErrNoActivePhase = errors.New("没有可结算的阶段")
	// 当前阶段被纠纷冻结
	ErrMilestoneDisputed = errors.New("当前阶段处于纠纷冻结中")

	ErrNotAuthorized = errors.New("没有操作权限")
)
