package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/fms/internal/logger"
	"github.com/blues/fms/internal/metrics"
	"github.com/blues/fms/internal/model"
	"gorm.io/gorm"
)

// PaymentLogic 结算引擎
// 一次结算覆盖：预存扣减、双方余额变动、两条流水、里程碑完结、项目状态推导，
// 全部在同一个数据库事务内完成，任何一步失败整体回滚
type PaymentLogic struct {
	db      *gorm.DB
	account *AccountLogic
}

// NewPaymentLogic 创建结算引擎
func NewPaymentLogic(db *gorm.DB) *PaymentLogic {
	return &PaymentLogic{
		db:      db,
		account: NewAccountLogic(db),
	}
}

// PayForMember 结算成员当前阶段
// 金额守恒：项目方减少的余额等于成员增加的余额，两条流水金额相同、方向相反
func (p *PaymentLogic) PayForMember(projectId, freelancerId, ownerId int64) error {
	var settledAmount int64

	err := p.db.Transaction(func(tx *gorm.DB) error {
		// 1. 锁定成员合约并解析当前阶段
		var mp model.MemberProjectModel
		if err := lockForUpdate(tx).
			Where("project_id = ? AND user_id = ?", projectId, freelancerId).
			First(&mp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberProjectNotFound
			}
			return fmt.Errorf("查询成员合约失败: %w", err)
		}

		var project model.ProjectModel
		if err := tx.First(&project, projectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("查询项目失败: %w", err)
		}
		if project.OwnerId != ownerId {
			return ErrNotAuthorized
		}

		var milestones []model.MilestoneModel
		if err := tx.Where("member_project_id = ?", mp.Id).
			Order("sequence_no ASC").
			Find(&milestones).Error; err != nil {
			return fmt.Errorf("查询里程碑失败: %w", err)
		}

		idx, phase := CurrentPhase(milestones)
		if phase == nil {
			return ErrNoActivePhase
		}
		// 纠纷冻结的阶段不可结算，需等待纠纷解决
		if phase.Status == model.MilestoneStatusDisputed {
			return ErrMilestoneDisputed
		}
		if !phase.Status.CanTransitionTo(model.MilestoneStatusComplete) {
			return fmt.Errorf("里程碑状态 %s 不允许结算", phase.Status)
		}

		amount := phase.SalaryUnpaid
		if amount <= 0 {
			return ErrNoActivePhase
		}

		// 2. 扣减预存，校验不为负
		if mp.Escrowed < amount {
			return ErrEscrowUnderflow
		}
		if err := tx.Model(&mp).
			Update("escrowed", gorm.Expr("escrowed - ?", amount)).Error; err != nil {
			return fmt.Errorf("扣减预存失败: %w", err)
		}

		// 3+4. 双方余额变动并记录流水
		if err := p.account.transfer(tx, ownerId, freelancerId, projectId, amount); err != nil {
			return err
		}

		// 5. 完结当前阶段里程碑
		now := time.Now()
		if err := tx.Model(&model.MilestoneModel{}).
			Where("id = ?", phase.Id).
			Updates(map[string]interface{}{
				"salary_unpaid":  0,
				"day_to_payment": &now,
				"status":         model.MilestoneStatusComplete,
			}).Error; err != nil {
			return fmt.Errorf("更新里程碑失败: %w", err)
		}

		// 6. 在同一事务内重新推导项目状态，能看到刚结算的里程碑
		newStatus, err := deriveProjectStatus(tx, projectId)
		if err != nil {
			return err
		}
		if newStatus != project.Status {
			if err := tx.Model(&project).Update("status", newStatus).Error; err != nil {
				return fmt.Errorf("更新项目状态失败: %w", err)
			}
		}

		settledAmount = amount
		logger.Info("结算完成: project=%d member=%d phase=%d amount=%d",
			projectId, freelancerId, idx+1, amount)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.SettlementTotal.Inc()
	metrics.SettledAmountTotal.Add(float64(settledAmount))
	return nil
}

// deriveProjectStatus 根据所有成员合约推导项目聚合状态
// 所有成员的最后一个里程碑均已结算 → complete；
// 所有成员的当前阶段均未开工 → pending_member_ready；否则 processing
func deriveProjectStatus(tx *gorm.DB, projectId int64) (model.ProjectStatus, error) {
	var memberProjects []model.MemberProjectModel
	if err := tx.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_no ASC")
	}).Where("project_id = ?", projectId).
		Find(&memberProjects).Error; err != nil {
		return "", fmt.Errorf("查询成员合约失败: %w", err)
	}

	if len(memberProjects) == 0 {
		return model.ProjectStatusPending, nil
	}

	allComplete := true
	allNotReady := true
	for _, mp := range memberProjects {
		n := len(mp.Milestones)
		if n == 0 || mp.Milestones[n-1].Status != model.MilestoneStatusComplete {
			allComplete = false
		}
		_, phase := CurrentPhase(mp.Milestones)
		if phase != nil && phase.Status != model.MilestoneStatusNotReady {
			allNotReady = false
		}
	}

	if allComplete {
		return model.ProjectStatusComplete, nil
	}
	if allNotReady {
		return model.ProjectStatusMemberReady, nil
	}
	return model.ProjectStatusProcessing, nil
}
