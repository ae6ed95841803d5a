package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fms/internal/metrics"
	"github.com/blues/fms/internal/model"
	"gorm.io/gorm"
)

// EscrowLogic 预存业务逻辑
// 预存只是资金预留，不触碰用户余额；真正的转账发生在结算时
type EscrowLogic struct {
	db *gorm.DB
}

// NewEscrowLogic 创建预存业务逻辑
func NewEscrowLogic(db *gorm.DB) *EscrowLogic {
	return &EscrowLogic{db: db}
}

// Escrow 项目方为成员合约预存资金
// 校验项目方名下所有合约的预存总额加本次金额不超过其可支配余额，
// 且单个合约的预存不超过合约金额，然后原子地增加 escrowed
func (e *EscrowLogic) Escrow(memberProjectId int64, ownerId int64, amount int64) error {
	if amount <= 0 {
		return errors.New("预存金额必须大于0")
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		// 锁定项目方，防止并发预存绕过余额校验
		var owner model.UserModel
		if err := lockForUpdate(tx).First(&owner, ownerId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("查询项目方失败: %w", err)
		}

		var mp model.MemberProjectModel
		if err := lockForUpdate(tx).First(&mp, memberProjectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberProjectNotFound
			}
			return fmt.Errorf("查询成员合约失败: %w", err)
		}

		// 只有项目所有者能预存
		var project model.ProjectModel
		if err := tx.First(&project, mp.ProjectId).Error; err != nil {
			return fmt.Errorf("查询项目失败: %w", err)
		}
		if project.OwnerId != ownerId {
			return ErrNotAuthorized
		}

		// 不变式: escrowed <= salary
		if mp.Escrowed+amount > mp.Salary {
			return ErrEscrowExceedsSalary
		}

		// 项目方在其所有项目下的预存总敞口
		var totalEscrowed int64
		if err := tx.Model(&model.MemberProjectModel{}).
			Joins("JOIN project ON project.id = member_project.project_id").
			Where("project.owner_id = ?", ownerId).
			Select("COALESCE(SUM(member_project.escrowed), 0)").
			Scan(&totalEscrowed).Error; err != nil {
			return fmt.Errorf("统计预存总额失败: %w", err)
		}

		if totalEscrowed+amount > owner.Amount {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&mp).
			Update("escrowed", gorm.Expr("escrowed + ?", amount)).Error; err != nil {
			return fmt.Errorf("更新预存金额失败: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	metrics.EscrowTotal.Inc()
	metrics.EscrowAmountTotal.Add(float64(amount))
	return nil
}

// TotalEscrowedByOwner 项目方当前预存总敞口
func (e *EscrowLogic) TotalEscrowedByOwner(ownerId int64) (int64, error) {
	var total int64
	err := e.db.Model(&model.MemberProjectModel{}).
		Joins("JOIN project ON project.id = member_project.project_id").
		Where("project.owner_id = ?", ownerId).
		Select("COALESCE(SUM(member_project.escrowed), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("统计预存总额失败: %w", err)
	}
	return total, nil
}
