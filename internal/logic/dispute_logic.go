package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/fms/internal/logger"
	"github.com/blues/fms/internal/metrics"
	"github.com/blues/fms/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DisputeLogic 纠纷业务逻辑
// 开启纠纷会冻结成员当前阶段，冻结期间结算引擎拒绝结算
type DisputeLogic struct {
	db *gorm.DB
}

// NewDisputeLogic 创建纠纷业务逻辑
func NewDisputeLogic(db *gorm.DB) *DisputeLogic {
	return &DisputeLogic{db: db}
}

// OpenDispute 开启纠纷并冻结当前阶段
// 发起人必须是项目方或该成员本人；成员合约不存在时只创建纠纷记录不冻结
func (d *DisputeLogic) OpenDispute(projectId, freelancerId, reporterId int64, reason string) (*model.DisputeModel, error) {
	if reason == "" {
		return nil, errors.New("纠纷原因不能为空")
	}

	var dispute model.DisputeModel

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var project model.ProjectModel
		if err := tx.First(&project, projectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("查询项目失败: %w", err)
		}

		if reporterId != project.OwnerId && reporterId != freelancerId {
			return ErrNotAuthorized
		}

		dispute = model.DisputeModel{
			RefNo:        uuid.NewString(),
			ProjectId:    projectId,
			FreelancerId: freelancerId,
			ReporterId:   reporterId,
			Reason:       reason,
			Status:       model.DisputeStatusOpen,
		}
		if err := tx.Create(&dispute).Error; err != nil {
			return fmt.Errorf("创建纠纷失败: %w", err)
		}

		// 冻结当前阶段（如果有）
		var mp model.MemberProjectModel
		err := lockForUpdate(tx).
			Where("project_id = ? AND user_id = ?", projectId, freelancerId).
			First(&mp).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("查询成员合约失败: %w", err)
		}

		var milestones []model.MilestoneModel
		if err := tx.Where("member_project_id = ?", mp.Id).
			Order("sequence_no ASC").
			Find(&milestones).Error; err != nil {
			return fmt.Errorf("查询里程碑失败: %w", err)
		}

		_, phase := CurrentPhase(milestones)
		if phase == nil {
			return nil
		}
		if !phase.Status.CanTransitionTo(model.MilestoneStatusDisputed) {
			return ErrMilestoneDisputed
		}

		if err := tx.Model(&model.MilestoneModel{}).
			Where("id = ?", phase.Id).
			Updates(map[string]interface{}{
				"status":     model.MilestoneStatusDisputed,
				"dispute_id": dispute.Id,
			}).Error; err != nil {
			return fmt.Errorf("冻结里程碑失败: %w", err)
		}

		// 记录冻结前状态，解决时据此恢复
		dispute.MilestoneId = &phase.Id
		dispute.FrozenStatus = phase.Status
		if err := tx.Model(&dispute).Updates(map[string]interface{}{
			"milestone_id":  phase.Id,
			"frozen_status": phase.Status,
		}).Error; err != nil {
			return fmt.Errorf("更新纠纷失败: %w", err)
		}

		logger.Warn("纠纷冻结: project=%d member=%d milestone=%d dispute=%s",
			projectId, freelancerId, phase.Id, dispute.RefNo)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DisputeOpenedTotal.Inc()
	return &dispute, nil
}

// ResolveDispute 解决纠纷，恢复被冻结的里程碑
func (d *DisputeLogic) ResolveDispute(disputeId int64) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var dispute model.DisputeModel
		if err := lockForUpdate(tx).First(&dispute, disputeId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDisputeNotFound
			}
			return fmt.Errorf("查询纠纷失败: %w", err)
		}
		if dispute.Status == model.DisputeStatusResolved {
			return errors.New("纠纷已解决")
		}

		if dispute.MilestoneId != nil {
			var ms model.MilestoneModel
			if err := lockForUpdate(tx).First(&ms, *dispute.MilestoneId).Error; err != nil {
				return fmt.Errorf("查询里程碑失败: %w", err)
			}

			// 里程碑可能已被其他纠纷接管，只恢复属于本纠纷的冻结
			if ms.Status == model.MilestoneStatusDisputed &&
				ms.DisputeId != nil && *ms.DisputeId == dispute.Id {
				restored := dispute.FrozenStatus
				if restored == "" {
					restored = model.MilestoneStatusNotReady
				}
				if err := tx.Model(&ms).Updates(map[string]interface{}{
					"status":     restored,
					"dispute_id": nil,
				}).Error; err != nil {
					return fmt.Errorf("恢复里程碑失败: %w", err)
				}
			}
		}

		now := time.Now()
		if err := tx.Model(&dispute).Updates(map[string]interface{}{
			"status":      model.DisputeStatusResolved,
			"resolved_at": &now,
		}).Error; err != nil {
			return fmt.Errorf("更新纠纷状态失败: %w", err)
		}

		logger.Info("纠纷解决: dispute=%s", dispute.RefNo)
		return nil
	})
}

// GetProjectDisputes 获取项目纠纷列表
func (d *DisputeLogic) GetProjectDisputes(projectId int64) ([]model.DisputeModel, error) {
	var disputes []model.DisputeModel
	if err := d.db.Where("project_id = ?", projectId).
		Order("created_at DESC").
		Find(&disputes).Error; err != nil {
		return nil, fmt.Errorf("查询纠纷列表失败: %w", err)
	}
	return disputes, nil
}
