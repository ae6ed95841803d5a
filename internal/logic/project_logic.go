package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fms/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 创建项目
func (p *ProjectLogic) CreateProject(project *model.ProjectModel) error {
	if project.Title == "" {
		return errors.New("项目标题不能为空")
	}

	var owner model.UserModel
	if err := p.db.First(&owner, project.OwnerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询项目方失败: %w", err)
	}

	project.Status = model.ProjectStatusPending

	if err := p.db.Create(project).Error; err != nil {
		return fmt.Errorf("创建项目失败: %w", err)
	}
	return nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return &project, nil
}

// CreateMemberProject 接受成员加入项目，同时建立完整的里程碑计划
// 校验里程碑金额之和等于合约金额、sequence_no 从1开始连续
func (p *ProjectLogic) CreateMemberProject(mp *model.MemberProjectModel) error {
	if err := p.validateMilestonePlan(mp); err != nil {
		return err
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		var project model.ProjectModel
		if err := tx.First(&project, mp.ProjectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("查询项目失败: %w", err)
		}

		var user model.UserModel
		if err := tx.First(&user, mp.UserId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("查询用户失败: %w", err)
		}

		var existing model.MemberProjectModel
		if err := tx.Where("project_id = ? AND user_id = ?", mp.ProjectId, mp.UserId).
			First(&existing).Error; err == nil {
			return errors.New("该成员已加入项目")
		}

		mp.Escrowed = 0
		for i := range mp.Milestones {
			mp.Milestones[i].SalaryUnpaid = mp.Milestones[i].Salary
			mp.Milestones[i].Status = model.MilestoneStatusNotReady
			mp.Milestones[i].DayToPayment = nil
			mp.Milestones[i].DisputeId = nil
		}

		if err := tx.Create(mp).Error; err != nil {
			return fmt.Errorf("创建成员合约失败: %w", err)
		}

		// 有成员加入后项目脱离待接单状态
		newStatus, err := deriveProjectStatus(tx, mp.ProjectId)
		if err != nil {
			return err
		}
		if newStatus != project.Status {
			if err := tx.Model(&project).Update("status", newStatus).Error; err != nil {
				return fmt.Errorf("更新项目状态失败: %w", err)
			}
		}
		return nil
	})
}

// GetMemberProject 获取成员合约、里程碑序列和当前阶段
func (p *ProjectLogic) GetMemberProject(projectId, userId int64) (*model.MemberProjectModel, *model.MilestoneModel, error) {
	var mp model.MemberProjectModel
	if err := p.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_no ASC")
	}).Where("project_id = ? AND user_id = ?", projectId, userId).
		First(&mp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberProjectNotFound
		}
		return nil, nil, fmt.Errorf("查询成员合约失败: %w", err)
	}

	_, phase := CurrentPhase(mp.Milestones)
	return &mp, phase, nil
}

// UpdatePhaseStatus 成员推进当前阶段状态（开工、提交待结算）
// 只允许推进到 processing 或 paying；结算与冻结各有专门入口
func (p *ProjectLogic) UpdatePhaseStatus(projectId, userId int64, target model.MilestoneStatus) error {
	if target != model.MilestoneStatusProcessing && target != model.MilestoneStatusPaying {
		return errors.New("只允许推进到 processing 或 paying")
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		var mp model.MemberProjectModel
		if err := lockForUpdate(tx).
			Where("project_id = ? AND user_id = ?", projectId, userId).
			First(&mp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberProjectNotFound
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
			return ErrNoActivePhase
		}
		if phase.Status == model.MilestoneStatusDisputed {
			return ErrMilestoneDisputed
		}
		if !phase.Status.CanTransitionTo(target) {
			return fmt.Errorf("里程碑状态不能从 %s 变为 %s", phase.Status, target)
		}

		if err := tx.Model(&model.MilestoneModel{}).
			Where("id = ?", phase.Id).
			Update("status", target).Error; err != nil {
			return fmt.Errorf("更新里程碑状态失败: %w", err)
		}

		var project model.ProjectModel
		if err := tx.First(&project, projectId).Error; err != nil {
			return fmt.Errorf("查询项目失败: %w", err)
		}
		newStatus, err := deriveProjectStatus(tx, projectId)
		if err != nil {
			return err
		}
		if newStatus != project.Status {
			if err := tx.Model(&project).Update("status", newStatus).Error; err != nil {
				return fmt.Errorf("更新项目状态失败: %w", err)
			}
		}
		return nil
	})
}

// MemberProgress 单个成员的进度概览
type MemberProgress struct {
	UserId       int64                 `json:"user_id"`
	Salary       int64                 `json:"salary"`
	Escrowed     int64                 `json:"escrowed"`
	Paid         int64                 `json:"paid"`
	Unpaid       int64                 `json:"unpaid"`
	CurrentPhase *model.MilestoneModel `json:"current_phase"`
	PhaseStatus  model.MilestoneStatus `json:"phase_status,omitempty"`
}

// OverviewProgress 项目整体进度概览
type OverviewProgress struct {
	ProjectId     int64               `json:"project_id"`
	Status        model.ProjectStatus `json:"status"`
	TotalSalary   int64               `json:"total_salary"`
	TotalEscrowed int64               `json:"total_escrowed"`
	TotalPaid     int64               `json:"total_paid"`
	TotalUnpaid   int64               `json:"total_unpaid"`
	Members       []MemberProgress    `json:"members"`
}

// GetOverviewProgress 计算项目整体进度
// 对每个成员合约套用阶段解析器，汇总预存、已付、未付金额
func (p *ProjectLogic) GetOverviewProgress(projectId int64) (*OverviewProgress, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}

	var memberProjects []model.MemberProjectModel
	if err := p.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_no ASC")
	}).Where("project_id = ?", projectId).
		Find(&memberProjects).Error; err != nil {
		return nil, fmt.Errorf("查询成员合约失败: %w", err)
	}

	overview := &OverviewProgress{
		ProjectId: projectId,
		Status:    project.Status,
		Members:   make([]MemberProgress, 0, len(memberProjects)),
	}

	for _, mp := range memberProjects {
		var paid, unpaid int64
		for _, ms := range mp.Milestones {
			unpaid += ms.SalaryUnpaid
			paid += ms.Salary - ms.SalaryUnpaid
		}

		_, phase := CurrentPhase(mp.Milestones)
		member := MemberProgress{
			UserId:       mp.UserId,
			Salary:       mp.Salary,
			Escrowed:     mp.Escrowed,
			Paid:         paid,
			Unpaid:       unpaid,
			CurrentPhase: phase,
		}
		if phase != nil {
			member.PhaseStatus = phase.Status
		}

		overview.TotalSalary += mp.Salary
		overview.TotalEscrowed += mp.Escrowed
		overview.TotalPaid += paid
		overview.TotalUnpaid += unpaid
		overview.Members = append(overview.Members, member)
	}

	return overview, nil
}

// RederiveStatus 重新推导并落库项目聚合状态
// 定时任务用来修正漂移；结算路径在自己的事务内完成同样的推导
func (p *ProjectLogic) RederiveStatus(projectId int64) (model.ProjectStatus, error) {
	var status model.ProjectStatus
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var project model.ProjectModel
		if err := lockForUpdate(tx).First(&project, projectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("查询项目失败: %w", err)
		}

		newStatus, err := deriveProjectStatus(tx, projectId)
		if err != nil {
			return err
		}
		status = newStatus
		if newStatus == project.Status {
			return nil
		}
		return tx.Model(&project).Update("status", newStatus).Error
	})
	return status, err
}

// validateMilestonePlan 校验里程碑计划
// 金额之和必须等于合约金额，sequence_no 必须从1开始连续
func (p *ProjectLogic) validateMilestonePlan(mp *model.MemberProjectModel) error {
	if mp.Salary <= 0 {
		return errors.New("合约金额必须大于0")
	}
	if len(mp.Milestones) == 0 {
		return errors.New("里程碑计划不能为空")
	}

	var sum int64
	for i, ms := range mp.Milestones {
		if ms.Salary <= 0 {
			return errors.New("里程碑金额必须大于0")
		}
		if ms.SequenceNo != i+1 {
			return errors.New("里程碑序号必须从1开始连续")
		}
		sum += ms.Salary
	}
	if sum != mp.Salary {
		return errors.New("里程碑金额之和必须等于合约金额")
	}
	return nil
}
