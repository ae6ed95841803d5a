package scheduler

import (
	"sync"
	"time"

	"github.com/blues/fms/internal/config"
	"github.com/blues/fms/internal/logger"
	"github.com/blues/fms/internal/logic"
	"github.com/blues/fms/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ProjectStatusJob 项目状态修正任务
// 正常情况下结算事务已维护好项目状态，这里定期兜底修正漂移
type ProjectStatusJob struct {
	db           *gorm.DB
	config       *config.Config
	projectLogic *logic.ProjectLogic
}

// NewProjectStatusJob 创建项目状态修正任务
func NewProjectStatusJob(db *gorm.DB, cfg *config.Config) *ProjectStatusJob {
	return &ProjectStatusJob{
		db:           db,
		config:       cfg,
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	logger.Info("Starting project status update task")

	// 已完成的项目状态不再变化，跳过
	var projects []model.ProjectModel
	err := j.db.Where("status <> ?", model.ProjectStatusComplete).
		Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch projects: %v", err)
		return
	}

	pool, err := ants.NewPool(8)
	if err != nil {
		logger.Error("Failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, project := range projects {
		p := project
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			newStatus, err := j.projectLogic.RederiveStatus(p.Id)
			if err != nil {
				logger.Error("Failed to rederive status for project %d: %v", p.Id, err)
				return
			}
			if newStatus != p.Status {
				logger.Info("Updated project %d status from %s to %s",
					p.Id, p.Status, newStatus)
			}
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit status task for project %d: %v", p.Id, err)
		}
	}
	wg.Wait()

	logger.Info("Project status update completed. Checked %d projects", len(projects))
}
