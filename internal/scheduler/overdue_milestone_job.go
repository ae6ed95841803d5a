package scheduler

import (
	"time"

	"github.com/blues/fms/internal/config"
	"github.com/blues/fms/internal/logger"
	"github.com/blues/fms/internal/metrics"
	"github.com/blues/fms/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// OverdueMilestoneJob 逾期里程碑巡检任务
// 统计超过预计完成时间仍未结算的里程碑并上报指标
type OverdueMilestoneJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewOverdueMilestoneJob 创建逾期里程碑巡检任务
func NewOverdueMilestoneJob(db *gorm.DB, cfg *config.Config) *OverdueMilestoneJob {
	return &OverdueMilestoneJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *OverdueMilestoneJob) GetName() string {
	return "overdue_milestone_checker"
}

// GetSchedule 获取调度配置
func (j *OverdueMilestoneJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *OverdueMilestoneJob) Execute() {
	now := time.Now()

	var overdue []model.MilestoneModel
	err := j.db.Where("day_to_done < ? AND status <> ?",
		now, model.MilestoneStatusComplete).
		Find(&overdue).Error
	if err != nil {
		logger.Error("Failed to fetch overdue milestones: %v", err)
		return
	}

	metrics.OverdueMilestones.Set(float64(len(overdue)))

	for _, ms := range overdue {
		logger.Warn("Milestone overdue: member_project=%d seq=%d due=%s status=%s",
			ms.MemberProjectId, ms.SequenceNo,
			ms.DayToDone.Format("2006-01-02"), ms.Status)
	}

	if len(overdue) > 0 {
		logger.Info("Overdue milestone check completed. Found %d overdue milestones", len(overdue))
	}
}
