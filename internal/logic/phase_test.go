package logic

import (
	"testing"

	"github.com/blues/fms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestonesWithStatus(statuses ...model.MilestoneStatus) []model.MilestoneModel {
	ms := make([]model.MilestoneModel, len(statuses))
	for i, s := range statuses {
		ms[i] = model.MilestoneModel{SequenceNo: i + 1, Status: s}
	}
	return ms
}

func TestCurrentPhase(t *testing.T) {
	notReady := model.MilestoneStatusNotReady
	processing := model.MilestoneStatusProcessing
	complete := model.MilestoneStatusComplete
	disputed := model.MilestoneStatusDisputed

	tests := []struct {
		name     string
		statuses []model.MilestoneStatus
		wantIdx  int
	}{
		{"空序列没有当前阶段", nil, -1},
		{"全部已结算没有当前阶段", []model.MilestoneStatus{complete, complete, complete}, -1},
		{"末尾已结算视为全部结清", []model.MilestoneStatus{notReady, notReady, complete}, -1},
		{"没有结算记录时第一个为当前阶段", []model.MilestoneStatus{notReady, notReady, notReady}, 0},
		{"前缀已结算时紧随其后的为当前阶段", []model.MilestoneStatus{complete, notReady, notReady}, 1},
		{"两个已结算后第三个为当前阶段", []model.MilestoneStatus{complete, complete, processing}, 2},
		{"单个未结算", []model.MilestoneStatus{processing}, 0},
		{"单个已结算", []model.MilestoneStatus{complete}, -1},
		{"冻结的阶段照常返回", []model.MilestoneStatus{complete, disputed, notReady}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, phase := CurrentPhase(milestonesWithStatus(tt.statuses...))
			assert.Equal(t, tt.wantIdx, idx)
			if tt.wantIdx == -1 {
				assert.Nil(t, phase)
			} else {
				require.NotNil(t, phase)
				assert.Equal(t, tt.wantIdx+1, phase.SequenceNo)
				assert.Equal(t, tt.statuses[tt.wantIdx], phase.Status)
			}
		})
	}
}

func TestCurrentPhaseIsPure(t *testing.T) {
	milestones := milestonesWithStatus(
		model.MilestoneStatusComplete,
		model.MilestoneStatusProcessing,
		model.MilestoneStatusNotReady,
	)

	idx1, _ := CurrentPhase(milestones)
	idx2, _ := CurrentPhase(milestones)
	assert.Equal(t, idx1, idx2)

	// 解析器不修改输入
	assert.Equal(t, model.MilestoneStatusComplete, milestones[0].Status)
	assert.Equal(t, model.MilestoneStatusProcessing, milestones[1].Status)
	assert.Equal(t, model.MilestoneStatusNotReady, milestones[2].Status)
}
