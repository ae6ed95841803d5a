package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilestoneStatusTransitions(t *testing.T) {
	tests := []struct {
		from    MilestoneStatus
		to      MilestoneStatus
		allowed bool
	}{
		{MilestoneStatusNotReady, MilestoneStatusProcessing, true},
		{MilestoneStatusNotReady, MilestoneStatusComplete, true},
		{MilestoneStatusNotReady, MilestoneStatusDisputed, true},
		{MilestoneStatusProcessing, MilestoneStatusPaying, true},
		{MilestoneStatusProcessing, MilestoneStatusComplete, true},
		{MilestoneStatusProcessing, MilestoneStatusNotReady, false},
		{MilestoneStatusPaying, MilestoneStatusComplete, true},
		{MilestoneStatusPaying, MilestoneStatusProcessing, false},
		{MilestoneStatusPaying, MilestoneStatusDisputed, true},
		// 终态不允许任何转换
		{MilestoneStatusComplete, MilestoneStatusDisputed, false},
		{MilestoneStatusComplete, MilestoneStatusProcessing, false},
		// 冻结只能恢复到非终态
		{MilestoneStatusDisputed, MilestoneStatusNotReady, true},
		{MilestoneStatusDisputed, MilestoneStatusProcessing, true},
		{MilestoneStatusDisputed, MilestoneStatusPaying, true},
		{MilestoneStatusDisputed, MilestoneStatusComplete, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestMilestoneStatusIsTerminal(t *testing.T) {
	assert.True(t, MilestoneStatusComplete.IsTerminal())
	assert.False(t, MilestoneStatusNotReady.IsTerminal())
	assert.False(t, MilestoneStatusDisputed.IsTerminal())
}
