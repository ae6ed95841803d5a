package logic

import (
	"github.com/blues/fms/internal/model"
)

// CurrentPhase 计算当前进行阶段
// 从序列末尾向前找到最近一个已结算的里程碑，其后一个即为当前阶段。
// 纯函数，不读写任何外部状态；milestones 必须已按 sequence_no 升序排列。
// 无可用阶段（序列为空或全部已结算）时返回 (-1, nil)。
func CurrentPhase(milestones []model.MilestoneModel) (int, *model.MilestoneModel) {
	if len(milestones) == 0 {
		return -1, nil
	}

	lastComplete := -1
	for i := len(milestones) - 1; i >= 0; i-- {
		if milestones[i].Status == model.MilestoneStatusComplete {
			lastComplete = i
			break
		}
	}

	// 整个序列已结算完毕，没有下一阶段
	if lastComplete == len(milestones)-1 {
		return -1, nil
	}

	idx := lastComplete + 1
	return idx, &milestones[idx]
}
