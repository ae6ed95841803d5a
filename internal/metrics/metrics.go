package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 结算/预存/纠纷相关指标，通过 /metrics 暴露
var (
	SettlementTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fms_settlements_total",
		Help: "里程碑结算成功次数",
	})

	SettledAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fms_settled_amount_total",
		Help: "累计结算金额（分）",
	})

	EscrowTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fms_escrow_operations_total",
		Help: "预存操作成功次数",
	})

	EscrowAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fms_escrow_amount_total",
		Help: "累计预存金额（分）",
	})

	DisputeOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fms_disputes_opened_total",
		Help: "开启的纠纷数",
	})

	OverdueMilestones = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fms_overdue_milestones",
		Help: "超过预计完成时间且未结算的里程碑数",
	})
)
