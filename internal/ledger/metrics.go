package ledger

import "github.com/prometheus/client_golang/prometheus"

// BudgetRejections counts writes rejected by the ledger, by reason.
var BudgetRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "spendwise",
		Subsystem: "ledger",
		Name:      "budget_rejections_total",
		Help:      "Number of writes rejected because of budget rules.",
	},
	[]string{"reason"},
)

const (
	reasonExceeded  = "exceeded"
	reasonDuplicate = "duplicate"
)
