package milestone

import "github.com/prometheus/client_golang/prometheus"

var MilestoneEvaluationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "milestone_evaluations_total",
		Help: "Count of milestone evaluations, by milestone type and outcome.",
	},
	[]string{"milestone_type", "outcome"},
)

func init() {
	prometheus.MustRegister(MilestoneEvaluationsTotal)
}
