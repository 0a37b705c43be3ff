package compat

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CompatScoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_scores_total",
			Help: "Count of compatibility scores served, by match tier.",
		},
		[]string{"tier"},
	)

	TraitProbabilityChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_trait_probability_checks_total",
			Help: "Count of trait probability checks, by outcome.",
		},
		[]string{"outcome"},
	)

	BonusTraitAssignsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_bonus_trait_assigns_total",
			Help: "Count of bonus-trait registry writes, stored vs rejected.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(CompatScoresTotal, TraitProbabilityChecksTotal, BonusTraitAssignsTotal)
}
