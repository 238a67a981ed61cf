// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for DecisionsTotal.
const (
	ResultSelected = "selected"
	ResultEmpty    = "empty"
	ResultInvalid  = "invalid"
)

var (
	// DecisionsTotal counts decisions by selection mode and whether anything was chosen.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arbiter_decisions_total",
		Help: "Total decisions by mode and result",
	}, []string{"mode", "result"})

	// EligibleCandidates tracks how many candidates reached the selector per decision.
	EligibleCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arbiter_eligible_candidates",
		Help:    "Number of eligible candidates per decision",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	// ChosenWeight tracks the weight of the chosen candidate.
	ChosenWeight = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arbiter_chosen_weight",
		Help:    "Weight of the chosen candidate",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	// DecisionEventsObserved counts decision events seen on the bus, from this
	// instance or any other publishing to the same stream.
	DecisionEventsObserved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arbiter_decision_events_observed_total",
		Help: "Decision events received by result",
	}, []string{"result"})

	// CurveEvaluations counts curve evaluations by curve kind.
	CurveEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arbiter_curve_evaluations_total",
		Help: "Total curve evaluations by curve kind",
	}, []string{"kind"})
)

// ObserveDecision records one finished decision.
func ObserveDecision(mode string, eligible int, selected bool, weight float64) {
	EligibleCandidates.Observe(float64(eligible))
	if !selected {
		DecisionsTotal.WithLabelValues(mode, ResultEmpty).Inc()
		return
	}
	DecisionsTotal.WithLabelValues(mode, ResultSelected).Inc()
	ChosenWeight.Observe(weight)
}
