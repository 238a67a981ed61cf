package hermes

import (
	"encoding/json"
	"log/slog"

	"github.com/MikeSquared-Agency/Arbiter/internal/metrics"
)

// WatchDecisions subscribes to every decision event and counts them by result.
func WatchDecisions(c Client, logger *slog.Logger) error {
	return c.Subscribe(SubjectDecisionsAll, func(subject string, data []byte) {
		var e DecisionEvent
		if err := json.Unmarshal(data, &e); err != nil {
			metrics.DecisionEventsObserved.WithLabelValues(metrics.ResultInvalid).Inc()
			logger.Warn("undecodable decision event", "subject", subject, "error", err)
			return
		}
		result := metrics.ResultEmpty
		if e.Selected {
			result = metrics.ResultSelected
		}
		metrics.DecisionEventsObserved.WithLabelValues(result).Inc()
		logger.Debug("decision event", "subject", subject, "decision_id", e.DecisionID, "chosen", e.Chosen)
	})
}
