package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Arbiter/internal/metrics"
)

// defaultScore stands in for a measurement the caller did not supply.
const defaultScore = 0.5

// FactorResult captures one consideration's contribution to the total score.
type FactorResult struct {
	Name      string  `json:"name"`
	Raw       float64 `json:"raw"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// evaluate runs one measurement through a consideration's curve.
// Missing measurements score 0.5; curve output is clamped to [0, 1].
func evaluate(c Consideration, measurements map[string]float64) FactorResult {
	raw, ok := measurements[c.Name]
	if !ok {
		return FactorResult{Name: c.Name, Score: defaultScore, Available: false, Reason: "default"}
	}

	metrics.CurveEvaluations.WithLabelValues(string(c.Curve.Kind)).Inc()
	score := c.Curve.Evaluate(raw)
	reason := string(c.Curve.Kind) + " curve"
	switch {
	case math.IsNaN(score):
		score = 0
		reason = "curve produced NaN"
	case score < 0 || score > 1:
		reason += " (clamped)"
	}
	return FactorResult{
		Name:      c.Name,
		Raw:       raw,
		Score:     clamp(score, 0, 1),
		Available: true,
		Reason:    reason,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
