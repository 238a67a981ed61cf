package scoring

import (
	"fmt"
	"log/slog"
)

// ScoringResult captures the complete scoring output for one option.
type ScoringResult struct {
	Option     string         `json:"option"`
	TotalScore float64        `json:"total_score"`
	Factors    []FactorResult `json:"factors"`
	Eligible   bool           `json:"eligible"`
}

// Scorer is a weighted additive utility scorer: each consideration maps a
// measurement through its curve and the weighted scores are summed.
type Scorer struct {
	considerations Considerations
	logger         *slog.Logger
}

// NewScorer validates the considerations and returns a Scorer.
func NewScorer(cs Considerations, logger *slog.Logger) (*Scorer, error) {
	if err := cs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid considerations: %w", err)
	}
	return &Scorer{considerations: cs, logger: logger}, nil
}

// Considerations returns the considerations the scorer was built with.
func (s *Scorer) Considerations() Considerations {
	return s.considerations
}

// Score computes the total score for one option.
func (s *Scorer) Score(option string, measurements map[string]float64) ScoringResult {
	result := ScoringResult{
		Option:   option,
		Eligible: true,
	}

	factors := make([]FactorResult, len(s.considerations))
	for i, c := range s.considerations {
		factors[i] = evaluate(c, measurements)
	}
	result.Factors = factors

	// Gate: any veto consideration at 0 makes the option ineligible
	for i, c := range s.considerations {
		if c.Veto && factors[i].Available && factors[i].Score == 0 {
			result.Eligible = false
			s.logger.Debug("option vetoed", "option", option, "consideration", c.Name)
			return result
		}
	}

	var total float64
	for i, c := range s.considerations {
		factors[i].Weight = c.Weight
		factors[i].Weighted = factors[i].Score * c.Weight
		total += factors[i].Weighted
	}
	result.TotalScore = total

	s.logger.Debug("option scored", "option", option, "score", total)
	return result
}
