package scoring

// FactorScores is one option's curve scores, one per consideration, in
// consideration order. Higher is better on every dimension.
type FactorScores struct {
	Option string    `json:"option"`
	Scores []float64 `json:"scores"`
}

// ComputeFrontier returns the options no other option dominates. An option is
// dominated if another scores >= on every consideration and strictly higher on
// at least one. Options with a different number of scores never dominate each
// other. O(n^2), fine for typical option counts.
func ComputeFrontier(candidates []FactorScores) []FactorScores {
	if len(candidates) <= 1 {
		return candidates
	}

	var frontier []FactorScores
	for i := range candidates {
		dominated := false
		for j := range candidates {
			if i == j {
				continue
			}
			if dominates(candidates[j], candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, candidates[i])
		}
	}
	return frontier
}

// FrontierOf extracts per-option factor scores and returns the names on the
// frontier in input order.
func FrontierOf(results []ScoringResult) []string {
	scores := make([]FactorScores, len(results))
	for i, r := range results {
		s := make([]float64, len(r.Factors))
		for k, f := range r.Factors {
			s[k] = f.Score
		}
		scores[i] = FactorScores{Option: r.Option, Scores: s}
	}
	frontier := ComputeFrontier(scores)
	names := make([]string, len(frontier))
	for i, f := range frontier {
		names[i] = f.Option
	}
	return names
}

func dominates(a, b FactorScores) bool {
	if len(a.Scores) != len(b.Scores) {
		return false
	}
	strictly := false
	for k := range a.Scores {
		if a.Scores[k] < b.Scores[k] {
			return false
		}
		if a.Scores[k] > b.Scores[k] {
			strictly = true
		}
	}
	return strictly
}
