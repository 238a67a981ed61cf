package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Arbiter/internal/config"
	"github.com/MikeSquared-Agency/Arbiter/pkg/curve"
)

// Consideration turns one named measurement into a weighted factor.
// A veto consideration that scores 0 makes the whole option ineligible.
type Consideration struct {
	Name   string     `json:"name"`
	Weight float64    `json:"weight"`
	Veto   bool       `json:"veto,omitempty"`
	Curve  curve.Spec `json:"curve"`
}

// Considerations is the ordered set of factors a profile scores with.
// Weights must sum to 1.0 (±0.001 tolerance).
type Considerations []Consideration

// FromConfig converts a profile's consideration config.
func FromConfig(ccs []config.ConsiderationConfig) Considerations {
	cs := make(Considerations, len(ccs))
	for i, cc := range ccs {
		cs[i] = Consideration{Name: cc.Name, Weight: cc.Weight, Veto: cc.Veto, Curve: cc.Curve}
	}
	return cs
}

// Sum returns the total of all weights.
func (cs Considerations) Sum() float64 {
	var sum float64
	for _, c := range cs {
		sum += c.Weight
	}
	return sum
}

// Validate checks that weights sum to 1.0, none are negative, names are unique
// and every curve is usable.
func (cs Considerations) Validate() error {
	if len(cs) == 0 {
		return fmt.Errorf("no considerations")
	}
	if math.Abs(cs.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", cs.Sum())
	}
	seen := make(map[string]bool, len(cs))
	for _, c := range cs {
		if c.Name == "" {
			return fmt.Errorf("consideration name required")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate consideration: %s", c.Name)
		}
		seen[c.Name] = true
		if c.Weight < 0 {
			return fmt.Errorf("negative weight for %s: %f", c.Name, c.Weight)
		}
		if err := c.Curve.Validate(); err != nil {
			return fmt.Errorf("consideration %s: %w", c.Name, err)
		}
	}
	return nil
}
