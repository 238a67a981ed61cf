// Package weighted pairs caller-defined actions with desirability weights.
package weighted

// Action is an action annotated with a weight. Higher weights are more desirable.
//
// Ordering looks at Weight only (Compare) while equality looks at both fields
// (Equal), so two actions can be tied for selection without being equal.
type Action[T comparable] struct {
	Action T       `json:"action"`
	Weight float64 `json:"weight"`
}

// New returns an Action. Weights are not validated.
func New[T comparable](action T, weight float64) Action[T] {
	return Action[T]{Action: action, Weight: weight}
}

// Compare orders a against b by weight: +1 if heavier, -1 if lighter, 0 otherwise.
// A NaN weight compares as 0 against everything.
func (a Action[T]) Compare(b Action[T]) int {
	if a.Weight > b.Weight {
		return 1
	}
	if a.Weight < b.Weight {
		return -1
	}
	return 0
}

// Equal reports whether both the weights and the actions match.
func (a Action[T]) Equal(b Action[T]) bool {
	return a.Weight == b.Weight && a.Action == b.Action
}
