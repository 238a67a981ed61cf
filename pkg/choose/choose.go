// Package choose picks one action from a set of weighted actions.
//
// Best is deterministic. Fuzzy samples among the actions whose weight is close
// to the maximum, using an offset the caller draws from its own random source.
package choose

import (
	"container/heap"

	"github.com/MikeSquared-Agency/Arbiter/pkg/weighted"
)

// Best returns the action with the highest weight. When several actions share
// the highest weight the last one in input order wins. ok is false when
// actions is empty.
func Best[T comparable](actions []weighted.Action[T]) (action T, ok bool) {
	if len(actions) == 0 {
		return action, false
	}
	best := actions[0]
	for _, a := range actions[1:] {
		if a.Compare(best) >= 0 {
			best = a
		}
	}
	return best.Action, true
}

// Fuzzy returns one of the actions whose weight is within fuzziness of the
// highest weight. Each eligible action is picked with probability proportional
// to its weight: eligible actions are walked heaviest first, accumulating
// weight/total, and the first one whose running share reaches choiceOffset is
// returned.
//
// fuzziness is an absolute weight gap and should be in the same units as the
// weights. choiceOffset is expected in [0, 1]; values above 1 select nothing
// and values below 0 always select the heaviest action. ok is false when
// actions is empty or no share reaches choiceOffset.
func Fuzzy[T comparable](actions []weighted.Action[T], fuzziness, choiceOffset float64) (action T, ok bool) {
	if len(actions) == 0 {
		return action, false
	}

	h := make(maxHeap[T], len(actions))
	copy(h, actions)
	heap.Init(&h)

	greatest := heap.Pop(&h).(weighted.Action[T])
	total := greatest.Weight
	options := []weighted.Action[T]{greatest}
	for h.Len() > 0 {
		option := heap.Pop(&h).(weighted.Action[T])
		// pops are descending, so every later option is farther away too
		if greatest.Weight-option.Weight > fuzziness {
			break
		}
		total += option.Weight
		options = append(options, option)
	}

	var offset float64
	for _, option := range options {
		offset += option.Weight / total
		if choiceOffset <= offset {
			return option.Action, true
		}
	}
	return action, false
}

// maxHeap pops the heaviest action first.
type maxHeap[T comparable] []weighted.Action[T]

func (h maxHeap[T]) Len() int           { return len(h) }
func (h maxHeap[T]) Less(i, j int) bool { return h[i].Compare(h[j]) > 0 }
func (h maxHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *maxHeap[T]) Push(x any) { *h = append(*h, x.(weighted.Action[T])) }

func (h *maxHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
