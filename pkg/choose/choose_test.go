package choose

import (
	"testing"

	"github.com/MikeSquared-Agency/Arbiter/pkg/weighted"
)

func sampleActions() []weighted.Action[string] {
	return []weighted.Action[string]{
		weighted.New("unexpected_action_one", 0.1),
		weighted.New("unexpected_action_two", 0.2),
		weighted.New("expected_action", 0.5),
		weighted.New("unexpected_action_four", 0.4),
	}
}

func TestBest(t *testing.T) {
	t.Run("largest weight", func(t *testing.T) {
		got, ok := Best(sampleActions())
		if !ok || got != "expected_action" {
			t.Errorf("expected expected_action, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("last of equal weights", func(t *testing.T) {
		actions := []weighted.Action[string]{
			weighted.New("unexpected_action_one", 0.1),
			weighted.New("unexpected_action_two", 0.1),
			weighted.New("unexpected_action_three", 0.1),
			weighted.New("expected_action", 0.1),
		}
		got, ok := Best(actions)
		if !ok || got != "expected_action" {
			t.Errorf("expected expected_action, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("last tied maximum among lower weights", func(t *testing.T) {
		actions := []weighted.Action[int]{
			weighted.New(1, 0.9),
			weighted.New(2, 0.3),
			weighted.New(3, 0.9),
			weighted.New(4, 0.2),
		}
		got, ok := Best(actions)
		if !ok || got != 3 {
			t.Errorf("expected 3, got %d (ok=%v)", got, ok)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got, ok := Best[string](nil); ok {
			t.Errorf("expected no action, got %q", got)
		}
	})
}

func TestBestReturnsAMaximum(t *testing.T) {
	weights := []float64{0.3, -0.2, 0.75, 0.1, 0.74, 0.0}
	actions := make([]weighted.Action[int], len(weights))
	for i, w := range weights {
		actions[i] = weighted.New(i, w)
	}

	got, ok := Best(actions)
	if !ok {
		t.Fatal("expected an action")
	}
	for _, w := range weights {
		if weights[got] < w {
			t.Errorf("chosen weight %f is below %f", weights[got], w)
		}
	}
}

func TestFuzzy(t *testing.T) {
	t.Run("zero fuzziness keeps only the maximum", func(t *testing.T) {
		for _, offset := range []float64{0.0, 1.0} {
			got, ok := Fuzzy(sampleActions(), 0.0, offset)
			if !ok || got != "expected_action" {
				t.Errorf("offset %v: expected expected_action, got %q (ok=%v)", offset, got, ok)
			}
		}
	})

	t.Run("offset picks proportionally to weight", func(t *testing.T) {
		actions := []weighted.Action[string]{
			weighted.New("unexpected_action_one", 0.1),
			weighted.New("expected_action_two", 1.0),
			weighted.New("unexpected_action_three", 0.1),
			weighted.New("expected_action", 0.95),
		}

		tests := []struct {
			offset float64
			want   string
		}{
			{0.0, "expected_action_two"},
			{0.4, "expected_action_two"},
			{0.51, "expected_action_two"},
			{0.52, "expected_action"},
			{0.8, "expected_action"},
			{0.99, "expected_action"},
		}
		for _, tt := range tests {
			got, ok := Fuzzy(actions, 0.1, tt.offset)
			if !ok || got != tt.want {
				t.Errorf("offset %v: expected %q, got %q (ok=%v)", tt.offset, tt.want, got, ok)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got, ok := Fuzzy[string](nil, 0.5, 0.5); ok {
			t.Errorf("expected no action, got %q", got)
		}
	})

	t.Run("offset above one selects nothing", func(t *testing.T) {
		if got, ok := Fuzzy(sampleActions(), 0.5, 1.5); ok {
			t.Errorf("expected no action, got %q", got)
		}
	})

	t.Run("negative offset selects the heaviest", func(t *testing.T) {
		got, ok := Fuzzy(sampleActions(), 1.0, -0.3)
		if !ok || got != "expected_action" {
			t.Errorf("expected expected_action, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("single action", func(t *testing.T) {
		got, ok := Fuzzy([]weighted.Action[string]{weighted.New("only", 0.2)}, 0.0, 0.99)
		if !ok || got != "only" {
			t.Errorf("expected only, got %q (ok=%v)", got, ok)
		}
	})
}

func TestFuzzyTiesAreSampled(t *testing.T) {
	actions := []weighted.Action[string]{
		weighted.New("a", 0.5),
		weighted.New("low", 0.1),
		weighted.New("b", 0.5),
	}

	low, ok := Fuzzy(actions, 0.0, 0.25)
	if !ok {
		t.Fatal("expected an action for offset 0.25")
	}
	high, ok := Fuzzy(actions, 0.0, 0.75)
	if !ok {
		t.Fatal("expected an action for offset 0.75")
	}
	if low == high {
		t.Errorf("expected the two tied actions to split the offsets, both got %q", low)
	}
	for _, got := range []string{low, high} {
		if got != "a" && got != "b" {
			t.Errorf("expected a tied maximum, got %q", got)
		}
	}
}

func TestFuzzyDoesNotMutateInput(t *testing.T) {
	actions := sampleActions()
	before := make([]weighted.Action[string], len(actions))
	copy(before, actions)

	Fuzzy(actions, 0.3, 0.5)

	for i := range actions {
		if !actions[i].Equal(before[i]) {
			t.Fatalf("input changed at %d: %+v != %+v", i, actions[i], before[i])
		}
	}
}

func TestFuzzyIsDeterministicForAnOffset(t *testing.T) {
	actions := sampleActions()
	first, _ := Fuzzy(actions, 0.35, 0.6)
	for i := 0; i < 20; i++ {
		got, _ := Fuzzy(actions, 0.35, 0.6)
		if got != first {
			t.Fatalf("run %d: expected %q, got %q", i, first, got)
		}
	}
}
