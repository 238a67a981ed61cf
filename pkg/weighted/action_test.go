package weighted

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want int
	}{
		{"greater", 0.6, 0.5, 1},
		{"less", 0.1, 0.5, -1},
		{"equal", 0.5, 0.5, 0},
		{"negative weights", -1.0, -2.0, 1},
		{"nan left", math.NaN(), 0.5, 0},
		{"nan right", 0.5, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New("a", tt.a).Compare(New("b", tt.b))
			if got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqualRequiresActionAndWeight(t *testing.T) {
	a := New("attack", 0.5)

	if !a.Equal(New("attack", 0.5)) {
		t.Error("expected identical actions to be equal")
	}
	if a.Equal(New("flee", 0.5)) {
		t.Error("expected different actions with the same weight to be unequal")
	}
	if a.Equal(New("attack", 0.4)) {
		t.Error("expected same action with different weight to be unequal")
	}
}

func TestTiedButNotEqual(t *testing.T) {
	a := New("attack", 0.5)
	b := New("flee", 0.5)

	if a.Compare(b) != 0 {
		t.Errorf("expected a tie, got %d", a.Compare(b))
	}
	if a.Equal(b) {
		t.Error("tied actions must not be equal when the actions differ")
	}
}
