package curve

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSpecEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		value float64
		want  float64
	}{
		{"linear", Spec{Kind: KindLinear, Max: 4}, 1, 0.25},
		{"quadratic", Spec{Kind: KindQuadratic, Max: 1, Exponent: 0.5}, 0.5, 0.7071},
		{"logistic", Spec{Kind: KindLogistic, Steepness: 1}, 0.75, 0.5622},
		{"piecewise", Spec{Kind: KindPiecewise, Pieces: []Piece{
			{MaxValue: 0.25, MaxResult: 0.2, Shape: LinearShape},
			{MaxValue: 0.75, MaxResult: 0.8, Shape: LinearShape},
			{MaxValue: 1.0, MaxResult: 1.0, Shape: LinearShape},
		}}, 0.6, 0.64},
		{"inverted linear", Spec{Kind: KindLinear, Max: 4, Invert: true}, 1, 0.75},
		{"unknown kind", Spec{Kind: "cubic"}, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Evaluate(tt.value); math.Abs(got-tt.want) > tolerance {
				t.Errorf("Evaluate(%v) = %f, want %f", tt.value, got, tt.want)
			}
		})
	}
}

func TestSpecValidate(t *testing.T) {
	valid := []Spec{
		{Kind: KindLinear, Max: 1},
		{Kind: KindQuadratic, Max: 10, Exponent: 2},
		{Kind: KindLogistic, Steepness: -3},
		{Kind: KindPiecewise, Pieces: []Piece{
			{MaxValue: 0.5, MaxResult: 0.3},
			{MaxValue: 1, MaxResult: 1, Shape: QuadraticShape(2)},
		}},
	}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Errorf("expected %+v to be valid, got %v", s, err)
		}
	}

	invalid := map[string]Spec{
		"missing kind":      {},
		"unknown kind":      {Kind: "cubic"},
		"zero max":          {Kind: KindLinear},
		"infinite max":      {Kind: KindQuadratic, Max: math.Inf(1), Exponent: 1},
		"nan exponent":      {Kind: KindQuadratic, Max: 1, Exponent: math.NaN()},
		"zero steepness":    {Kind: KindLogistic},
		"no pieces":         {Kind: KindPiecewise},
		"non-increasing":    {Kind: KindPiecewise, Pieces: []Piece{{MaxValue: 0.5}, {MaxValue: 0.5}}},
		"first piece <= 0":  {Kind: KindPiecewise, Pieces: []Piece{{MaxValue: 0}}},
		"unknown shape":     {Kind: KindPiecewise, Pieces: []Piece{{MaxValue: 1, Shape: Shape{Kind: "cubic"}}}},
		"nan piece results": {Kind: KindPiecewise, Pieces: []Piece{{MaxValue: 1, MaxResult: math.NaN()}}},
	}
	for name, s := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := s.Validate(); err == nil {
				t.Errorf("expected validation error for %+v", s)
			}
		})
	}
}

func TestSpecFromYAML(t *testing.T) {
	doc := `
kind: piecewise
invert: true
pieces:
  - max_value: 0.25
    max_result: 0.2
  - max_value: 0.75
    max_result: 0.8
    shape:
      kind: quadratic
      exponent: 1
  - max_value: 1
    max_result: 1
`
	var s Spec
	if err := yaml.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(s.Pieces) != 3 || s.Pieces[1].Shape.Kind != ShapeQuadratic {
		t.Fatalf("unexpected pieces: %+v", s.Pieces)
	}
	if got := s.Evaluate(0.5); math.Abs(got-(1-0.5333)) > tolerance {
		t.Errorf("Evaluate(0.5) = %f, want %f", got, 1-0.5333)
	}
}
