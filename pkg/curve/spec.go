package curve

import (
	"errors"
	"fmt"
	"math"
)

// Kind selects which curve function a Spec evaluates.
type Kind string

const (
	KindLinear    Kind = "linear"
	KindQuadratic Kind = "quadratic"
	KindLogistic  Kind = "logistic"
	KindPiecewise Kind = "piecewise"
)

// Spec is a curve described as data, so curves can live in config files and
// request bodies. Only the fields relevant to Kind are read.
type Spec struct {
	Kind      Kind    `yaml:"kind" json:"kind"`
	Max       float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Exponent  float64 `yaml:"exponent,omitempty" json:"exponent,omitempty"`
	Steepness float64 `yaml:"steepness,omitempty" json:"steepness,omitempty"`
	Pieces    []Piece `yaml:"pieces,omitempty" json:"pieces,omitempty"`
	Invert    bool    `yaml:"invert,omitempty" json:"invert,omitempty"`
}

// Evaluate runs value through the curve. Invert is applied last. An unknown
// Kind evaluates to 0; call Validate first to catch it.
func (s Spec) Evaluate(value float64) float64 {
	var result float64
	switch s.Kind {
	case KindLinear:
		result = Linear(value, s.Max)
	case KindQuadratic:
		result = Quadratic(value, s.Max, s.Exponent)
	case KindLogistic:
		result = Logistic(value, s.Steepness)
	case KindPiecewise:
		result = PieceWise(value, s.Pieces)
	}
	if s.Invert {
		result = Invert(result)
	}
	return result
}

// Validate reports parameters that make the curve degenerate. Evaluate never
// calls it.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindLinear:
		return validateMax(s.Max)
	case KindQuadratic:
		if err := validateMax(s.Max); err != nil {
			return err
		}
		if !finite(s.Exponent) {
			return fmt.Errorf("exponent must be finite, got %v", s.Exponent)
		}
		return nil
	case KindLogistic:
		if s.Steepness == 0 || !finite(s.Steepness) {
			return fmt.Errorf("steepness must be finite and non-zero, got %v", s.Steepness)
		}
		return nil
	case KindPiecewise:
		return validatePieces(s.Pieces)
	case "":
		return errors.New("curve kind is required")
	default:
		return fmt.Errorf("unknown curve kind %q", s.Kind)
	}
}

func validateMax(max float64) error {
	if max == 0 || !finite(max) {
		return fmt.Errorf("max must be finite and non-zero, got %v", max)
	}
	return nil
}

func validatePieces(pieces []Piece) error {
	if len(pieces) == 0 {
		return errors.New("piecewise curve needs at least one piece")
	}
	previousMax := 0.0
	for i, p := range pieces {
		if !finite(p.MaxValue) || !finite(p.MaxResult) {
			return fmt.Errorf("piece %d: values must be finite", i)
		}
		if p.MaxValue <= previousMax {
			return fmt.Errorf("piece %d: max_value %v must be greater than %v", i, p.MaxValue, previousMax)
		}
		switch p.Shape.Kind {
		case "", ShapeLinear:
		case ShapeQuadratic:
			if !finite(p.Shape.Exponent) {
				return fmt.Errorf("piece %d: exponent must be finite", i)
			}
		default:
			return fmt.Errorf("piece %d: unknown shape %q", i, p.Shape.Kind)
		}
		previousMax = p.MaxValue
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
