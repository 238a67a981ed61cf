// Package curve provides response curves that map raw measurements to weights.
//
// The functions do not clamp or validate. Callers keep value inside the domain
// they intend (usually [0, max]); division by a zero max yields Inf or NaN.
package curve

import "math"

// Linear returns value / max.
func Linear(value, max float64) float64 {
	return value / max
}

// Quadratic returns Linear(value, max) raised to exponent. Exponents below 1
// rise quickly and flatten out; exponents above 1 start slow.
func Quadratic(value, max, exponent float64) float64 {
	return math.Pow(Linear(value, max), exponent)
}

// Logistic is a sigmoid with its midpoint at 0.5 and a peak of 1.0.
// Logistic(0.5, s) is 0.5 for every steepness s.
func Logistic(value, steepness float64) float64 {
	return parameterizedLogistic(value, 1.0, 0.5, steepness)
}

func parameterizedLogistic(value, maxValue, midPoint, steepness float64) float64 {
	return maxValue / (1.0 + math.Exp(-steepness*(value-midPoint)))
}

// Invert returns 1 - value, turning "higher is better" into "lower is better".
func Invert(value float64) float64 {
	return 1.0 - value
}

// ShapeKind names the curve applied inside a Piece.
type ShapeKind string

const (
	ShapeLinear    ShapeKind = "linear"
	ShapeQuadratic ShapeKind = "quadratic"
)

// Shape is the curve of a single Piece. The zero value is linear.
type Shape struct {
	Kind     ShapeKind `yaml:"kind" json:"kind"`
	Exponent float64   `yaml:"exponent,omitempty" json:"exponent,omitempty"`
}

// LinearShape is the linear piece shape.
var LinearShape = Shape{Kind: ShapeLinear}

// QuadraticShape returns a quadratic piece shape with the given exponent.
func QuadraticShape(exponent float64) Shape {
	return Shape{Kind: ShapeQuadratic, Exponent: exponent}
}

// Piece covers the interval (previous.MaxValue, MaxValue] of a piecewise curve.
// The first piece starts at 0.
type Piece struct {
	MaxValue  float64 `yaml:"max_value" json:"max_value"`
	MaxResult float64 `yaml:"max_result" json:"max_result"`
	Shape     Shape   `yaml:"shape" json:"shape"`
}

// PieceWise evaluates value against an ordered piece table. The first piece
// whose interval contains value normalizes it by the piece's MaxValue, applies
// the piece shape and scales by MaxResult. Values outside every interval,
// including anything <= 0, yield 0.
//
// MaxValue should be strictly increasing; a table that is not simply leaves
// some intervals unreachable.
func PieceWise(value float64, pieces []Piece) float64 {
	previousMax := 0.0
	for _, piece := range pieces {
		if value > previousMax && value <= piece.MaxValue {
			normalized := value / piece.MaxValue
			var result float64
			switch piece.Shape.Kind {
			case ShapeQuadratic:
				result = Quadratic(normalized, 1.0, piece.Shape.Exponent)
			default:
				result = Linear(normalized, 1.0)
			}
			return result * piece.MaxResult
		}
		previousMax = piece.MaxValue
	}
	return 0.0
}
