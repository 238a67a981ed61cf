package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Arbiter/internal/scoring"
)

// Decision is one recorded selection: what was offered, how it was weighed and
// what was chosen.
type Decision struct {
	ID           uuid.UUID   `json:"decision_id"`
	Profile      string      `json:"profile,omitempty"`
	Mode         string      `json:"mode"`
	Fuzziness    float64     `json:"fuzziness"`
	ChoiceOffset *float64    `json:"choice_offset,omitempty"`
	Chosen       string      `json:"chosen,omitempty"`
	Selected     bool        `json:"selected"`
	Fallback     string      `json:"fallback,omitempty"`
	Candidates   []Candidate `json:"candidates"`
	ClientID     string      `json:"client_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Candidate is one option as the selector saw it.
type Candidate struct {
	Name     string                 `json:"name"`
	Weight   float64                `json:"weight"`
	Eligible bool                   `json:"eligible"`
	Factors  []scoring.FactorResult `json:"factors,omitempty"`
}

type DecisionFilter struct {
	Profile string
	Chosen  string
	Limit   int
	Offset  int
}

type Store interface {
	CreateDecision(ctx context.Context, d *Decision) error
	GetDecision(ctx context.Context, id uuid.UUID) (*Decision, error)
	ListDecisions(ctx context.Context, filter DecisionFilter) ([]*Decision, error)
	Close() error
}
