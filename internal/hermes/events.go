package hermes

import (
	"context"
	"time"
)

// DecisionEvent is published after every decision, selected or not.
type DecisionEvent struct {
	DecisionID string    `json:"decision_id"`
	Profile    string    `json:"profile,omitempty"`
	Mode       string    `json:"mode"`
	Chosen     string    `json:"chosen,omitempty"`
	Selected   bool      `json:"selected"`
	Weight     float64   `json:"weight,omitempty"`
	Candidates int       `json:"candidates"`
	Timestamp  time.Time `json:"timestamp"`
}

// Subject returns the subject the event is published on.
func (e DecisionEvent) Subject() string {
	if e.Selected {
		return SubjectDecisionMade(e.DecisionID)
	}
	return SubjectDecisionEmpty(e.DecisionID)
}

// PublishDecision publishes e on its subject.
func PublishDecision(ctx context.Context, c Client, e DecisionEvent) error {
	return c.Publish(ctx, e.Subject(), e)
}
