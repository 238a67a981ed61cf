package store

import (
	"encoding/json"
	"testing"

	"github.com/MikeSquared-Agency/Arbiter/internal/scoring"
)

func TestDecisionFilterDefaults(t *testing.T) {
	f := DecisionFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Profile != "" || f.Chosen != "" {
		t.Error("expected empty filters")
	}
}

func TestDecisionJSON(t *testing.T) {
	offset := 0.4
	d := Decision{
		Profile:      "combat",
		Mode:         "fuzzy",
		Fuzziness:    0.1,
		ChoiceOffset: &offset,
		Chosen:       "attack",
		Selected:     true,
		Candidates: []Candidate{
			{Name: "attack", Weight: 0.9, Eligible: true, Factors: []scoring.FactorResult{{Name: "health", Score: 0.9}}},
			{Name: "flee", Weight: 0, Eligible: false},
		},
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"decision_id", "mode", "chosen", "selected", "candidates", "choice_offset"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %s in %s", key, data)
		}
	}
	if _, ok := m["client_id"]; ok {
		t.Error("empty client_id should be omitted")
	}
}

func TestEmptyDecisionOmitsChosen(t *testing.T) {
	data, err := json.Marshal(Decision{Mode: "strict"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	_ = json.Unmarshal(data, &m)
	if _, ok := m["chosen"]; ok {
		t.Errorf("expected chosen to be omitted, got %s", data)
	}
	if m["selected"] != false {
		t.Errorf("expected selected=false, got %v", m["selected"])
	}
}
