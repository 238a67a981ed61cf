package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Arbiter/internal/decider"
	"github.com/MikeSquared-Agency/Arbiter/internal/scoring"
	"github.com/MikeSquared-Agency/Arbiter/internal/store"
)

type DecisionsHandler struct {
	decider *decider.Decider
	store   store.Store
}

func NewDecisionsHandler(d *decider.Decider, s store.Store) *DecisionsHandler {
	return &DecisionsHandler{decider: d, store: s}
}

type CreateDecisionRequest struct {
	Profile      string           `json:"profile,omitempty"`
	Options      []decider.Option `json:"options"`
	Mode         string           `json:"mode,omitempty"`
	Fuzziness    *float64         `json:"fuzziness,omitempty"`
	ChoiceOffset *float64         `json:"choice_offset,omitempty"`
}

// Create scores the options against a profile and records the decision.
// POST /api/v1/decisions
func (h *DecisionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dec, err := h.decider.Decide(r.Context(), decider.Request{
		Profile:      req.Profile,
		Options:      req.Options,
		Mode:         req.Mode,
		Fuzziness:    req.Fuzziness,
		ChoiceOffset: req.ChoiceOffset,
		ClientID:     r.Header.Get(ClientIDHeader),
	})
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dec)
}

func (h *DecisionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "decision history disabled")
		return
	}

	q := r.URL.Query()
	filter := store.DecisionFilter{
		Profile: q.Get("profile"),
		Chosen:  q.Get("chosen"),
	}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid "+key)
			return
		}
		*dst = n
	}

	decisions, err := h.store.ListDecisions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if decisions == nil {
		decisions = []*store.Decision{}
	}
	writeJSON(w, http.StatusOK, decisions)
}

// Explain returns a stored decision with its candidates ranked by weight.
// GET /api/v1/decisions/{id}
func (h *DecisionsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "decision history disabled")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	dec, err := h.store.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dec == nil {
		writeError(w, http.StatusNotFound, "decision not found")
		return
	}

	ranking := make([]store.Candidate, len(dec.Candidates))
	copy(ranking, dec.Candidates)
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Eligible != ranking[j].Eligible {
			return ranking[i].Eligible
		}
		return ranking[i].Weight > ranking[j].Weight
	})

	resp := map[string]interface{}{
		"decision_id": dec.ID,
		"profile":     dec.Profile,
		"mode":        dec.Mode,
		"fuzziness":   dec.Fuzziness,
		"selected":    dec.Selected,
		"ranking":     ranking,
		"created_at":  dec.CreatedAt,
	}
	if dec.Selected {
		resp["chosen"] = dec.Chosen
	}
	if dec.ChoiceOffset != nil {
		resp["choice_offset"] = *dec.ChoiceOffset
	}
	if dec.Fallback != "" {
		resp["fallback"] = dec.Fallback
	}

	var scored []scoring.ScoringResult
	for _, c := range dec.Candidates {
		if c.Eligible && len(c.Factors) > 0 {
			scored = append(scored, scoring.ScoringResult{Option: c.Name, Factors: c.Factors})
		}
	}
	if len(scored) > 0 {
		resp["pareto_frontier"] = scoring.FrontierOf(scored)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, decider.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, decider.ErrInvalidMode),
		errors.Is(err, decider.ErrInvalidFuzziness),
		errors.Is(err, decider.ErrInvalidOffset),
		errors.Is(err, decider.ErrInvalidOption),
		errors.Is(err, decider.ErrInvalidMeasurement),
		errors.Is(err, decider.ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
