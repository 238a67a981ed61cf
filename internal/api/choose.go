package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Arbiter/internal/decider"
	"github.com/MikeSquared-Agency/Arbiter/pkg/weighted"
)

type ChooseHandler struct {
	decider *decider.Decider
}

func NewChooseHandler(d *decider.Decider) *ChooseHandler {
	return &ChooseHandler{decider: d}
}

type ChooseRequest struct {
	Actions      []weighted.Action[string] `json:"actions"`
	Mode         string                    `json:"mode,omitempty"`
	Fuzziness    *float64                  `json:"fuzziness,omitempty"`
	ChoiceOffset *float64                  `json:"choice_offset,omitempty"`
}

type ChooseResponse struct {
	DecisionID   uuid.UUID `json:"decision_id"`
	Chosen       string    `json:"chosen"`
	Selected     bool      `json:"selected"`
	Mode         string    `json:"mode"`
	ChoiceOffset *float64  `json:"choice_offset,omitempty"`
}

// Choose selects among actions the caller has already weighted.
// POST /api/v1/choose
func (h *ChooseHandler) Choose(w http.ResponseWriter, r *http.Request) {
	var req ChooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dec, err := h.decider.Choose(r.Context(), decider.ChooseRequest{
		Actions:      req.Actions,
		Mode:         req.Mode,
		Fuzziness:    req.Fuzziness,
		ChoiceOffset: req.ChoiceOffset,
		ClientID:     r.Header.Get(ClientIDHeader),
	})
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChooseResponse{
		DecisionID:   dec.ID,
		Chosen:       dec.Chosen,
		Selected:     dec.Selected,
		Mode:         dec.Mode,
		ChoiceOffset: dec.ChoiceOffset,
	})
}
