package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Arbiter/internal/decider"
)

type ProfilesHandler struct {
	decider *decider.Decider
}

func NewProfilesHandler(d *decider.Decider) *ProfilesHandler {
	return &ProfilesHandler{decider: d}
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.decider.Profiles())
}
