package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/MikeSquared-Agency/Arbiter/internal/metrics"
	"github.com/MikeSquared-Agency/Arbiter/pkg/curve"
)

type CurvesHandler struct{}

func NewCurvesHandler() *CurvesHandler {
	return &CurvesHandler{}
}

type EvaluateCurveRequest struct {
	Curve curve.Spec `json:"curve"`
	Value float64    `json:"value"`
}

// EvaluateCurveResponse carries a nil Result when the curve is undefined at
// Value, such as a fractional exponent of a negative input.
type EvaluateCurveResponse struct {
	Value  float64  `json:"value"`
	Result *float64 `json:"result"`
}

// Evaluate runs one value through a curve.
// POST /api/v1/curves/evaluate
func (h *CurvesHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateCurveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Curve.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.CurveEvaluations.WithLabelValues(string(req.Curve.Kind)).Inc()
	resp := EvaluateCurveResponse{Value: req.Value}
	if v := req.Curve.Evaluate(req.Value); !math.IsNaN(v) && !math.IsInf(v, 0) {
		resp.Result = &v
	}
	writeJSON(w, http.StatusOK, resp)
}
