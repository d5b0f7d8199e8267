package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/broker"
	"github.com/MikeSquared-Agency/Coverage/internal/report"
)

type AnalyzeHandler struct {
	broker *broker.Broker
}

func NewAnalyzeHandler(b *broker.Broker) *AnalyzeHandler {
	return &AnalyzeHandler{broker: b}
}

type PointsRequest struct {
	Points []analysis.Point `json:"points"`
}

// Analyze computes the analysis of the posted points without storing them.
// POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	res, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Report renders the analysis of the posted points as text.
// POST /api/v1/analyze/report
func (h *AnalyzeHandler) Report(w http.ResponseWriter, r *http.Request) {
	res, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeReport(w, r, res)
}

func (h *AnalyzeHandler) analyze(w http.ResponseWriter, r *http.Request) (*analysis.Result, bool) {
	var req PointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	res, err := h.broker.Analyze(req.Points)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return res, true
}

// writeReport answers with plain text, or with the report sections as JSON
// when format=json is requested.
func writeReport(w http.ResponseWriter, r *http.Request, res *analysis.Result) {
	sections := report.Build(res)
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, sections)
		return
	}
	writeText(w, http.StatusOK, report.Text(sections))
}
