package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/broker"
	"github.com/MikeSquared-Agency/Coverage/internal/store"
)

type ComparisonsHandler struct {
	store  store.Store
	broker *broker.Broker
}

func NewComparisonsHandler(s store.Store, b *broker.Broker) *ComparisonsHandler {
	return &ComparisonsHandler{store: s, broker: b}
}

type CreateComparisonRequest struct {
	Name   string           `json:"name"`
	Source string           `json:"source,omitempty"`
	Points []analysis.Point `json:"points"`
}

// ComparisonResponse is a stored comparison together with its fresh analysis.
type ComparisonResponse struct {
	*store.Comparison
	Analysis *analysis.Result `json:"analysis"`
}

func (h *ComparisonsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	if req.Source == "" {
		req.Source = r.Header.Get(clientIDHeader)
	}

	c, res, err := h.broker.CreateComparison(r.Context(), req.Name, req.Source, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ComparisonResponse{Comparison: c, Analysis: res})
}

func (h *ComparisonsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ComparisonFilter{Source: q.Get("source")}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
			return
		}
		*dst = n
	}

	comparisons, err := h.store.ListComparisons(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if comparisons == nil {
		comparisons = []*store.Comparison{}
	}
	writeJSON(w, http.StatusOK, comparisons)
}

func (h *ComparisonsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetComparison(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		writeError(w, broker.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdatePoints replaces the points of a comparison and returns the
// recomputed analysis.
// PUT /api/v1/comparisons/{id}/points
func (h *ComparisonsHandler) UpdatePoints(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req PointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	c, res, err := h.broker.UpdatePoints(r.Context(), id, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{Comparison: c, Analysis: res})
}

func (h *ComparisonsHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	_, res, err := h.broker.Comparison(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ComparisonsHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	_, res, err := h.broker.Comparison(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeReport(w, r, res)
}

func (h *ComparisonsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.broker.DeleteComparison(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid comparison id"})
		return uuid.Nil, false
	}
	return id, true
}
