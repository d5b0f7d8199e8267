package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/broker"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, broker.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, analysis.ErrInvalidPoint),
		errors.Is(err, analysis.ErrEmptyModel),
		errors.Is(err, analysis.ErrDuplicateModel),
		errors.Is(err, analysis.ErrReservedModel):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
