package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Coverage/internal/broker"
	"github.com/MikeSquared-Agency/Coverage/internal/store"
)

func NewRouter(s store.Store, b *broker.Broker, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if rateLimit > 0 {
		r.Use(RateLimitMiddleware(rateLimit))
	}

	analyze := NewAnalyzeHandler(b)
	comparisons := NewComparisonsHandler(s, b)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		r.Post("/analyze", analyze.Analyze)
		r.Post("/analyze/report", analyze.Report)

		r.Post("/comparisons", comparisons.Create)
		r.Get("/comparisons", comparisons.List)
		r.Get("/comparisons/{id}", comparisons.Get)
		r.Put("/comparisons/{id}/points", comparisons.UpdatePoints)
		r.Get("/comparisons/{id}/analysis", comparisons.Analysis)
		r.Get("/comparisons/{id}/report", comparisons.Report)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Delete("/comparisons/{id}", comparisons.Delete)
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
