package adminhandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/domain/audit"
	"kyronix/internal/platform/metrics"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
)

type Handler struct {
	Audit   *audit.Recorder
	Metrics *metrics.Collector
}

func NewHandler(db *pgxpool.Pool, collector *metrics.Collector) *Handler {
	return &Handler{Audit: audit.New(db), Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/metrics", h.HandleMetrics)
		r.Get("/audit", h.HandleAuditLog)
	})
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_limit", "limit must be a number", middleware.GetRequestID(r.Context()))
			return
		}
		limit = parsed
	}

	entries, err := h.Audit.List(r.Context(), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list audit entries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
