package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessCheck reports whether a dependency is ready to serve.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	logger            *slog.Logger
	checks            map[string]ReadinessCheck
	metrics           http.Handler
	serviceName       string
	regulationVersion string
}

// NewHealthHandler creates a health check HTTP handler. metrics may be nil.
func NewHealthHandler(logger *slog.Logger, serviceName, regulationVersion string, metrics http.Handler) *HealthHandler {
	return &HealthHandler{
		logger:            logger,
		checks:            make(map[string]ReadinessCheck),
		metrics:           metrics,
		serviceName:       serviceName,
		regulationVersion: regulationVersion,
	}
}

// AddCheck registers a named readiness check. Not safe to call once serving.
func (h *HealthHandler) AddCheck(name string, check ReadinessCheck) {
	h.checks[name] = check
}

// RegisterRoutes attaches health-check and metrics routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failed := make(map[string]string)
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			failed[name] = err.Error()
		}
	}

	body := map[string]any{
		"service":            h.serviceName,
		"regulation_version": h.regulationVersion,
	}
	if len(failed) > 0 {
		body["status"] = "not_ready"
		body["failed"] = failed
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ready"
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
