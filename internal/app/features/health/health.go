// Package health provides health check endpoints covering the database and
// the plugin's configuration state.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler provides health check endpoints.
type Handler struct {
	mongoClient *mongo.Client
	settings    *settingsstore.Store // optional; nil skips the configured flag
	logger      *zap.Logger
}

// NewHandler creates a new health check Handler. settings may be nil.
func NewHandler(mongoClient *mongo.Client, settings *settingsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		settings:    settings,
		logger:      logger,
	}
}

// Response represents the health check response. Configured reports whether
// analytics credentials are saved; an unconfigured plugin is healthy but
// every chart fetch will answer with the not-configured error.
type Response struct {
	Status     string            `json:"status"`
	Services   map[string]string `json:"services,omitempty"`
	Configured *bool             `json:"configured,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds probe endpoints directly on the root router,
// following the usual Kubernetes conventions:
//   - /ready (or /readyz) - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check performs a full health check: database connectivity plus whether
// analytics settings have been saved.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		resp.Status = "degraded"
		resp.Services["mongodb"] = "unavailable"
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
	} else {
		resp.Services["mongodb"] = "ok"
	}

	if h.settings != nil && resp.Services["mongodb"] == "ok" {
		configured := false
		s, err := h.settings.Get(ctx)
		switch {
		case err == nil:
			configured = s.Configured()
		case errors.Is(err, settingsstore.ErrNotFound):
			// never saved; configured stays false
		default:
			h.logger.Warn("health check: settings load failed", zap.Error(err))
		}
		resp.Configured = &configured
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	jsonutil.JSON(w, status, resp)
}

// Ready checks if the service is ready to accept requests.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ready"}`))
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"alive"}`))
}
