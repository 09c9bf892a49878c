// Package stats reports request statistics for the plugin's own API
// endpoints, summarized over a trailing window.
package stats

import (
	"net/http"
	"time"

	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// DefaultWindow is the trailing period summarized by GET /stats.
const DefaultWindow = 24 * time.Hour

// Response is the stats endpoint body.
type Response struct {
	Since     time.Time               `json:"since"`
	Summaries []reqstatsstore.Summary `json:"summaries"`
}

// Handler serves request statistics summaries.
type Handler struct {
	store  *reqstatsstore.Store
	logger *zap.Logger
}

// NewHandler creates a stats handler.
func NewHandler(store *reqstatsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetStats handles GET /stats and returns per-endpoint request totals,
// error counts, and latency over the last 24 hours.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().Add(-DefaultWindow)
	summaries, err := h.store.Summarize(r.Context(), since)
	if err != nil {
		h.logger.Error("summarizing request stats", zap.Error(err))
		jsonutil.InternalError(w, "failed to load request statistics")
		return
	}
	if summaries == nil {
		summaries = []reqstatsstore.Summary{}
	}
	jsonutil.OK(w, Response{Since: since, Summaries: summaries})
}
