package dashboard

import (
	"net/http"

	"github.com/pixelgrove/gaboard/internal/app/features/charts"
	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// Handler serves the aggregated dashboard view.
type Handler struct {
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(aggregator *Aggregator, logger *zap.Logger) *Handler {
	return &Handler{aggregator: aggregator, logger: logger}
}

// GetDashboard handles GET /dashboard?range=<preset>. The response is
// always 200; an error body replaces the view under the active policy.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = charts.DefaultRange
	}
	jsonutil.OK(w, h.aggregator.Fetch(r.Context(), rng))
}
