package charts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// DefaultRange is used when the range query parameter is absent.
const DefaultRange = "7d"

// Handler serves raw chart data requests.
type Handler struct {
	gateway *Gateway
	logger  *zap.Logger
}

// NewHandler creates a charts handler.
func NewHandler(gateway *Gateway, logger *zap.Logger) *Handler {
	return &Handler{gateway: gateway, logger: logger}
}

// GetChart handles GET /charts/{chartType}?range=<preset>.
//
// The response is always 200 with either the raw report or an
// {error, message} body; failure never surfaces as an HTTP error status
// because the dashboard inspects bodies, not status codes.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	chartType := chi.URLParam(r, "chartType")
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = DefaultRange
	}

	result := h.gateway.GetChartData(r.Context(), chartType, rng)
	jsonutil.OK(w, result.Body())
}
