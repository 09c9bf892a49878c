package charts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"github.com/pixelgrove/gaboard/internal/app/system/apicors"
	"github.com/pixelgrove/gaboard/internal/app/system/reqstats"
)

// Routes returns a router with the chart data endpoint.
//
// When mounted at /api/charts:
//   - GET /api/charts/{chartType}?range=<preset>
//
// The plugin's own routing layer is unauthenticated; authorization is the
// surrounding deployment gate's concern.
func Routes(h *Handler, recorder *reqstats.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Use(reqstats.Middleware(recorder, reqstatsstore.StatTypeChartFetch))
	r.Get("/{chartType}", h.GetChart)
	return r
}
