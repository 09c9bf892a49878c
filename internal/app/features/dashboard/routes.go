package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"github.com/pixelgrove/gaboard/internal/app/system/apicors"
	"github.com/pixelgrove/gaboard/internal/app/system/reqstats"
)

// Routes returns a router with the dashboard endpoint.
//
// When mounted at /api/dashboard:
//   - GET /api/dashboard?range=<preset>
func Routes(h *Handler, recorder *reqstats.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Use(reqstats.Middleware(recorder, reqstatsstore.StatTypeDashboardFetch))
	r.Get("/", h.GetDashboard)
	return r
}
