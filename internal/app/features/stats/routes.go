package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixelgrove/gaboard/internal/app/system/apicors"
)

// Routes returns a router with the stats endpoint.
//
// When mounted at /api/stats:
//   - GET /api/stats
//
// Stats requests are deliberately not recorded into the stats they report.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Get("/", h.GetStats)
	return r
}
