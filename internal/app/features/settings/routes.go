package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"github.com/pixelgrove/gaboard/internal/app/system/apicors"
	"github.com/pixelgrove/gaboard/internal/app/system/reqstats"
)

// Routes returns a router with the settings endpoints.
//
// When mounted at /api/settings:
//   - GET /api/settings
//   - PUT /api/settings
func Routes(h *Handler, recorder *reqstats.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.With(reqstats.Middleware(recorder, reqstatsstore.StatTypeSettingsGet)).
		Get("/", h.GetSettings)
	r.With(reqstats.Middleware(recorder, reqstatsstore.StatTypeSettingsPut)).
		Put("/", h.SetSettings)
	return r
}
