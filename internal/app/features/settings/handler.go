// Package settings exposes the plugin configuration over HTTP: read the
// stored settings and replace them wholesale.
package settings

import (
	"errors"
	"net/http"

	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"go.uber.org/zap"

	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
)

// Handler serves settings reads and writes.
type Handler struct {
	store  *settingsstore.Store
	logger *zap.Logger
}

// NewHandler creates a settings handler.
func NewHandler(store *settingsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetSettings handles GET /settings. Settings that were never saved come
// back as an empty object, not an error; the admin UI shows a blank form.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(r.Context())
	if err != nil {
		if errors.Is(err, settingsstore.ErrNotFound) {
			jsonutil.OK(w, struct{}{})
			return
		}
		h.logger.Error("loading settings", zap.Error(err))
		jsonutil.InternalError(w, "failed to load settings")
		return
	}
	jsonutil.OK(w, s)
}

// SetSettings handles PUT /settings. The body replaces the stored settings
// wholesale; fields absent from the body are dropped. Malformed JSON is
// rejected before anything is written.
func (h *Handler) SetSettings(w http.ResponseWriter, r *http.Request) {
	var s settingsstore.Settings
	if err := jsonutil.Decode(r, &s); err != nil {
		jsonutil.BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.store.Set(r.Context(), s); err != nil {
		h.logger.Error("saving settings", zap.Error(err))
		jsonutil.InternalError(w, "failed to save settings")
		return
	}

	h.logger.Info("settings updated",
		zap.String("property_id", s.PropertyID),
		zap.Bool("configured", s.Configured()),
	)
	jsonutil.OK(w, s)
}
