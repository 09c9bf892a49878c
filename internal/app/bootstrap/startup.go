// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup and prevents the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Report the configuration state so an unconfigured install is obvious
	// in the logs rather than a mystery of failing chart fetches.
	store := settingsstore.New(deps.MongoDatabase)
	s, err := store.Get(ctx)
	switch {
	case errors.Is(err, settingsstore.ErrNotFound):
		logger.Info("analytics settings not saved yet; chart endpoints will answer not-configured")
	case err != nil:
		logger.Warn("could not read analytics settings at startup", zap.Error(err))
	case !s.Configured():
		logger.Info("analytics settings incomplete; chart endpoints will answer not-configured",
			zap.Bool("has_property_id", s.PropertyID != ""),
			zap.Bool("has_credentials", len(s.Credentials) > 0),
		)
	default:
		logger.Info("analytics settings loaded",
			zap.String("property_id", s.PropertyID),
		)
	}

	return nil
}
