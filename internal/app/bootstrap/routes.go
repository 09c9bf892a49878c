// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	chartsfeature "github.com/pixelgrove/gaboard/internal/app/features/charts"
	dashboardfeature "github.com/pixelgrove/gaboard/internal/app/features/dashboard"
	healthfeature "github.com/pixelgrove/gaboard/internal/app/features/health"
	settingsfeature "github.com/pixelgrove/gaboard/internal/app/features/settings"
	statsfeature "github.com/pixelgrove/gaboard/internal/app/features/stats"
	"github.com/pixelgrove/gaboard/internal/app/store/fetchlog"
	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
	"github.com/pixelgrove/gaboard/internal/app/system/jsonutil"
	"github.com/pixelgrove/gaboard/internal/app/system/reqstats"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every route this service exposes is a
// JSON API; there is no session layer and no CSRF because the surrounding
// deployment gate owns authentication for the admin surface.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Stores
	settings := settingsstore.New(deps.MongoDatabase)
	ledger := fetchlog.New(deps.MongoDatabase)
	statsStore := reqstatsstore.New(deps.MongoDatabase)

	// Request statistics recorder shared by the API routers.
	recorder := reqstats.NewRecorder(statsStore, logger, appCfg.StatsBucket)

	// Analytics Data API client. Credentials come from stored settings on
	// every call, so the client itself carries no authentication state.
	clientOpts := []gadata.Option{gadata.WithTimeout(appCfg.AnalyticsTimeout)}
	if appCfg.AnalyticsEndpoint != "" {
		clientOpts = append(clientOpts, gadata.WithBaseURL(appCfg.AnalyticsEndpoint))
		logger.Info("using analytics endpoint override",
			zap.String("endpoint", appCfg.AnalyticsEndpoint))
	}
	runner := gadata.NewClient(logger, clientOpts...)

	gateway := chartsfeature.NewGateway(settings, runner, ledger, logger)

	policy := dashboardfeature.Policy(dashboardfeature.AllOrNothing)
	if appCfg.DashboardPolicy == "partial" {
		policy = dashboardfeature.PartialSuccess
	}
	aggregator := dashboardfeature.NewAggregator(gateway, policy, logger)

	r := chi.NewRouter()

	// Global middleware. CORS must run early to answer preflights.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// API routes
	chartsHandler := chartsfeature.NewHandler(gateway, logger)
	r.Mount("/api/charts", chartsfeature.Routes(chartsHandler, recorder))

	settingsHandler := settingsfeature.NewHandler(settings, logger)
	r.Mount("/api/settings", settingsfeature.Routes(settingsHandler, recorder))

	dashboardHandler := dashboardfeature.NewHandler(aggregator, logger)
	r.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler, recorder))

	statsHandler := statsfeature.NewHandler(statsStore, logger)
	r.Mount("/api/stats", statsfeature.Routes(statsHandler))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, settings, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Unknown paths answer JSON like everything else.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.Error(w, http.StatusNotFound, "not found")
	})

	return r, nil
}
