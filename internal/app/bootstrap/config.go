// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "GABOARD"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, stats_bucket, etc.
//   - Environment variables: GABOARD_MONGO_URI, GABOARD_STATS_BUCKET, etc.
//   - Command-line flags: --mongo_uri, --stats_bucket, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "gaboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Analytics Data API configuration
	{Name: "analytics_endpoint", Default: "", Desc: "Analytics Data API base URL override (empty uses the public endpoint)"},
	{Name: "analytics_timeout", Default: "15s", Desc: "Per-query timeout for Analytics Data API calls"},

	// Dashboard configuration
	{Name: "dashboard_policy", Default: "all-or-nothing", Desc: "Dashboard merge policy: 'all-or-nothing' or 'partial'"},

	// Request stats configuration
	{Name: "stats_bucket", Default: "1h", Desc: "Request stats bucket duration (e.g., '1m', '15m', '1h', '24h')"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// config.LoadWithAppConfig merges flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AnalyticsEndpoint: appValues.String("analytics_endpoint"),
		AnalyticsTimeout:  appValues.Duration("analytics_timeout", 15*time.Second),

		DashboardPolicy: appValues.String("dashboard_policy"),

		StatsBucket: appValues.Duration("stats_bucket", time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.DashboardPolicy {
	case "all-or-nothing", "partial":
	default:
		return fmt.Errorf("unknown dashboard policy: %s", appCfg.DashboardPolicy)
	}

	if appCfg.StatsBucket < time.Minute {
		return fmt.Errorf("stats bucket must be at least 1m, got %s", appCfg.StatsBucket)
	}

	return nil
}
