// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to this service. The
// struct is passed to most lifecycle hooks, so configuration needed during
// startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Analytics Data API configuration
	// AnalyticsEndpoint overrides the API base URL. Leave empty for the
	// public Google endpoint; point it at a stub server in testing.
	AnalyticsEndpoint string
	// AnalyticsTimeout bounds each report query round trip.
	AnalyticsTimeout time.Duration

	// DashboardPolicy selects the dashboard merge policy:
	// "all-or-nothing" (default) or "partial".
	DashboardPolicy string

	// StatsBucket is the aggregation bucket for request statistics
	// (e.g., 15m, 1h).
	StatsBucket time.Duration
}
