// Package charts proxies parameterized report queries to the Google
// Analytics Data API for a fixed set of chart types.
//
// All failures are returned as data, never as errors crossing the HTTP
// boundary: a chart fetch always resolves, and the body carries either the
// raw report or an {error, message} marker the dashboard understands.
package charts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pixelgrove/gaboard/internal/app/store/fetchlog"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/app/system/daterange"
	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
	"go.uber.org/zap"
)

// Error messages returned to the dashboard. Wording is part of the API
// surface; the settings page links off the not-configured message.
const (
	MsgNotConfigured      = "Google Analytics plugin is not configured. Please provide propertyId and credentials in settings."
	MsgUnknownChartType   = "Unknown chart type"
	MsgInvalidCredentials = "Invalid Google Analytics credentials or property ID."
)

// ErrorResult is the error-as-data shape shared by all three failure
// classes: not configured, unknown chart type, and upstream rejection.
type ErrorResult struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Result is the outcome of one chart fetch. Exactly one of Report and Err
// is set.
type Result struct {
	Report *gadata.ReportResult
	Err    *ErrorResult
}

// Body returns the JSON-encodable response body for this result.
func (r Result) Body() any {
	if r.Err != nil {
		return r.Err
	}
	return r.Report
}

// SettingsSource supplies the stored plugin settings. The concrete store is
// injected so the gateway is testable without a live database.
type SettingsSource interface {
	Get(ctx context.Context) (settingsstore.Settings, error)
}

// Gateway resolves date ranges, loads settings, and issues report queries.
// It holds no mutable state; every fetch is an independent round trip.
type Gateway struct {
	settings SettingsSource
	runner   gadata.Runner
	ledger   *fetchlog.Store // optional; nil disables failure logging
	logger   *zap.Logger
	now      func() time.Time
}

// NewGateway creates a chart gateway. ledger may be nil.
func NewGateway(settings SettingsSource, runner gadata.Runner, ledger *fetchlog.Store, logger *zap.Logger) *Gateway {
	return &Gateway{
		settings: settings,
		runner:   runner,
		ledger:   ledger,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetChartData fetches the raw report for one chart type over a range
// preset. It never returns a Go error: every failure class is encoded in
// the Result so callers can pass it straight through to the response body.
func (g *Gateway) GetChartData(ctx context.Context, chartType, rng string) Result {
	settings, err := g.settings.Get(ctx)
	if err != nil || !settings.Configured() {
		// Missing settings are a recoverable condition, not a fault; any
		// store error collapses into the same not-configured answer.
		if err != nil && err != settingsstore.ErrNotFound {
			g.logger.Warn("settings load failed", zap.Error(err))
		}
		return g.fail(chartType, rng, fetchlog.ClassNotConfigured, MsgNotConfigured)
	}

	shape, ok := Shapes[chartType]
	if !ok {
		// Resolved synchronously, without contacting the analytics API.
		return g.fail(chartType, rng, fetchlog.ClassUnknownType, MsgUnknownChartType)
	}

	dates := daterange.Resolve(rng, g.now())
	req := &gadata.RunReportRequest{
		DateRanges: []gadata.DateRange{{StartDate: dates.StartDate, EndDate: dates.EndDate}},
		Dimensions: shape.Dimensions,
		Metrics:    shape.Metrics,
		Limit:      shape.Limit,
	}

	credentials, err := json.Marshal(settings.Credentials)
	if err != nil {
		g.logger.Warn("credentials not serializable", zap.Error(err))
		return g.fail(chartType, rng, fetchlog.ClassUpstream, MsgInvalidCredentials)
	}

	report, err := g.runner.RunReport(ctx, credentials, settings.PropertyID, req)
	if err != nil {
		g.logger.Warn("chart query failed",
			zap.String("chart_type", chartType),
			zap.String("range", rng),
			zap.Error(err),
		)
		return g.fail(chartType, rng, fetchlog.ClassUpstream, MsgInvalidCredentials)
	}

	return Result{Report: report}
}

// fail builds the error result and records it to the fetch ledger
// asynchronously. Ledger writes are best-effort.
func (g *Gateway) fail(chartType, rng string, class fetchlog.ErrorClass, msg string) Result {
	if g.ledger != nil {
		entry := fetchlog.Entry{
			RequestID:  uuid.New().String(),
			ChartType:  chartType,
			Range:      rng,
			ErrorClass: class,
			Message:    msg,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := g.ledger.Record(ctx, entry); err != nil {
				g.logger.Warn("failed to record fetch ledger entry", zap.Error(err))
			}
		}()
	}
	return Result{Err: &ErrorResult{Error: true, Message: msg}}
}
