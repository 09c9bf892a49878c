// Package dashboard assembles the full analytics dashboard in one request:
// all chart types are fetched concurrently, transformed into render-ready
// series, and merged under a configurable error policy.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/pixelgrove/gaboard/internal/app/features/charts"
	"github.com/pixelgrove/gaboard/internal/app/system/chartdata"
	"github.com/pixelgrove/gaboard/internal/app/system/daterange"
	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// View is the dashboard response body when the fetch succeeds.
type View struct {
	Range     string                     `json:"range"`
	StartDate string                     `json:"startDate"`
	EndDate   string                     `json:"endDate"`
	Charts    map[string]chartdata.Chart `json:"charts"`
	// Errors is only populated under the partial-success policy.
	Errors map[string]string `json:"errors,omitempty"`
}

// Failure is one chart that could not be fetched, in render order.
type Failure struct {
	ChartType string
	Err       *charts.ErrorResult
}

// Policy merges per-chart outcomes into a single response body.
type Policy func(view View, failures []Failure) any

// AllOrNothing discards every chart when any fetch failed and yields the
// first failure alone. A dashboard with holes in it reads as broken, so
// one error body replaces the whole view.
func AllOrNothing(view View, failures []Failure) any {
	if len(failures) > 0 {
		return failures[0].Err
	}
	return view
}

// PartialSuccess keeps the charts that succeeded and reports the failed
// ones by name alongside them.
func PartialSuccess(view View, failures []Failure) any {
	for _, f := range failures {
		if view.Errors == nil {
			view.Errors = make(map[string]string, len(failures))
		}
		view.Errors[f.ChartType] = f.Err.Message
	}
	return view
}

// Aggregator fans one dashboard request out into per-chart fetches.
type Aggregator struct {
	gateway *charts.Gateway
	policy  Policy
	logger  *zap.Logger
	now     func() time.Time
}

// NewAggregator creates a dashboard aggregator. A nil policy defaults to
// AllOrNothing.
func NewAggregator(gateway *charts.Gateway, policy Policy, logger *zap.Logger) *Aggregator {
	if policy == nil {
		policy = AllOrNothing
	}
	return &Aggregator{
		gateway: gateway,
		policy:  policy,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Fetch loads and transforms every chart type concurrently and merges the
// outcomes under the aggregator's policy. Like single chart fetches it
// never returns an error; the body is the answer.
func (a *Aggregator) Fetch(ctx context.Context, rng string) any {
	dates := daterange.Resolve(rng, a.now())
	view := View{
		Range:     rng,
		StartDate: dates.StartDate,
		EndDate:   dates.EndDate,
		Charts:    make(map[string]chartdata.Chart, len(charts.Types)),
	}

	var mu sync.Mutex
	failures := make([]Failure, len(charts.Types))

	g, gctx := errgroup.WithContext(ctx)
	for i, chartType := range charts.Types {
		i, chartType := i, chartType
		g.Go(func() error {
			res := a.gateway.GetChartData(gctx, chartType, rng)
			mu.Lock()
			defer mu.Unlock()
			if res.Err != nil {
				failures[i] = Failure{ChartType: chartType, Err: res.Err}
				return nil
			}
			view.Charts[chartType] = transform(chartType, res.Report)
			return nil
		})
	}
	// Fetch outcomes are carried as data, so Wait cannot fail.
	_ = g.Wait()

	// Compact while preserving render order, so AllOrNothing reports the
	// first failing chart deterministically.
	ordered := failures[:0]
	for _, f := range failures {
		if f.Err != nil {
			ordered = append(ordered, f)
		}
	}
	if len(ordered) > 0 {
		a.logger.Debug("dashboard fetch had failures",
			zap.String("range", rng),
			zap.Int("failed", len(ordered)),
		)
	}
	return a.policy(view, ordered)
}

// transform picks the series shape matching the chart's query kind.
func transform(chartType string, report *gadata.ReportResult) chartdata.Chart {
	if charts.Shapes[chartType].Kind == charts.KindTimeSeries {
		return chartdata.TimeSeries(report)
	}
	return chartdata.Categorical(report)
}
