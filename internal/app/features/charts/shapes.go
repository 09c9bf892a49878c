package charts

import (
	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
)

// Kind distinguishes how a chart's rows are shaped downstream.
type Kind string

const (
	// KindTimeSeries reports have a "date" dimension and one or more
	// metrics per day.
	KindTimeSeries Kind = "timeseries"
	// KindCategorical reports have one categorical dimension and one
	// metric per category.
	KindCategorical Kind = "categorical"
)

// categoricalLimit caps the top-N breakdowns (country, source, path).
const categoricalLimit = 10

// Shape is a fixed dimension/metric combination defining one chart's query
// against the analytics API. Shapes are compile-time constants and not
// user-extensible.
type Shape struct {
	Kind       Kind
	Dimensions []gadata.Dimension
	Metrics    []gadata.Metric
	Limit      int64
}

// Shapes maps each supported chart type to its query shape.
var Shapes = map[string]Shape{
	"overview": {
		Kind:       KindTimeSeries,
		Dimensions: []gadata.Dimension{{Name: "date"}},
		Metrics: []gadata.Metric{
			{Name: "activeUsers"},
			{Name: "sessions"},
			{Name: "bounceRate"},
			{Name: "screenPageViews"},
			{Name: "engagementRate"},
			{Name: "newUsers"},
		},
	},
	"users-over-time": {
		Kind:       KindTimeSeries,
		Dimensions: []gadata.Dimension{{Name: "date"}},
		Metrics:    []gadata.Metric{{Name: "activeUsers"}},
	},
	"users-by-country": {
		Kind:       KindCategorical,
		Dimensions: []gadata.Dimension{{Name: "country"}},
		Metrics:    []gadata.Metric{{Name: "activeUsers"}},
		Limit:      categoricalLimit,
	},
	"users-by-device": {
		Kind:       KindCategorical,
		Dimensions: []gadata.Dimension{{Name: "deviceCategory"}},
		Metrics:    []gadata.Metric{{Name: "activeUsers"}},
	},
	"sessions-by-source": {
		Kind:       KindCategorical,
		Dimensions: []gadata.Dimension{{Name: "sessionSource"}},
		Metrics:    []gadata.Metric{{Name: "sessions"}},
		Limit:      categoricalLimit,
	},
	"pageviews-by-path": {
		Kind:       KindCategorical,
		Dimensions: []gadata.Dimension{{Name: "pagePath"}},
		Metrics:    []gadata.Metric{{Name: "screenPageViews"}},
		Limit:      categoricalLimit,
	},
}

// Types lists the supported chart types in the dashboard's render order.
var Types = []string{
	"overview",
	"users-by-country",
	"users-by-device",
	"sessions-by-source",
	"pageviews-by-path",
	"users-over-time",
}
