// Package chartdata reshapes raw analytics report rows into chart-ready
// series: date bucketing, monthly aggregation, label humanization, and
// palette color assignment.
//
// Two transforms exist. Time-series reports (one "date" dimension in
// yyyyMMdd form, one or more metrics) are sorted, optionally bucketed by
// month, and emitted as one labeled series per metric. Categorical reports
// (one categorical dimension, one metric) are passed through in the order
// the analytics API returned them; that ordering is an unverified external
// contract and is deliberately not "fixed" here.
package chartdata

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
)

// Palette is the fixed six-color cycle assigned to series and slices.
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff7f50", "#00bcd4", "#a52a2a"}

// MonthlyThreshold is the row count above which a time series switches
// from daily to monthly granularity.
const MonthlyThreshold = 31

// reportDateLayout is the dimension-value form the analytics API uses for
// the "date" dimension.
const reportDateLayout = "20060102"

// Dataset is one labeled series of a chart.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	// Color is the series color for line charts; Colors carries per-slice
	// colors for categorical charts. Exactly one of the two is set.
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Chart is the transformed, render-ready shape. It is recomputed on every
// fetch and never persisted.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	NoData   bool      `json:"noData,omitempty"`
}

// point is one parsed time-series row.
type point struct {
	date    time.Time
	metrics []float64
}

// TimeSeries transforms a daily report into line-chart series. Rows are
// sorted ascending by date; above MonthlyThreshold rows they are grouped
// into calendar months with each metric summed across the month.
func TimeSeries(report *gadata.ReportResult) Chart {
	if report == nil || len(report.Rows) == 0 {
		return Chart{NoData: true}
	}

	metricCount := len(report.MetricHeaders)
	points := make([]point, 0, len(report.Rows))
	for _, row := range report.Rows {
		if len(row.DimensionValues) == 0 {
			continue
		}
		date, err := time.Parse(reportDateLayout, row.DimensionValues[0].Value)
		if err != nil {
			continue
		}
		points = append(points, point{date: date, metrics: metricValues(row, metricCount)})
	}
	if len(points) == 0 {
		return Chart{NoData: true}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].date.Before(points[j].date) })

	monthly := len(points) > MonthlyThreshold

	var labels []string
	var series [][]float64
	if monthly {
		labels, series = bucketByMonth(points, metricCount)
	} else {
		labels = make([]string, len(points))
		series = make([][]float64, len(points))
		for i, p := range points {
			labels[i] = p.date.Format("Mon, 2 Jan")
			series[i] = p.metrics
		}
	}

	datasets := make([]Dataset, metricCount)
	for m := 0; m < metricCount; m++ {
		data := make([]float64, len(series))
		for i := range series {
			data[i] = series[i][m]
		}
		datasets[m] = Dataset{
			Label: Humanize(report.MetricHeaders[m].Name),
			Data:  data,
			Color: Palette[m%len(Palette)],
		}
	}

	return Chart{Labels: labels, Datasets: datasets}
}

// bucketByMonth groups sorted points into calendar months, summing each
// metric, and returns month labels with the summed series in chronological
// order of the month's first day.
func bucketByMonth(points []point, metricCount int) ([]string, [][]float64) {
	type bucket struct {
		start time.Time
		sums  []float64
	}
	byMonth := make(map[time.Time]*bucket)
	for _, p := range points {
		start := time.Date(p.date.Year(), p.date.Month(), 1, 0, 0, 0, 0, p.date.Location())
		b, ok := byMonth[start]
		if !ok {
			b = &bucket{start: start, sums: make([]float64, metricCount)}
			byMonth[start] = b
		}
		for i, v := range p.metrics {
			b.sums[i] += v
		}
	}

	ordered := make([]*bucket, 0, len(byMonth))
	for _, b := range byMonth {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].start.Before(ordered[j].start) })

	labels := make([]string, len(ordered))
	series := make([][]float64, len(ordered))
	for i, b := range ordered {
		labels[i] = b.start.Format("Jan 2006")
		series[i] = b.sums
	}
	return labels, series
}

// Categorical transforms a single-dimension, single-metric report into one
// bar/pie-style dataset. Row order is preserved as returned by the API.
func Categorical(report *gadata.ReportResult) Chart {
	if report == nil || len(report.Rows) == 0 {
		return Chart{NoData: true}
	}

	labels := make([]string, len(report.Rows))
	data := make([]float64, len(report.Rows))
	colors := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		if len(row.DimensionValues) > 0 {
			labels[i] = row.DimensionValues[0].Value
		}
		data[i] = metricValues(row, 1)[0]
		colors[i] = Palette[i%len(Palette)]
	}

	label := "Value"
	if len(report.MetricHeaders) > 0 {
		label = Humanize(report.MetricHeaders[0].Name)
	}

	return Chart{
		Labels:   labels,
		Datasets: []Dataset{{Label: label, Data: data, Colors: colors}},
	}
}

// metricValues parses a row's metric cells as floats, padding with zeros so
// the result always has want entries. Absent or unparseable values become 0
// rather than dropping the row.
func metricValues(row gadata.Row, want int) []float64 {
	if want < len(row.MetricValues) {
		want = len(row.MetricValues)
	}
	out := make([]float64, want)
	for i, mv := range row.MetricValues {
		v, err := strconv.ParseFloat(mv.Value, 64)
		if err != nil {
			continue
		}
		out[i] = v
	}
	return out
}

// Humanize turns a programmatic metric name into a display label: a space
// is inserted before each internal capital, underscores become spaces, and
// the first letter is capitalized. "activeUsers" -> "Active Users".
func Humanize(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
