package gadata

// Wire types for the Google Analytics Data API v1beta runReport call.
// Field names and casing follow the REST JSON representation so requests
// and responses round-trip without translation.

// DateRange is an inclusive start/end pair in YYYY-MM-DD form.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Dimension names a report dimension (e.g. "date", "country").
type Dimension struct {
	Name string `json:"name"`
}

// Metric names a report metric (e.g. "activeUsers", "sessions").
type Metric struct {
	Name string `json:"name"`
}

// RunReportRequest is the body of a properties/{id}:runReport call.
// Limit is an int64 encoded as a JSON string, per the API's int64 rules.
type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions"`
	Metrics    []Metric    `json:"metrics"`
	Limit      int64       `json:"limit,omitempty,string"`
}

// DimensionHeader describes one dimension column of a report.
type DimensionHeader struct {
	Name string `json:"name"`
}

// MetricHeader describes one metric column of a report.
type MetricHeader struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Value is a single dimension or metric cell. Metric values arrive as
// numeric strings and are parsed downstream.
type Value struct {
	Value string `json:"value"`
}

// Row is one report row: dimension values followed by metric values, in
// header order.
type Row struct {
	DimensionValues []Value `json:"dimensionValues,omitempty"`
	MetricValues    []Value `json:"metricValues,omitempty"`
}

// ReportResult is the runReport response, passed through to API consumers
// verbatim.
type ReportResult struct {
	DimensionHeaders []DimensionHeader `json:"dimensionHeaders,omitempty"`
	MetricHeaders    []MetricHeader    `json:"metricHeaders,omitempty"`
	Rows             []Row             `json:"rows,omitempty"`
	RowCount         int32             `json:"rowCount,omitempty"`
}
