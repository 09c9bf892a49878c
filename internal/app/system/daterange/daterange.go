// Package daterange resolves symbolic date-range presets ("7d", "30d", ...)
// into concrete calendar dates for analytics report queries.
package daterange

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDays is the fallback window when a preset cannot be parsed.
const DefaultDays = 7

// Range holds the resolved start and end calendar dates in YYYY-MM-DD form.
// EndDate is inclusive, so a 7-day range spans end-6 through end.
type Range struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Resolve converts a preset of the form "<N>d" into a concrete Range ending
// on now's calendar date. A missing, non-numeric, or non-positive N falls
// back to DefaultDays silently.
//
// Calendar semantics follow the location of now; callers that need stable
// behavior across timezones should pass time.Now().UTC().
func Resolve(preset string, now time.Time) Range {
	days := Days(preset)
	end := now
	start := end.AddDate(0, 0, -(days - 1))
	return Range{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
}

// Days parses the numeric day count out of a preset, falling back to
// DefaultDays when the preset is not of the form "<N>d" with positive N.
func Days(preset string) int {
	s := strings.Replace(strings.TrimSpace(preset), "d", "", 1)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultDays
	}
	return n
}
