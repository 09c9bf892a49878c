package reqstats_test

import (
	"testing"
	"time"

	"github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"github.com/pixelgrove/gaboard/internal/testutil"
)

func TestStore_RecordAndSummarize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reqstats.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, rec := range []struct {
		statType reqstats.StatType
		ms       int64
		isError  bool
	}{
		{reqstats.StatTypeChartFetch, 12, false},
		{reqstats.StatTypeChartFetch, 48, false},
		{reqstats.StatTypeChartFetch, 90, true},
		{reqstats.StatTypeSettingsGet, 5, false},
	} {
		if err := store.Record(ctx, rec.statType, time.Hour, rec.ms, rec.isError); err != nil {
			t.Fatalf("recording stat: %v", err)
		}
	}

	since := time.Now().UTC().Add(-2 * time.Hour)
	summaries, err := store.Summarize(ctx, since)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	byType := make(map[reqstats.StatType]reqstats.Summary, len(summaries))
	for _, s := range summaries {
		byType[s.StatType] = s
	}

	charts := byType[reqstats.StatTypeChartFetch]
	if charts.Requests != 3 || charts.Errors != 1 {
		t.Errorf("chart_fetch = %+v, want 3 requests, 1 error", charts)
	}
	if charts.AvgMs != 50 {
		t.Errorf("chart_fetch avg = %v, want 50", charts.AvgMs)
	}
	if charts.MaxMs != 90 {
		t.Errorf("chart_fetch max = %d, want 90", charts.MaxMs)
	}

	get := byType[reqstats.StatTypeSettingsGet]
	if get.Requests != 1 || get.Errors != 0 {
		t.Errorf("settings_get = %+v, want 1 request, 0 errors", get)
	}

	t.Run("window excludes old buckets", func(t *testing.T) {
		future := time.Now().UTC().Add(time.Hour)
		summaries, err := store.Summarize(ctx, future)
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if len(summaries) != 0 {
			t.Errorf("summaries = %d, want 0", len(summaries))
		}
	})
}
