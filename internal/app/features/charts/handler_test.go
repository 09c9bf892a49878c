package charts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelgrove/gaboard/internal/app/system/gadata"
	"go.uber.org/zap"
)

func TestHandler_GetChart(t *testing.T) {
	report := &gadata.ReportResult{
		DimensionHeaders: []gadata.DimensionHeader{{Name: "country"}},
		MetricHeaders:    []gadata.MetricHeader{{Name: "activeUsers"}},
		Rows: []gadata.Row{{
			DimensionValues: []gadata.Value{{Value: "United States"}},
			MetricValues:    []gadata.Value{{Value: "42"}},
		}},
		RowCount: 1,
	}

	t.Run("serves the raw report with status 200", func(t *testing.T) {
		runner := &fakeRunner{result: report}
		g := newTestGateway(fakeSettings{settings: configuredSettings()}, runner)
		h := NewHandler(g, zap.NewNop())
		srv := httptest.NewServer(Routes(h, nil))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/users-by-country?range=30d")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got gadata.ReportResult
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if got.RowCount != 1 || got.Rows[0].DimensionValues[0].Value != "United States" {
			t.Errorf("unexpected body: %+v", got)
		}
	})

	t.Run("unknown chart type is still status 200 with an error body", func(t *testing.T) {
		runner := &fakeRunner{}
		g := newTestGateway(fakeSettings{settings: configuredSettings()}, runner)
		h := NewHandler(g, zap.NewNop())
		srv := httptest.NewServer(Routes(h, nil))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/not-a-chart")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var got ErrorResult
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !got.Error || got.Message != MsgUnknownChartType {
			t.Errorf("body = %+v, want error %q", got, MsgUnknownChartType)
		}
	})

	t.Run("missing range defaults to seven days", func(t *testing.T) {
		runner := &fakeRunner{result: report}
		g := newTestGateway(fakeSettings{settings: configuredSettings()}, runner)
		h := NewHandler(g, zap.NewNop())
		srv := httptest.NewServer(Routes(h, nil))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/users-over-time")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if len(runner.calls) != 1 {
			t.Fatalf("upstream calls = %d, want 1", len(runner.calls))
		}
		dr := runner.calls[0].DateRanges[0]
		if dr.StartDate != "2026-03-09" || dr.EndDate != "2026-03-15" {
			t.Errorf("date range = %+v, want 2026-03-09..2026-03-15", dr)
		}
	})
}
