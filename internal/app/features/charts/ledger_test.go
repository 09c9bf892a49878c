package charts

import (
	"context"
	"testing"
	"time"

	"github.com/pixelgrove/gaboard/internal/app/store/fetchlog"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/testutil"
	"go.uber.org/zap"
)

func TestGateway_RecordsFailuresToLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ledger := fetchlog.New(db)

	g := NewGateway(fakeSettings{err: settingsstore.ErrNotFound}, &fakeRunner{}, ledger, zap.NewNop())

	res := g.GetChartData(context.Background(), "overview", "7d")
	if res.Err == nil {
		t.Fatal("expected an error result")
	}

	// Ledger writes are asynchronous; poll briefly for the entry.
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deadline := time.Now().Add(3 * time.Second)
	var entries []fetchlog.Entry
	for time.Now().Before(deadline) {
		var err error
		entries, err = ledger.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("reading ledger: %v", err)
		}
		if len(entries) > 0 {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}

	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ChartType != "overview" || e.Range != "7d" {
		t.Errorf("entry = %+v", e)
	}
	if e.ErrorClass != fetchlog.ClassNotConfigured {
		t.Errorf("error class = %q, want %q", e.ErrorClass, fetchlog.ClassNotConfigured)
	}
	if e.Message != MsgNotConfigured {
		t.Errorf("message = %q", e.Message)
	}
	if e.RequestID == "" {
		t.Error("request ID missing")
	}
}
