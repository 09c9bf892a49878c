package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/testutil"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *settingsstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	h := NewHandler(store, zap.NewNop())
	srv := httptest.NewServer(Routes(h, nil))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestSettingsEndpoints(t *testing.T) {
	t.Run("GET before any save returns an empty object", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(body) != 0 {
			t.Errorf("body = %v, want empty object", body)
		}
	})

	t.Run("PUT then GET round-trips the settings", func(t *testing.T) {
		srv, _ := newTestServer(t)

		payload := `{
			"propertyId": "123456789",
			"measurementId": "G-ABC123",
			"credentials": {"type": "service_account", "client_email": "svc@example.iam.gserviceaccount.com"}
		}`
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("building request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
		}

		getResp, err := http.Get(srv.URL + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer getResp.Body.Close()

		var got settingsstore.Settings
		if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if got.PropertyID != "123456789" || got.MeasurementID != "G-ABC123" {
			t.Errorf("got %+v", got)
		}
		if got.Credentials["client_email"] != "svc@example.iam.gserviceaccount.com" {
			t.Errorf("credentials = %v", got.Credentials)
		}
	})

	t.Run("PUT replaces wholesale", func(t *testing.T) {
		srv, store := newTestServer(t)

		ctx, cancel := testutil.TestContext()
		defer cancel()
		if err := store.Set(ctx, settingsstore.Settings{
			PropertyID:    "111",
			MeasurementID: "G-OLD",
		}); err != nil {
			t.Fatalf("seeding settings: %v", err)
		}

		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/", strings.NewReader(`{"propertyId": "222"}`))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("loading settings: %v", err)
		}
		if got.PropertyID != "222" {
			t.Errorf("propertyId = %q, want 222", got.PropertyID)
		}
		if got.MeasurementID != "" {
			t.Errorf("measurementId = %q, want dropped", got.MeasurementID)
		}
	})

	t.Run("malformed JSON is a 400 and nothing is saved", func(t *testing.T) {
		srv, store := newTestServer(t)

		ctx, cancel := testutil.TestContext()
		defer cancel()
		if err := store.Set(ctx, settingsstore.Settings{PropertyID: "keep-me"}); err != nil {
			t.Fatalf("seeding settings: %v", err)
		}

		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/", strings.NewReader(`{"propertyId": `))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}

		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("loading settings: %v", err)
		}
		if got.PropertyID != "keep-me" {
			t.Errorf("propertyId = %q, prior settings were clobbered", got.PropertyID)
		}
	})
}
