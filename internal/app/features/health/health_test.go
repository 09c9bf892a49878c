package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestHandler_Check(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	h := NewHandler(db.Client(), store, zap.NewNop())

	t.Run("unconfigured plugin is healthy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		h.Check(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Check() status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp Response
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Status != "ok" {
			t.Errorf("response status = %q, want %q", resp.Status, "ok")
		}
		if resp.Services["mongodb"] != "ok" {
			t.Errorf("mongodb status = %q, want %q", resp.Services["mongodb"], "ok")
		}
		if resp.Configured == nil || *resp.Configured {
			t.Errorf("configured = %v, want false", resp.Configured)
		}
	})

	t.Run("saved credentials flip the configured flag", func(t *testing.T) {
		ctx, cancel := testutil.TestContext()
		defer cancel()
		err := store.Set(ctx, settingsstore.Settings{
			PropertyID:  "123456789",
			Credentials: bson.M{"type": "service_account"},
		})
		if err != nil {
			t.Fatalf("saving settings: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		h.Check(rec, req)

		var resp Response
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Configured == nil || !*resp.Configured {
			t.Errorf("configured = %v, want true", resp.Configured)
		}
	})
}

func TestHandler_Ready(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Client(), nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Ready() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != `{"status":"ready"}` {
		t.Errorf("Ready() body = %q, want %q", body, `{"status":"ready"}`)
	}
}

func TestHandler_Live(t *testing.T) {
	// Live needs neither the database nor settings.
	h := NewHandler(nil, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Live() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != `{"status":"alive"}` {
		t.Errorf("Live() body = %q, want %q", body, `{"status":"alive"}`)
	}
}

func TestMountRootEndpoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Client(), nil, zap.NewNop())
	r := chi.NewRouter()
	MountRootEndpoints(r, h)

	for _, path := range []string{"/ready", "/readyz", "/livez"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
			}
		})
	}
}
