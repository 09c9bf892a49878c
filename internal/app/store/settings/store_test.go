package settings_test

import (
	"errors"
	"testing"

	"github.com/pixelgrove/gaboard/internal/app/store/settings"
	"github.com/pixelgrove/gaboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_GetSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settings.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	t.Run("get before any save returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx)
		if !errors.Is(err, settings.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		in := settings.Settings{
			PropertyID:    "123456789",
			MeasurementID: "G-ABC123",
			Credentials: bson.M{
				"type":         "service_account",
				"client_email": "svc@example.iam.gserviceaccount.com",
			},
		}
		if err := store.Set(ctx, in); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.PropertyID != in.PropertyID {
			t.Errorf("propertyId = %q, want %q", got.PropertyID, in.PropertyID)
		}
		if got.MeasurementID != in.MeasurementID {
			t.Errorf("measurementId = %q, want %q", got.MeasurementID, in.MeasurementID)
		}
		if got.Credentials["client_email"] != "svc@example.iam.gserviceaccount.com" {
			t.Errorf("credentials not preserved: %v", got.Credentials)
		}
		if !got.Configured() {
			t.Error("Configured() = false for complete settings")
		}
	})

	t.Run("second set replaces wholesale", func(t *testing.T) {
		// Save without a measurement ID; the old value must not survive.
		in := settings.Settings{
			PropertyID:  "987654321",
			Credentials: bson.M{"type": "service_account"},
		}
		if err := store.Set(ctx, in); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.PropertyID != "987654321" {
			t.Errorf("propertyId = %q, want %q", got.PropertyID, "987654321")
		}
		if got.MeasurementID != "" {
			t.Errorf("measurementId = %q, want it gone after wholesale replace", got.MeasurementID)
		}
	})
}

func TestSettings_Configured(t *testing.T) {
	tests := []struct {
		name string
		s    settings.Settings
		want bool
	}{
		{"empty", settings.Settings{}, false},
		{"property only", settings.Settings{PropertyID: "1"}, false},
		{"credentials only", settings.Settings{Credentials: bson.M{"type": "service_account"}}, false},
		{"both", settings.Settings{PropertyID: "1", Credentials: bson.M{"type": "service_account"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}
