// Package indexes creates the MongoDB indexes this service relies on.
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pixelgrove/gaboard/internal/app/store/fetchlog"
	reqstatsstore "github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	settingsstore "github.com/pixelgrove/gaboard/internal/app/store/settings"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fetchLedgerTTL bounds how long failed-fetch entries are kept. The ledger
// is a diagnostic aid, not an audit trail.
const fetchLedgerTTL = 30 * 24 * time.Hour

// EnsureAll is called at startup. Each ensure* function is idempotent, and
// errors are aggregated so every problem is visible at once.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureSettings(ctx, db); err != nil {
		problems = append(problems, settingsstore.CollectionName+": "+err.Error())
	}
	if err := ensureFetchLedger(ctx, db); err != nil {
		problems = append(problems, fetchlog.CollectionName+": "+err.Error())
	}
	if err := ensureRequestStats(ctx, db); err != nil {
		problems = append(problems, reqstatsstore.CollectionName+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New("index creation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

func ensureSettings(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(settingsstore.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "namespace", Value: 1},
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetName("idx_namespace_key").SetUnique(true),
	})
	return err
}

func ensureFetchLedger(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(fetchlog.CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("idx_occurred_at"),
		},
		{
			Keys: bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().
				SetName("idx_occurred_at_ttl").
				SetExpireAfterSeconds(int32(fetchLedgerTTL.Seconds())),
		},
	})
	return err
}

func ensureRequestStats(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(reqstatsstore.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "bucket", Value: 1},
			{Key: "stat_type", Value: 1},
			{Key: "bucket_duration", Value: 1},
		},
		Options: options.Index().SetName("idx_bucket_type_duration").SetUnique(true),
	})
	return err
}
