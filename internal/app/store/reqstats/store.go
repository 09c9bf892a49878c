// Package reqstats provides storage for API request statistics with a
// configurable bucket duration.
package reqstats

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for request statistics.
const CollectionName = "request_stats"

// StatType identifies the type of API operation being tracked.
type StatType string

const (
	StatTypeChartFetch     StatType = "chart_fetch"
	StatTypeDashboardFetch StatType = "dashboard_fetch"
	StatTypeSettingsGet    StatType = "settings_get"
	StatTypeSettingsPut    StatType = "settings_put"
)

// Bucket represents a time bucket of aggregated statistics.
type Bucket struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Bucket         time.Time          `bson:"bucket"`          // bucket start time
	BucketDuration string             `bson:"bucket_duration"` // e.g. "1h", "15m"
	StatType       StatType           `bson:"stat_type"`
	Requests       int64              `bson:"requests"`
	Errors         int64              `bson:"errors"` // responses with status >= 400
	TotalMs        int64              `bson:"total_ms"`
	MinMs          int64              `bson:"min_ms"`
	MaxMs          int64              `bson:"max_ms"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// AvgMs returns the average response time in milliseconds.
func (b *Bucket) AvgMs() float64 {
	if b.Requests == 0 {
		return 0
	}
	return float64(b.TotalMs) / float64(b.Requests)
}

// Store provides request statistics persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a request stats store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Record adds one request to the current bucket for statType, creating the
// bucket on first use. Min/max use $min/$max so concurrent updates from
// parallel requests remain correct without locking.
func (s *Store) Record(ctx context.Context, statType StatType, bucketDuration time.Duration, durationMs int64, isError bool) error {
	now := time.Now().UTC()
	bucketStart := now.Truncate(bucketDuration)

	filter := bson.M{
		"bucket":          bucketStart,
		"bucket_duration": bucketDuration.String(),
		"stat_type":       statType,
	}

	inc := bson.M{"requests": int64(1), "total_ms": durationMs}
	if isError {
		inc["errors"] = int64(1)
	}

	update := bson.M{
		"$inc": inc,
		"$min": bson.M{"min_ms": durationMs},
		"$max": bson.M{"max_ms": durationMs},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"bucket":          bucketStart,
			"bucket_duration": bucketDuration.String(),
			"stat_type":       statType,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Summary aggregates all buckets for one stat type since the given time.
type Summary struct {
	StatType StatType `json:"statType"`
	Requests int64    `json:"requests"`
	Errors   int64    `json:"errors"`
	AvgMs    float64  `json:"avgMs"`
	MaxMs    int64    `json:"maxMs"`
}

// Summarize returns per-type totals for all buckets starting at or after
// since.
func (s *Store) Summarize(ctx context.Context, since time.Time) ([]Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bucket": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$stat_type",
			"requests": bson.M{"$sum": "$requests"},
			"errors":   bson.M{"$sum": "$errors"},
			"total_ms": bson.M{"$sum": "$total_ms"},
			"max_ms":   bson.M{"$max": "$max_ms"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []struct {
		StatType StatType `bson:"_id"`
		Requests int64    `bson:"requests"`
		Errors   int64    `bson:"errors"`
		TotalMs  int64    `bson:"total_ms"`
		MaxMs    int64    `bson:"max_ms"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(raw))
	for i, r := range raw {
		summaries[i] = Summary{
			StatType: r.StatType,
			Requests: r.Requests,
			Errors:   r.Errors,
			MaxMs:    r.MaxMs,
		}
		if r.Requests > 0 {
			summaries[i].AvgMs = float64(r.TotalMs) / float64(r.Requests)
		}
	}
	return summaries, nil
}
