// Package fetchlog persists a ledger of failed chart fetches so an admin
// can diagnose misconfiguration without scraping logs.
//
// Entries are best-effort: the gateway records them asynchronously and a
// ledger write failure never affects the chart response.
package fetchlog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for fetch ledger entries.
const CollectionName = "fetch_ledger"

// ErrorClass categorizes why a chart fetch failed.
type ErrorClass string

const (
	// ClassNotConfigured means settings were missing or incomplete.
	ClassNotConfigured ErrorClass = "not_configured"
	// ClassUnknownType means the caller requested an unsupported chart.
	ClassUnknownType ErrorClass = "unknown_type"
	// ClassUpstream means the analytics API rejected the query.
	ClassUpstream ErrorClass = "upstream"
)

// Entry is one failed chart fetch.
type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	RequestID  string             `bson:"request_id"` // generated UUID
	ChartType  string             `bson:"chart_type"`
	Range      string             `bson:"range"`
	ErrorClass ErrorClass         `bson:"error_class"`
	Message    string             `bson:"message"`
	OccurredAt time.Time          `bson:"occurred_at"`
}

// Store provides fetch ledger persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a fetch ledger store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Record inserts a ledger entry, stamping OccurredAt if unset.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
