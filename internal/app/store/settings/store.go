// Package settings persists the plugin's configuration blob in MongoDB.
//
// There is exactly one settings document per installation, addressed by a
// fixed (namespace, key) pair in the plugin_settings collection. Saves
// replace the whole document; there is no partial update and no versioning.
// Reads and writes are last-write-wins, which is acceptable for the
// single-admin access pattern this service assumes.
package settings

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for plugin settings documents.
const CollectionName = "plugin_settings"

const (
	// Namespace scopes settings documents to this plugin.
	Namespace = "gaboard"
	// Key is the single document key within the namespace.
	Key = "settings"
)

// ErrNotFound is returned by Get when settings have never been saved.
var ErrNotFound = errors.New("settings not found")

// Settings is the installation's configuration. Credentials is the opaque
// service-account JSON object pasted by the admin; it is stored as-is and
// only interpreted when a report query is issued.
type Settings struct {
	PropertyID    string `bson:"propertyId"              json:"propertyId"`
	MeasurementID string `bson:"measurementId,omitempty" json:"measurementId,omitempty"`
	Credentials   bson.M `bson:"credentials,omitempty"   json:"credentials,omitempty"`
}

// Configured reports whether the settings carry the two fields every chart
// query requires.
func (s Settings) Configured() bool {
	return s.PropertyID != "" && len(s.Credentials) > 0
}

// document is the stored shape: the settings value under a namespace/key
// address, so other plugin-scoped values can share the collection later.
type document struct {
	Namespace string    `bson:"namespace"`
	Key       string    `bson:"key"`
	Value     Settings  `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store provides settings persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a settings store on the given database.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Get loads the settings document. ErrNotFound means no settings have been
// saved yet; callers treat that as "not configured", never as a fault.
func (s *Store) Get(ctx context.Context) (Settings, error) {
	var doc document
	err := s.c.FindOne(ctx, bson.M{"namespace": Namespace, "key": Key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Settings{}, ErrNotFound
		}
		return Settings{}, err
	}
	return doc.Value, nil
}

// Set replaces the settings document wholesale, creating it on first save.
func (s *Store) Set(ctx context.Context, value Settings) error {
	doc := document{
		Namespace: Namespace,
		Key:       Key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"namespace": Namespace, "key": Key}, doc, opts)
	return err
}
