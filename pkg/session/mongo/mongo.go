// Package mongo stores layout snapshots in a MongoDB collection.
//
// Documents use the snapshot ID as _id. NewStore creates a TTL index on
// expires_at so the server removes expired documents; Cleanup deletes them
// eagerly for deployments where the TTL monitor runs too rarely.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/session"
)

// Defaults for Config fields left empty.
const (
	DefaultDatabase   = "tilegrid"
	DefaultCollection = "sessions"
)

// Config holds MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store is a session.Store backed by MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects, pings the primary and ensures the expiry index exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "create expiry index")
	}
	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Get(ctx context.Context, id string) (*session.Snapshot, error) {
	var snap session.Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreMiss(ctx, "mongo")
		return nil, nil
	}
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "find session %s", id)
	}
	if snap.IsExpired() {
		observability.Store().OnStoreMiss(ctx, "mongo")
		return nil, nil
	}
	observability.Store().OnStoreHit(ctx, "mongo")
	return &snap, nil
}

func (s *Store) Set(ctx context.Context, snap *session.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, opts); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "replace session %s", snap.ID)
	}
	observability.Store().OnStoreSet(ctx, "mongo", 0)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "delete session %s", id)
	}
	return nil
}

func (s *Store) Cleanup(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeStoreUnavailable, err, "delete expired sessions")
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ session.Store = (*Store)(nil)
