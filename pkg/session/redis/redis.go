// Package redis stores layout snapshots in Redis so several server instances
// can restore the same session.
//
// Each snapshot is one JSON string under "<prefix><id>" with a Redis TTL equal
// to the time left until the snapshot expires, so Cleanup is a no-op.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/session"
)

// DefaultPrefix namespaces snapshot keys.
const DefaultPrefix = "tilegrid:session:"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store is a session.Store backed by Redis.
type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore connects to Redis and verifies the connection with PING.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "connect to redis at %s", cfg.Addr)
	}
	return NewStoreWithClient(client, cfg.Prefix), nil
}

// NewStoreWithClient wraps an existing client. An empty prefix selects
// DefaultPrefix.
func NewStoreWithClient(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(id string) string { return s.prefix + id }

func (s *Store) Get(ctx context.Context, id string) (*session.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == goredis.Nil {
		observability.Store().OnStoreMiss(ctx, "redis")
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "get session %s", id)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", id, err)
	}
	if snap.IsExpired() {
		observability.Store().OnStoreMiss(ctx, "redis")
		return nil, nil
	}
	observability.Store().OnStoreHit(ctx, "redis")
	return &snap, nil
}

func (s *Store) Set(ctx context.Context, snap *session.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	ttl := time.Until(snap.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, snap.ID)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(snap.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "set session %s", snap.ID)
	}
	observability.Store().OnStoreSet(ctx, "redis", len(data))
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete session %s", id)
	}
	return nil
}

// Cleanup is a no-op: Redis expires keys itself.
func (s *Store) Cleanup(context.Context) error { return nil }

func (s *Store) Close() error { return s.client.Close() }

var _ session.Store = (*Store)(nil)
