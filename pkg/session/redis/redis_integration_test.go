//go:build integration

package redis

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/session/sessiontest"
)

func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("TILEGRID_REDIS_ADDR")
	if addr == "" {
		t.Skip("TILEGRID_REDIS_ADDR not set")
	}

	store, err := NewStore(context.Background(), Config{Addr: addr, Prefix: "tilegrid:test:"})
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	defer store.Close()

	sessiontest.Run(t, store)
}
