package session

import (
	"context"
	"sync"

	"github.com/matzehuels/tilegrid/pkg/observability"
)

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snaps[id]
	s.mu.RUnlock()

	if !ok || snap.IsExpired() {
		observability.Store().OnStoreMiss(ctx, "memory")
		return nil, nil
	}
	observability.Store().OnStoreHit(ctx, "memory")
	return clone(snap), nil
}

func (s *MemoryStore) Set(ctx context.Context, snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.snaps[snap.ID] = *clone(*snap)
	s.mu.Unlock()
	observability.Store().OnStoreSet(ctx, "memory", 0)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.snaps, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Cleanup(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, snap := range s.snaps {
		if snap.IsExpired() {
			delete(s.snaps, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored snapshots, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snaps)
}

// clone copies snap so callers never share the anchor pointer with the store.
func clone(snap Snapshot) *Snapshot {
	if snap.Anchor != nil {
		a := *snap.Anchor
		snap.Anchor = &a
	}
	return &snap
}

var _ Store = (*MemoryStore)(nil)
