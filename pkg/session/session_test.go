package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/session"
	"github.com/matzehuels/tilegrid/pkg/session/sessiontest"
	"github.com/matzehuels/tilegrid/pkg/window"
)

func TestMemoryStore(t *testing.T) {
	sessiontest.Run(t, session.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	sessiontest.Run(t, store)
}

func TestFileStoreCleanup(t *testing.T) {
	dir := t.TempDir()
	store, err := session.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	live := session.New(session.Viewport{Width: 10, Height: 10}, 1, 1, time.Hour)
	dead := session.New(session.Viewport{Width: 10, Height: 10}, 1, 1, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	for _, s := range []*session.Snapshot{live, dead} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, dead.ID+".json")); !os.IsNotExist(err) {
		t.Error("expired snapshot file should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, live.ID+".json")); err != nil {
		t.Errorf("live snapshot file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("unrelated files must be left alone")
	}
	if _, err := os.Stat(filepath.Join(dir, "corrupt.json")); !os.IsNotExist(err) {
		t.Error("unreadable snapshot file should be removed")
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for _, id := range []string{"../escape", "a/b", ""} {
		if _, err := store.Get(ctx, id); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q) error = %v, want %s", id, err, errors.ErrCodeInvalidInput)
		}
		if err := store.Delete(ctx, id); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Delete(%q) error = %v, want %s", id, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	snap := session.New(session.Viewport{Width: 10, Height: 10}, 1, 5, time.Hour)
	snap.SetAnchor(window.Anchor{Index: 2, Top: 3}, true)
	if err := store.Set(ctx, snap); err != nil {
		t.Fatal(err)
	}
	snap.Anchor.Index = 4

	got, _ := store.Get(ctx, snap.ID)
	if got.Anchor.Index != 2 {
		t.Errorf("stored anchor changed through caller pointer: %+v", got.Anchor)
	}
	got.Anchor.Top = 99
	again, _ := store.Get(ctx, snap.ID)
	if again.Anchor.Top != 3 {
		t.Errorf("stored anchor changed through returned pointer: %+v", again.Anchor)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*session.Snapshot)
		wantErr bool
	}{
		{"valid", func(*session.Snapshot) {}, false},
		{"empty id", func(s *session.Snapshot) { s.ID = "" }, true},
		{"negative height", func(s *session.Snapshot) { s.Viewport.Height = -1 }, true},
		{"negative count", func(s *session.Snapshot) { s.ItemCount = -3 }, true},
		{"zero viewport", func(s *session.Snapshot) { s.Viewport = session.Viewport{} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.New(session.Viewport{Width: 10, Height: 10}, 1, 1, time.Hour)
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestSnapshotTouch(t *testing.T) {
	s := session.New(session.Viewport{}, 1, 0, time.Millisecond)
	s.ExpiresAt = time.Now().Add(-time.Hour)
	if !s.IsExpired() {
		t.Fatal("snapshot should be expired")
	}
	s.Touch(time.Hour)
	if s.IsExpired() {
		t.Error("Touch() should extend the expiry")
	}
	if !s.UpdatedAt.After(s.CreatedAt) && !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}
	if s.Revision != 1 {
		t.Errorf("Revision = %d, want 1", s.Revision)
	}
	if !s.UpdatedAt.Equal(s.UpdatedAt.Truncate(time.Millisecond)) {
		t.Errorf("UpdatedAt = %v, want millisecond precision", s.UpdatedAt)
	}
}

func TestSnapshotSameVersion(t *testing.T) {
	a := session.New(session.Viewport{Width: 10, Height: 10}, 1, 3, time.Hour)
	b := *a
	if !a.SameVersion(&b) {
		t.Fatal("copies should share a version")
	}
	b.Touch(time.Hour)
	if a.SameVersion(&b) {
		t.Error("Touch() should produce a new version")
	}
}

func TestNotFound(t *testing.T) {
	err := session.NotFound("abc")
	if !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("NotFound() code = %s", errors.GetCode(err))
	}
}
