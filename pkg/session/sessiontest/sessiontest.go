// Package sessiontest holds the behavior every session.Store must share.
package sessiontest

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/session"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// Run exercises store with set, get, overwrite, expiry and delete.
func Run(t *testing.T, store session.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		snap, err := store.Get(ctx, "does-not-exist")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if snap != nil {
			t.Errorf("Get() = %+v, want nil", snap)
		}
	})

	t.Run("roundtrip", func(t *testing.T) {
		snap := session.New(session.Viewport{Width: 200, Height: 150}, 0.5, 12, time.Hour)
		snap.SetAnchor(window.Anchor{Index: 6, Top: -40}, true)
		if err := store.Set(ctx, snap); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		defer store.Delete(ctx, snap.ID)

		got, err := store.Get(ctx, snap.ID)
		if err != nil || got == nil {
			t.Fatalf("Get() = %v, %v", got, err)
		}
		if got.Viewport != snap.Viewport || got.Aspect != snap.Aspect || got.ItemCount != snap.ItemCount {
			t.Errorf("Get() = %+v, want %+v", got, snap)
		}
		a, ok := got.LayoutAnchor()
		if !ok || a != (window.Anchor{Index: 6, Top: -40}) {
			t.Errorf("anchor = %+v, %v", a, ok)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		snap := session.New(session.Viewport{Width: 80, Height: 24}, 1, 3, time.Hour)
		if err := store.Set(ctx, snap); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		defer store.Delete(ctx, snap.ID)

		snap.ItemCount = 9
		snap.SetAnchor(window.Anchor{}, false)
		if err := store.Set(ctx, snap); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		got, err := store.Get(ctx, snap.ID)
		if err != nil || got == nil {
			t.Fatalf("Get() = %v, %v", got, err)
		}
		if got.ItemCount != 9 || got.Anchor != nil {
			t.Errorf("Get() = %+v, want item count 9 and no anchor", got)
		}
	})

	t.Run("expired", func(t *testing.T) {
		snap := session.New(session.Viewport{Width: 80, Height: 24}, 1, 3, time.Hour)
		snap.ExpiresAt = time.Now().Add(-time.Minute)
		if err := store.Set(ctx, snap); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		defer store.Delete(ctx, snap.ID)

		got, err := store.Get(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if got != nil {
			t.Errorf("Get() = %+v, want nil for expired snapshot", got)
		}
		if err := store.Cleanup(ctx); err != nil {
			t.Errorf("Cleanup() error: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		snap := session.New(session.Viewport{Width: 80, Height: 24}, 1, 3, time.Hour)
		if err := store.Set(ctx, snap); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
		if err := store.Delete(ctx, snap.ID); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		if got, _ := store.Get(ctx, snap.ID); got != nil {
			t.Errorf("Get() after Delete() = %+v", got)
		}
		if err := store.Delete(ctx, snap.ID); err != nil {
			t.Errorf("second Delete() error: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		snap := session.New(session.Viewport{Width: -1, Height: 24}, 1, 3, time.Hour)
		if err := store.Set(ctx, snap); err == nil {
			t.Error("Set() accepted a negative viewport")
		}
	})
}
