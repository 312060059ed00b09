// Package session persists layout snapshots so a scrolled list can be
// restored later, by the CLI between runs or by the HTTP service across
// instances.
//
// A Snapshot records the viewport, the aspect ratio, the item count and the
// anchor (the first attached item and its top edge). Restoring a snapshot
// means creating a layout manager with the same viewport and calling
// ScrollToAnchor with the stored anchor.
//
// Backends:
//   - memory: in-process map, for tests and a single server instance
//   - file: JSON files in a directory, for the CLI
//   - redis: pkg/session/redis, shared across server instances
//   - mongo: pkg/session/mongo, durable storage with a TTL index
//
// # Usage
//
//	snap := session.New(session.Viewport{Width: 80, Height: 24}, 0.5, 120, session.DefaultTTL)
//	snap.SetAnchor(window.Anchor{Index: 6, Top: -3})
//	if err := store.Set(ctx, snap); err != nil {
//	    return err
//	}
//
//	snap, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if snap == nil {
//	    // not found or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// DefaultTTL is how long a snapshot lives after its last update.
const DefaultTTL = 24 * time.Hour

// Viewport is the visible area a snapshot was laid out in.
type Viewport struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Anchor is the persisted form of window.Anchor.
type Anchor struct {
	Index int `json:"index" bson:"index"`
	Top   int `json:"top" bson:"top"`
}

// Snapshot is the restorable state of one layout.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Viewport  Viewport  `json:"viewport" bson:"viewport"`
	Aspect    float64   `json:"aspect" bson:"aspect"`
	ItemCount int       `json:"item_count" bson:"item_count"`
	Anchor    *Anchor   `json:"anchor,omitempty" bson:"anchor,omitempty"`
	Revision  int64     `json:"revision" bson:"revision"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// New creates a snapshot with a fresh random ID and no anchor.
func New(vp Viewport, aspect float64, itemCount int, ttl time.Duration) *Snapshot {
	now := stamp()
	return &Snapshot{
		ID:        uuid.NewString(),
		Viewport:  vp,
		Aspect:    aspect,
		ItemCount: itemCount,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the snapshot outlived its TTL.
func (s *Snapshot) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch bumps the revision, moves UpdatedAt to now and extends the expiry
// by ttl.
func (s *Snapshot) Touch(ttl time.Duration) {
	s.Revision++
	s.UpdatedAt = stamp()
	s.ExpiresAt = s.UpdatedAt.Add(ttl)
}

// SameVersion reports whether s and o carry the same stored state.
func (s *Snapshot) SameVersion(o *Snapshot) bool {
	return s.Revision == o.Revision && s.UpdatedAt.Equal(o.UpdatedAt)
}

// stamp returns the current UTC time at millisecond precision, the finest
// every backend keeps.
func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// SetAnchor stores a, or clears the anchor when ok is false.
func (s *Snapshot) SetAnchor(a window.Anchor, ok bool) {
	if !ok {
		s.Anchor = nil
		return
	}
	s.Anchor = &Anchor{Index: a.Index, Top: a.Top}
}

// LayoutAnchor returns the stored anchor in the form the layout manager takes.
func (s *Snapshot) LayoutAnchor() (window.Anchor, bool) {
	if s.Anchor == nil {
		return window.Anchor{}, false
	}
	return window.Anchor{Index: s.Anchor.Index, Top: s.Anchor.Top}, true
}

// Validate checks the fields a restore depends on.
func (s *Snapshot) Validate() error {
	if err := errors.ValidateSessionID(s.ID); err != nil {
		return err
	}
	switch {
	case s.Viewport.Width < 0 || s.Viewport.Height < 0:
		return errors.New(errors.ErrCodeInvalidInput, "negative viewport %dx%d", s.Viewport.Width, s.Viewport.Height)
	case s.ItemCount < 0:
		return errors.New(errors.ErrCodeInvalidInput, "negative item count %d", s.ItemCount)
	}
	return nil
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID.
	// Returns nil, nil if the snapshot doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Set stores a snapshot, replacing any previous one with the same ID.
	Set(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired snapshots (may be a no-op for backends that
	// expire entries themselves).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// NotFound returns the error reported when id has no live snapshot.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
