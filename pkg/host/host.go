// Package host provides an in-memory host container for the layout manager:
// a resizable viewport over a counted list of items and a recycling pool of
// representations.
//
// The CLI, the terminal viewer and the HTTP service all drive
// [layout.Manager] through these types. Tests use them as well, since the
// pool records every measure and place call.
//
// [layout.Manager]: github.com/matzehuels/tilegrid/pkg/layout.Manager
package host

import (
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Viewport is a mutable host: viewport dimensions plus an item count.
type Viewport struct {
	width, height int
	count         int
}

// NewViewport creates a host with the given dimensions and item count.
func NewViewport(width, height, count int) *Viewport {
	return &Viewport{width: max(width, 0), height: max(height, 0), count: max(count, 0)}
}

// ViewportSize returns the viewport dimensions.
func (v *Viewport) ViewportSize() (int, int) { return v.width, v.height }

// ItemCount returns the number of items.
func (v *Viewport) ItemCount() int { return v.count }

// Resize changes the viewport dimensions. Negative values are treated as 0.
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = max(width, 0), max(height, 0)
}

// Insert adds count items at start.
func (v *Viewport) Insert(start, count int) error {
	if err := errors.ValidateInsert(start, count, v.count); err != nil {
		return err
	}
	v.count += count
	return nil
}

// Remove deletes count items starting at start.
func (v *Viewport) Remove(start, count int) error {
	if err := errors.ValidateRemove(start, count, v.count); err != nil {
		return err
	}
	v.count -= count
	return nil
}

// SetCount replaces the item count, as when a new data source is attached.
func (v *Viewport) SetCount(count int) { v.count = max(count, 0) }
