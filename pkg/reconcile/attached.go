// Package reconcile keeps the set of realized item representations in step
// with the resolved window.
//
// Representations are borrowed from an external [Supplier] and returned to it;
// this package never creates or frees them. A pass detaches everything,
// reattaches what is still in the window, requests what entered it and only
// then releases what left it, so a representation is never recycled and
// requested again within the same pass.
package reconcile

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

// Representation is the renderable object bound to an item index.
type Representation interface {
	// Measure sizes the representation before it is placed.
	Measure(size grid.Size)

	// Place positions the representation at r.
	Place(r grid.Rect)
}

// Rebinder is implemented by representations that track the index they are
// bound to. [Set.Shift] calls Rebind when it renumbers a child.
type Rebinder interface {
	Rebind(index int)
}

// Supplier hands out representations and takes them back.
type Supplier interface {
	// Request returns a representation bound to index. It fails for indices
	// outside [0, itemCount).
	Request(index int) (Representation, error)

	// Release returns a representation for reuse. The caller must not touch
	// it afterwards.
	Release(rep Representation)
}

// Child is one attached representation.
type Child struct {
	Index int
	Rect  grid.Rect
	Rep   Representation
}

// Set is the attached set: one child per index, ordered by index.
// The zero value is an empty set.
type Set struct {
	children []Child
}

// Len returns the number of attached children.
func (s *Set) Len() int { return len(s.children) }

// At returns the i-th child in index order.
func (s *Set) At(i int) Child { return s.children[i] }

// Children returns a copy of the attached children.
func (s *Set) Children() []Child { return slices.Clone(s.children) }

// Indices returns the attached indices in ascending order.
func (s *Set) Indices() []int {
	out := make([]int, len(s.children))
	for i, c := range s.children {
		out[i] = c.Index
	}
	return out
}

// Find returns the child attached at index.
func (s *Set) Find(index int) (Child, bool) {
	i, ok := s.search(index)
	if !ok {
		return Child{}, false
	}
	return s.children[i], true
}

func (s *Set) search(index int) (int, bool) {
	return slices.BinarySearchFunc(s.children, index, func(c Child, target int) int {
		return c.Index - target
	})
}

// Attach adds a child. Attaching an index twice is a contract violation.
func (s *Set) Attach(c Child) error {
	i, ok := s.search(c.Index)
	if ok {
		return errors.New(errors.ErrCodeInconsistentState, "index %d is already attached", c.Index)
	}
	s.children = slices.Insert(s.children, i, c)
	return nil
}

// Offset moves every attached rectangle vertically by dy.
func (s *Set) Offset(dy int) {
	for i := range s.children {
		s.children[i].Rect = s.children[i].Rect.Offset(dy)
	}
}

// Shift renumbers children at or after from by delta. Children whose
// renumbered index would fall below from are left untouched; remove them
// first with [Set.RemoveRange].
func (s *Set) Shift(from, delta int) {
	if delta == 0 {
		return
	}
	for i := range s.children {
		c := &s.children[i]
		if c.Index < from {
			continue
		}
		c.Index += delta
		if rb, ok := c.Rep.(Rebinder); ok {
			rb.Rebind(c.Index)
		}
	}
}

// RemoveRange detaches children with indices in [lo, hi) and returns them.
func (s *Set) RemoveRange(lo, hi int) []Child {
	var removed []Child
	s.children = slices.DeleteFunc(s.children, func(c Child) bool {
		if c.Index >= lo && c.Index < hi {
			removed = append(removed, c)
			return true
		}
		return false
	})
	return removed
}

// Detach empties the set and returns its children keyed by index.
func (s *Set) Detach() map[int]Child {
	scrap := make(map[int]Child, len(s.children))
	for _, c := range s.children {
		scrap[c.Index] = c
	}
	s.children = s.children[:0]
	return scrap
}

// Anchor returns the first child, in index order, whose bottom edge is below
// the top of the viewport.
func (s *Set) Anchor() (Child, bool) {
	for _, c := range s.children {
		if c.Rect.Bottom > 0 {
			return c, true
		}
	}
	return Child{}, false
}
