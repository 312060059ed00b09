// Package window resolves which item indices intersect the viewport.
//
// Resolution is anchored: instead of recomputing the absolute scroll position
// from row 0, the resolver starts from one item that is already on screen and
// walks outwards, positioning every other index relative to it. This keeps
// incremental layouts free of accumulated drift.
//
// The walk stops at the first index that falls outside the viewport unless
// its neighbour in walk order is still visible. The pattern interleaves tiles
// of different heights within one row, so index order and vertical order
// disagree locally; [BridgesAbove] and [BridgesBelow] capture that lookahead.
package window

import "github.com/matzehuels/tilegrid/pkg/grid"

// Anchor is an attached item used to seed resolution: its index and its
// current on-screen top.
type Anchor struct {
	Index int
	Top   int
}

// Placement is a resolved index together with its on-screen rectangle.
type Placement struct {
	Index int
	Role  grid.Role
	Rect  grid.Rect
}

// Window is the result of one resolution. Lo and Hi bound the inclusive
// index range; Placements lists the indices to realize in ascending order.
// Indices inside [Lo, Hi] that were bridged over are not placed.
type Window struct {
	Lo, Hi     int
	Frame      grid.Frame
	Placements []Placement
}

// BridgesAbove reports whether a backward walk may step over cur, which lies
// entirely above the viewport, because prev (the index before it) still
// reaches into view.
func BridgesAbove(cur, prev grid.Rect) bool {
	return cur.Bottom < 0 && prev.Bottom > 0
}

// BridgesBelow reports whether a forward walk may step over cur, which starts
// below the viewport, because next (the index after it) still starts inside.
func BridgesBelow(cur, next grid.Rect, height int) bool {
	return cur.Top > height && next.Top < height
}

// BaselineFor returns the row baseline implied by an anchor. A lower small
// tile's top already includes the half-row offset, so it is removed to keep
// the table consistent with the rest of the row.
func BaselineFor(t grid.Table, a Anchor) int {
	if grid.SlotOf(a.Index).IsLowerSmall() {
		return a.Top - t.SmallHeight
	}
	return a.Top
}

// Resolve walks backward from anchor.Index-1 and forward from anchor.Index
// and returns every index whose rectangle should be realized. A nil anchor
// lays the list out from index 0 at baseline 0.
func Resolve(t grid.Table, itemCount int, anchor *Anchor) Window {
	pos, baseline := 0, 0
	if anchor != nil {
		pos, baseline = anchor.Index, BaselineFor(t, *anchor)
	}
	f := grid.FrameAt(t, pos, baseline)
	w := Window{Lo: pos, Hi: pos - 1, Frame: f}
	if itemCount <= 0 || pos < 0 || pos >= itemCount {
		return w
	}

	if t.Degenerate() {
		w.Lo, w.Hi = pos, pos
		w.Placements = []Placement{{Index: pos, Role: grid.SlotOf(pos), Rect: f.Rect(pos)}}
		return w
	}

	var above []Placement
	for i := pos - 1; i >= 0; i-- {
		r := f.Rect(i)
		if r.Bottom < 0 {
			if i-1 >= 0 && BridgesAbove(r, f.Rect(i-1)) {
				continue
			}
			break
		}
		above = append(above, Placement{Index: i, Role: grid.SlotOf(i), Rect: r})
	}

	var below []Placement
	for i := pos; i < itemCount; i++ {
		r := f.Rect(i)
		if r.Top > t.Height {
			if i+1 < itemCount && BridgesBelow(r, f.Rect(i+1), t.Height) {
				continue
			}
			break
		}
		if r.Bottom < 0 {
			continue
		}
		below = append(below, Placement{Index: i, Role: grid.SlotOf(i), Rect: r})
	}

	w.Placements = make([]Placement, 0, len(above)+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		w.Placements = append(w.Placements, above[i])
	}
	w.Placements = append(w.Placements, below...)
	if len(w.Placements) > 0 {
		w.Lo = w.Placements[0].Index
		w.Hi = w.Placements[len(w.Placements)-1].Index
	}
	return w
}
