// Package scroll clamps vertical scroll deltas at the content edges.
package scroll

// Edges describes the attached content: the topmost and bottommost on-screen
// edges and the first and last attached indices.
type Edges struct {
	Top, Bottom int
	First, Last int
}

// Input is everything [Clamp] needs to decide how far a scroll may move.
type Input struct {
	Dy             int
	Edges          Edges
	ItemCount      int
	ViewportHeight int
}

// Clamp returns the delta that may actually be applied for in.Dy. Content is
// shifted by the negated result.
//
// Once the first item is attached the top may move down to 0 at most, and
// once the last item is attached the bottom may move up to the viewport
// height at most. Otherwise the full delta is allowed while the content still
// extends past the viewport edge. When every item is attached and fits on
// screen nothing scrolls. When an edge is reached but the adjacent item is
// not attached yet, the delta is 0 and the next layout pass must realize it.
func Clamp(in Input) int {
	e := in.Edges
	if e.Last-e.First == in.ItemCount-1 && e.Bottom-e.Top < in.ViewportHeight {
		return 0
	}

	switch {
	case in.Dy < 0:
		if e.First == 0 {
			return max(e.Top, in.Dy)
		}
		if e.Top < 0 {
			return in.Dy
		}
	case in.Dy > 0:
		if e.Last == in.ItemCount-1 {
			return min(e.Bottom-in.ViewportHeight, in.Dy)
		}
		if e.Bottom > in.ViewportHeight {
			return in.Dy
		}
	}
	return 0
}

// Bound limits an already clamped delta to the content extent. Top and
// bottom are the on-screen edges of the whole list, attached or not, so a
// single large delta cannot carry the content past either end.
func Bound(dt, top, bottom, height int) int {
	switch {
	case dt > 0:
		return max(0, min(dt, bottom-height))
	case dt < 0:
		return min(0, max(dt, top))
	}
	return 0
}
