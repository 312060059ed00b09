package reconcile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// Stats counts what a pass did with representations.
type Stats struct {
	Reused    int
	Requested int
	Released  int
}

// Reconcile brings s in line with w. Children whose index is still placed are
// reattached and moved to their resolved rectangle, new indices are requested
// from sup, and children that left the window are released after all
// reattachments. When a request fails the pass stops, leftovers are released
// and s holds whatever was attached so far.
func Reconcile(s *Set, t grid.Table, w window.Window, sup Supplier) (Stats, error) {
	var st Stats
	scrap := s.Detach()

	var err error
	for _, p := range w.Placements {
		c, ok := scrap[p.Index]
		if ok {
			delete(scrap, p.Index)
			if c.Rect.Width() != p.Rect.Width() || c.Rect.Height() != p.Rect.Height() {
				c.Rep.Measure(t.SizeOf(p.Role))
			}
			st.Reused++
		} else {
			rep, rerr := sup.Request(p.Index)
			if rerr != nil {
				err = fmt.Errorf("request representation %d: %w", p.Index, rerr)
				break
			}
			rep.Measure(t.SizeOf(p.Role))
			c = Child{Index: p.Index, Rep: rep}
			st.Requested++
		}
		c.Rect = p.Rect
		c.Rep.Place(p.Rect)
		if aerr := s.Attach(c); aerr != nil {
			sup.Release(c.Rep)
			st.Released++
			err = aerr
			break
		}
	}

	st.Released += ReleaseAll(scrap, sup)
	return st, err
}

// ReleaseAll returns every child in scrap to sup in ascending index order and
// reports how many were released.
func ReleaseAll(scrap map[int]Child, sup Supplier) int {
	keys := slices.Sorted(maps.Keys(scrap))
	for _, idx := range keys {
		sup.Release(scrap[idx].Rep)
		delete(scrap, idx)
	}
	return len(keys)
}
