package layout

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/reconcile"
	"github.com/matzehuels/tilegrid/pkg/scroll"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// DefaultAspect makes the big tile a square as wide as the viewport.
const DefaultAspect = 1.0

// Pass kinds reported to observability hooks.
const (
	KindLayout  = "layout"
	KindScroll  = "scroll"
	KindInsert  = "insert"
	KindRemove  = "remove"
	KindReset   = "reset"
	KindRestore = "restore"
)

// Host is the container the manager lays items out in.
type Host interface {
	// ViewportSize returns the visible area in layout units.
	ViewportSize() (width, height int)

	// ItemCount returns the number of items in the data source.
	ItemCount() int
}

// Option configures a Manager.
type Option func(*Manager)

// WithAspect sets the ratio of the big tile edge to the viewport width.
// The absolute value is used.
func WithAspect(aspect float64) Option {
	return func(m *Manager) { m.aspect = math.Abs(aspect) }
}

// WithLogger sets the logger used for per-pass debug records.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager lays out items of a Host, borrowing representations from a
// reconcile.Supplier.
type Manager struct {
	host     Host
	supplier reconcile.Supplier
	aspect   float64
	logger   *log.Logger

	table    grid.Table
	hasTable bool
	attached reconcile.Set
	last     window.Window

	scrollEnabled bool
	inPass        bool
}

// New creates a manager with no attached items. Nothing is laid out until
// ComputeLayout is called.
func New(host Host, sup reconcile.Supplier, opts ...Option) *Manager {
	m := &Manager{
		host:          host,
		supplier:      sup,
		aspect:        DefaultAspect,
		logger:        log.New(io.Discard),
		scrollEnabled: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Aspect returns the configured aspect ratio.
func (m *Manager) Aspect() float64 { return m.aspect }

// Table returns the geometry table of the last pass, if any was computed.
func (m *Manager) Table() (grid.Table, bool) { return m.table, m.hasTable }

// Window returns the window resolved by the last pass.
func (m *Manager) Window() window.Window { return m.last }

// Children returns the attached items in index order.
func (m *Manager) Children() []reconcile.Child { return m.attached.Children() }

// Anchor returns the attached item that the next pass will be seeded from.
func (m *Manager) Anchor() (window.Anchor, bool) {
	c, ok := m.anchorChild()
	if !ok {
		return window.Anchor{}, false
	}
	return window.Anchor{Index: c.Index, Top: c.Rect.Top}, true
}

// SupportsVerticalScroll reports whether scroll events are handled. It is
// false while an insertion or removal is being applied.
func (m *Manager) SupportsVerticalScroll() bool { return m.scrollEnabled }

// ComputeLayout runs a full layout pass. Attached items keep their on-screen
// position: the window is resolved around the current anchor, and the
// geometry table is rebuilt when there is no anchor or the viewport changed.
func (m *Manager) ComputeLayout(ctx context.Context) error {
	return m.pass(ctx, KindLayout, func() error {
		return m.fill(nil)
	})
}

// ApplyScroll scrolls the content by dy (positive moves towards the end of the
// list) and returns the delta actually applied. Attached rectangles move by
// the negated delta and the window is refilled even when nothing moved, so
// items beyond a not-yet-realized edge get attached.
func (m *Manager) ApplyScroll(ctx context.Context, dy int) (int, error) {
	if !m.scrollEnabled {
		return 0, nil
	}
	if m.inPass {
		return 0, errors.New(errors.ErrCodeInconsistentState, "scroll requested during a layout pass")
	}
	if m.attached.Len() == 0 || dy == 0 {
		return 0, nil
	}

	_, height := m.host.ViewportSize()
	dt := scroll.Clamp(scroll.Input{
		Dy:             dy,
		Edges:          m.edges(),
		ItemCount:      m.host.ItemCount(),
		ViewportHeight: height,
	})
	if top, bottom, ok := m.contentExtent(); ok {
		dt = scroll.Bound(dt, top, bottom, height)
	}
	observability.Layout().OnScroll(ctx, dy, dt)
	m.logger.Debug("scroll", "dy", dy, "applied", dt)

	err := m.pass(ctx, KindScroll, func() error {
		m.attached.Offset(-dt)
		return m.fill(nil)
	})
	return dt, err
}

// ItemsInserted renumbers attached items after count items were inserted at
// start and relayouts. The host's ItemCount must already include them.
// Scrolling is suspended until the pass completes.
func (m *Manager) ItemsInserted(ctx context.Context, start, count int) error {
	if err := errors.ValidateInsert(start, count, m.host.ItemCount()-count); err != nil {
		return err
	}

	defer m.suspendScroll()()

	return m.pass(ctx, KindInsert, func() error {
		m.attached.Shift(start, count)
		return m.fill(nil)
	})
}

// ItemsRemoved releases representations of the count items removed at start,
// renumbers the attached items after them and relayouts. The host's
// ItemCount must already exclude them. Scrolling is suspended until the pass
// completes.
func (m *Manager) ItemsRemoved(ctx context.Context, start, count int) error {
	if err := errors.ValidateRemove(start, count, m.host.ItemCount()+count); err != nil {
		return err
	}

	defer m.suspendScroll()()

	return m.pass(ctx, KindRemove, func() error {
		for _, c := range m.attached.RemoveRange(start, start+count) {
			m.supplier.Release(c.Rep)
		}
		m.attached.Shift(start+count, -count)
		return m.fill(nil)
	})
}

// Reset releases every representation and lays the list out again from the
// first item. Hosts call it when the data source is replaced.
func (m *Manager) Reset(ctx context.Context) error {
	return m.pass(ctx, KindReset, func() error {
		reconcile.ReleaseAll(m.attached.Detach(), m.supplier)
		m.hasTable = false
		return m.fill(nil)
	})
}

// ScrollToAnchor lays the list out so that the item at anchor.Index has its
// top at anchor.Top. The index is clamped into the item range. Attached items
// that stay in the window are reused.
func (m *Manager) ScrollToAnchor(ctx context.Context, anchor window.Anchor) error {
	return m.pass(ctx, KindRestore, func() error {
		count := m.host.ItemCount()
		anchor.Index = max(0, min(anchor.Index, count-1))
		return m.fill(&anchor)
	})
}

// suspendScroll disables scrolling and returns the func that restores the
// previous state, so a notification rejected inside another pass leaves the
// outer suspension in place.
func (m *Manager) suspendScroll() func() {
	prev := m.scrollEnabled
	m.scrollEnabled = false
	return func() { m.scrollEnabled = prev }
}

// pass runs fn as one atomic layout pass.
func (m *Manager) pass(ctx context.Context, kind string, fn func() error) error {
	if m.inPass {
		return errors.New(errors.ErrCodeInconsistentState, "%s pass started during another layout pass", kind)
	}
	m.inPass = true
	defer func() { m.inPass = false }()

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, kind, m.host.ItemCount())
	start := time.Now()
	err := fn()
	hooks.OnLayoutComplete(ctx, kind, m.attached.Len(), time.Since(start), err)
	if err != nil {
		m.logger.Debug("layout pass failed", "kind", kind, "err", err)
	}
	return err
}

// fill resolves the window and reconciles the attached set against it. An
// explicit anchor overrides the one derived from attached items.
func (m *Manager) fill(explicit *window.Anchor) error {
	count := m.host.ItemCount()
	for _, c := range m.attached.RemoveRange(max(count, 0), math.MaxInt) {
		m.supplier.Release(c.Rep)
	}
	if count <= 0 {
		reconcile.ReleaseAll(m.attached.Detach(), m.supplier)
		m.last = window.Window{Hi: -1}
		return nil
	}

	anchor := explicit
	if anchor == nil {
		if a, ok := m.Anchor(); ok {
			anchor = &a
		}
	}

	width, height := m.host.ViewportSize()
	if anchor == nil || !m.hasTable || !m.table.SameViewport(width, height) {
		m.table = grid.NewTable(width, height, m.aspect)
		m.hasTable = true
	}

	w := window.Resolve(m.table, count, anchor)
	st, err := reconcile.Reconcile(&m.attached, m.table, w, m.supplier)
	m.last = w

	anchorIndex := -1
	if anchor != nil {
		anchorIndex = anchor.Index
	}
	m.logger.Debug("fill",
		"viewport", [2]int{width, height},
		"big", m.table.BigEdge,
		"small", [2]int{m.table.SmallWidth, m.table.SmallHeight},
		"items", count,
		"anchor", anchorIndex,
		"lo", w.Lo, "hi", w.Hi,
		"reused", st.Reused, "requested", st.Requested, "released", st.Released)
	return err
}

// anchorChild picks the first attached item whose bottom is below the top of
// the viewport. When every attached item scrolled above the viewport the last
// one is used, so the forward walk can find the new window from it.
func (m *Manager) anchorChild() (reconcile.Child, bool) {
	if c, ok := m.attached.Anchor(); ok {
		return c, true
	}
	if n := m.attached.Len(); n > 0 {
		return m.attached.At(n - 1), true
	}
	return reconcile.Child{}, false
}

// contentExtent returns the on-screen top of the first row and bottom of the
// last row, positioned against the current anchor. The last two items are
// checked because a trailing small tile can end above the big tile next to it.
func (m *Manager) contentExtent() (top, bottom int, ok bool) {
	a, ok := m.Anchor()
	count := m.host.ItemCount()
	if !ok || !m.hasTable || count <= 0 {
		return 0, 0, false
	}
	f := grid.FrameAt(m.table, a.Index, window.BaselineFor(m.table, a))
	top, bottom = f.Rect(0).Top, f.Rect(count-1).Bottom
	if count > 1 {
		bottom = max(bottom, f.Rect(count-2).Bottom)
	}
	return top, bottom, true
}

// edges returns the content extremes used to clamp scrolling. The second item
// from each end widens them so a partially trimmed edge row still counts.
func (m *Manager) edges() scroll.Edges {
	n := m.attached.Len()
	first, last := m.attached.At(0), m.attached.At(n-1)
	e := scroll.Edges{
		Top:    first.Rect.Top,
		Bottom: last.Rect.Bottom,
		First:  first.Index,
		Last:   last.Index,
	}
	if n > 1 {
		e.Top = min(e.Top, m.attached.At(1).Rect.Top)
		e.Bottom = max(e.Bottom, m.attached.At(n-2).Rect.Bottom)
	}
	return e
}
