package host

import (
	"github.com/google/uuid"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/reconcile"
)

// Handle is a pooled representation. It remembers the item it is bound to
// and the last size and rectangle the layout gave it.
type Handle struct {
	id    string
	index int
	size  grid.Size
	rect  grid.Rect

	measures, places int
}

// Handle returns the stable identifier of the representation.
func (h *Handle) Handle() string { return h.id }

// Index returns the item index the handle is bound to. It follows
// renumbering after insertions and removals.
func (h *Handle) Index() int { return h.index }

// Rebind implements reconcile.Rebinder.
func (h *Handle) Rebind(index int) { h.index = index }

// Size returns the last measured size.
func (h *Handle) Size() grid.Size { return h.size }

// Rect returns the last placed rectangle.
func (h *Handle) Rect() grid.Rect { return h.rect }

// Measure implements reconcile.Representation.
func (h *Handle) Measure(s grid.Size) {
	h.size = s
	h.measures++
}

// Place implements reconcile.Representation.
func (h *Handle) Place(r grid.Rect) {
	h.rect = r
	h.places++
}

// Counter reports the current item count of a host.
type Counter interface {
	ItemCount() int
}

// PoolStats counts pool traffic.
type PoolStats struct {
	Created  int `json:"created"`
	Recycled int `json:"recycled"`
	Released int `json:"released"`
	Live     int `json:"live"`
	Free     int `json:"free"`
}

// Pool hands out Handles, reusing released ones before creating new ones.
// Requests outside [0, ItemCount) fail with INDEX_OUT_OF_RANGE.
type Pool struct {
	items Counter
	free  []*Handle
	live  map[*Handle]struct{}
	stats PoolStats

	// OnRequest, when set, is called before a handle is handed out.
	OnRequest func(index int)
}

// NewPool creates an empty pool serving items of c.
func NewPool(c Counter) *Pool {
	return &Pool{items: c, live: make(map[*Handle]struct{})}
}

// Request implements reconcile.Supplier.
func (p *Pool) Request(index int) (reconcile.Representation, error) {
	if n := p.items.ItemCount(); index < 0 || index >= n {
		return nil, errors.IndexOutOfRange(index, n)
	}
	if p.OnRequest != nil {
		p.OnRequest(index)
	}

	var h *Handle
	if n := len(p.free); n > 0 {
		h = p.free[n-1]
		p.free = p.free[:n-1]
		p.stats.Recycled++
	} else {
		h = &Handle{id: uuid.NewString()}
		p.stats.Created++
	}
	h.index = index
	p.live[h] = struct{}{}
	return h, nil
}

// Release implements reconcile.Supplier. Releasing a handle the pool does not
// consider live is ignored.
func (p *Pool) Release(rep reconcile.Representation) {
	h, ok := rep.(*Handle)
	if !ok {
		return
	}
	if _, live := p.live[h]; !live {
		return
	}
	delete(p.live, h)
	p.free = append(p.free, h)
	p.stats.Released++
}

// Live reports whether h is currently handed out.
func (p *Pool) Live(h *Handle) bool {
	_, ok := p.live[h]
	return ok
}

// Stats returns a snapshot of pool counters.
func (p *Pool) Stats() PoolStats {
	s := p.stats
	s.Live = len(p.live)
	s.Free = len(p.free)
	return s
}

var (
	_ reconcile.Supplier = (*Pool)(nil)
	_ reconcile.Rebinder = (*Handle)(nil)
)
