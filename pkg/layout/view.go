package layout

import "github.com/matzehuels/tilegrid/pkg/grid"

// Tile is one attached item as seen from outside the manager.
type Tile struct {
	Index  int    `json:"index"`
	Role   string `json:"role"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Right  int    `json:"right"`
	Bottom int    `json:"bottom"`
	Handle string `json:"handle,omitempty"`
}

// Rect returns the tile rectangle.
func (t Tile) Rect() grid.Rect {
	return grid.Rect{Left: t.Left, Top: t.Top, Right: t.Right, Bottom: t.Bottom}
}

// View is a serializable picture of the manager state after a pass.
type View struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Aspect    float64 `json:"aspect"`
	ItemCount int     `json:"item_count"`
	BigEdge   int     `json:"big_edge"`
	Lo        int     `json:"lo"`
	Hi        int     `json:"hi"`
	Tiles     []Tile  `json:"tiles"`
}

// handler is implemented by representations that carry a stable identifier.
type handler interface {
	Handle() string
}

// View captures the attached items and the viewport they were laid out in.
func (m *Manager) View() View {
	width, height := m.host.ViewportSize()
	v := View{
		Width:     width,
		Height:    height,
		Aspect:    m.aspect,
		ItemCount: m.host.ItemCount(),
		BigEdge:   m.table.BigEdge,
		Lo:        m.last.Lo,
		Hi:        m.last.Hi,
		Tiles:     make([]Tile, 0, m.attached.Len()),
	}
	for _, c := range m.attached.Children() {
		t := Tile{
			Index:  c.Index,
			Role:   grid.SlotOf(c.Index).String(),
			Left:   c.Rect.Left,
			Top:    c.Rect.Top,
			Right:  c.Rect.Right,
			Bottom: c.Rect.Bottom,
		}
		if h, ok := c.Rep.(handler); ok {
			t.Handle = h.Handle()
		}
		v.Tiles = append(v.Tiles, t)
	}
	return v
}
