package grid

import "math"

// Size is a width and height pair used to measure representations.
type Size struct {
	Width, Height int
}

// Rect is an item rectangle in viewport-relative coordinates. Top grows
// downwards; Bottom and Right are exclusive edges.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Offset returns r moved vertically by dy.
func (r Rect) Offset(dy int) Rect {
	r.Top += dy
	r.Bottom += dy
	return r
}

// Slot is one entry of the geometry table, positioned against a zero baseline.
type Slot struct {
	Left, Top, Right, Height int
}

// Table is the geometry of one block for a given viewport and aspect ratio.
// The zero value is a degenerate table where every rectangle is empty.
type Table struct {
	Width, Height int
	Aspect        float64

	BigEdge    int
	SmallWidth int

	// SmallHeight is the height of an upper small tile and the offset of the
	// lower one. The lower small tile takes the remaining BigEdge-SmallHeight,
	// which is one unit more when BigEdge is odd, so every row tiles exactly.
	SmallHeight int

	slots [BlockSize]Slot
}

// NewTable builds the geometry table. Only width drives the tile sizes;
// height is kept so the window resolver knows where the viewport ends.
// Negative aspect ratios are normalized to their absolute value.
func NewTable(width, height int, aspect float64) Table {
	aspect = math.Abs(aspect)
	big := int(math.Round(aspect * float64(width)))
	small := width - big
	half := big / 2
	rest := big - half

	t := Table{
		Width:       width,
		Height:      height,
		Aspect:      aspect,
		BigEdge:     big,
		SmallWidth:  small,
		SmallHeight: half,
	}
	t.slots = [BlockSize]Slot{
		BigUpper:        {Left: 0, Top: 0, Right: big, Height: big},
		SmallRightUpper: {Left: big, Top: 0, Right: big + small, Height: half},
		SmallRightLower: {Left: big, Top: half, Right: big + small, Height: rest},
		SmallLeftUpper:  {Left: 0, Top: 0, Right: small, Height: half},
		SmallLeftLower:  {Left: 0, Top: half, Right: small, Height: rest},
		BigLower:        {Left: small, Top: 0, Right: small + big, Height: big},
	}
	return t
}

// SlotRect returns the slot rectangle of role placed at baseline top.
func (t Table) SlotRect(r Role, top int) Rect {
	s := t.slots[r]
	return Rect{
		Left:   s.Left,
		Top:    top + s.Top,
		Right:  s.Right,
		Bottom: top + s.Top + s.Height,
	}
}

// RowOffset returns the distance from the top of row 0 to the row of index.
func (t Table) RowOffset(index int) int {
	return t.BigEdge * RowOf(index)
}

// SizeOf returns the measurement for a tile of the given role.
func (t Table) SizeOf(r Role) Size {
	s := t.slots[r]
	return Size{Width: s.Right - s.Left, Height: s.Height}
}

// Degenerate reports whether the table produces zero-height rows.
func (t Table) Degenerate() bool {
	return t.BigEdge <= 0
}

// SameViewport reports whether t was built for the given dimensions.
func (t Table) SameViewport(width, height int) bool {
	return t.Width == width && t.Height == height
}
