package grid

// Frame pins the repeating pattern to the screen. Baseline is the on-screen
// top of the anchor's row and Origin is that row's offset from row 0, so
// every other index is positioned relative to what is already displayed.
type Frame struct {
	Table    Table
	Baseline int
	Origin   int
}

// FrameAt returns a frame whose anchor row starts at baseline.
func FrameAt(t Table, anchorIndex, baseline int) Frame {
	return Frame{Table: t, Baseline: baseline, Origin: t.RowOffset(anchorIndex)}
}

// Rect returns the on-screen rectangle of index.
func (f Frame) Rect(index int) Rect {
	return f.Table.SlotRect(SlotOf(index), f.Table.RowOffset(index)+f.Baseline-f.Origin)
}
