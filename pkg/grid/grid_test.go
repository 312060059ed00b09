package grid

import "testing"

func TestNewTableDimensions(t *testing.T) {
	tests := []struct {
		name                string
		width, height       int
		aspect              float64
		big, smallW, smallH int
	}{
		{name: "square big tile", width: 300, height: 300, aspect: 1.0, big: 300, smallW: 0, smallH: 150},
		{name: "half width", width: 200, height: 150, aspect: 0.5, big: 100, smallW: 100, smallH: 50},
		{name: "rounds to nearest", width: 101, height: 50, aspect: 0.5, big: 51, smallW: 50, smallH: 25},
		{name: "two thirds", width: 360, height: 640, aspect: 2.0 / 3.0, big: 240, smallW: 120, smallH: 120},
		{name: "negative aspect normalized", width: 200, height: 100, aspect: -0.5, big: 100, smallW: 100, smallH: 50},
		{name: "zero aspect", width: 200, height: 100, aspect: 0, big: 0, smallW: 200, smallH: 0},
		{name: "zero width", width: 0, height: 100, aspect: 1, big: 0, smallW: 0, smallH: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(tt.width, tt.height, tt.aspect)
			if tbl.BigEdge != tt.big {
				t.Errorf("BigEdge = %d, want %d", tbl.BigEdge, tt.big)
			}
			if tbl.SmallWidth != tt.smallW {
				t.Errorf("SmallWidth = %d, want %d", tbl.SmallWidth, tt.smallW)
			}
			if tbl.SmallHeight != tt.smallH {
				t.Errorf("SmallHeight = %d, want %d", tbl.SmallHeight, tt.smallH)
			}
			if tbl.Aspect < 0 {
				t.Errorf("Aspect = %v, want non-negative", tbl.Aspect)
			}
		})
	}
}

func TestTableTilesRows(t *testing.T) {
	tests := []struct {
		width  int
		aspect float64
	}{
		{width: 200, aspect: 0.5},
		{width: 120, aspect: 0.5},
		{width: 90, aspect: 2.0 / 3.0},
		{width: 64, aspect: 0.75},
		{width: 40, aspect: 1},
		{width: 153, aspect: 0.5},
		{width: 101, aspect: 0.5},
		{width: 33, aspect: 1},
	}

	for _, tt := range tests {
		tbl := NewTable(tt.width, 100, tt.aspect)

		// Lay the six slots of block 0 over a width × 2·bigEdge canvas.
		height := 2 * tbl.BigEdge
		cover := make([]int, tt.width*height)
		f := FrameAt(tbl, 0, 0)
		for i := 0; i < BlockSize; i++ {
			r := f.Rect(i)
			for y := r.Top; y < r.Bottom; y++ {
				for x := r.Left; x < r.Right; x++ {
					if x < 0 || x >= tt.width || y < 0 || y >= height {
						t.Fatalf("width=%d aspect=%v: slot %d escapes block at (%d,%d)", tt.width, tt.aspect, i, x, y)
					}
					cover[y*tt.width+x]++
				}
			}
		}
		for p, n := range cover {
			if n != 1 {
				t.Fatalf("width=%d aspect=%v: pixel (%d,%d) covered %d times", tt.width, tt.aspect, p%tt.width, p/tt.width, n)
			}
		}
	}
}

func TestSlotTableEntries(t *testing.T) {
	tbl := NewTable(200, 150, 0.5)

	tests := []struct {
		role Role
		want Rect
	}{
		{BigUpper, Rect{Left: 0, Top: 10, Right: 100, Bottom: 110}},
		{SmallRightUpper, Rect{Left: 100, Top: 10, Right: 200, Bottom: 60}},
		{SmallRightLower, Rect{Left: 100, Top: 60, Right: 200, Bottom: 110}},
		{SmallLeftUpper, Rect{Left: 0, Top: 10, Right: 100, Bottom: 60}},
		{SmallLeftLower, Rect{Left: 0, Top: 60, Right: 100, Bottom: 110}},
		{BigLower, Rect{Left: 100, Top: 10, Right: 200, Bottom: 110}},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tbl.SlotRect(tt.role, 10); got != tt.want {
				t.Errorf("SlotRect(%v, 10) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestSlotPeriodicity(t *testing.T) {
	tbl := NewTable(200, 150, 0.5)
	for i := 0; i < 60; i++ {
		if SlotOf(i) != SlotOf(i+BlockSize) {
			t.Errorf("SlotOf(%d) = %v, SlotOf(%d) = %v", i, SlotOf(i), i+BlockSize, SlotOf(i+BlockSize))
		}
		if got, want := tbl.RowOffset(i+RowSize), tbl.RowOffset(i)+tbl.BigEdge; got != want {
			t.Errorf("RowOffset(%d) = %d, want %d", i+RowSize, got, want)
		}
	}
}

func TestBoundarySquareBlock(t *testing.T) {
	tbl := NewTable(300, 300, 1.0)
	f := FrameAt(tbl, 0, 0)

	if got, want := f.Rect(0), (Rect{Left: 0, Top: 0, Right: 300, Bottom: 300}); got != want {
		t.Errorf("Rect(0) = %+v, want %+v", got, want)
	}
	if got, want := f.Rect(5), (Rect{Left: 0, Top: 300, Right: 300, Bottom: 600}); got != want {
		t.Errorf("Rect(5) = %+v, want %+v", got, want)
	}
	if got := f.Rect(1).Width(); got != 0 {
		t.Errorf("Rect(1).Width() = %d, want 0", got)
	}
}

func TestFrameAnchoredBaseline(t *testing.T) {
	tbl := NewTable(200, 150, 0.5)

	// Anchor index 7 (row 2) at baseline -30.
	f := FrameAt(tbl, 7, -30)
	for index, want := range map[int]int{6: -30, 8: 20, 3: -130, 9: 70} {
		if got := f.Rect(index).Top; got != want {
			t.Errorf("Rect(%d).Top = %d, want %d", index, got, want)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role       Role
		big, lower bool
	}{
		{BigUpper, true, false},
		{SmallRightUpper, false, false},
		{SmallRightLower, false, true},
		{SmallLeftUpper, false, false},
		{SmallLeftLower, false, true},
		{BigLower, true, false},
	}
	for _, tt := range tests {
		if got := tt.role.IsBig(); got != tt.big {
			t.Errorf("%v.IsBig() = %v, want %v", tt.role, got, tt.big)
		}
		if got := tt.role.IsLowerSmall(); got != tt.lower {
			t.Errorf("%v.IsLowerSmall() = %v, want %v", tt.role, got, tt.lower)
		}
	}
	if got := Role(9).String(); got != "role(9)" {
		t.Errorf("Role(9).String() = %q", got)
	}
}

func TestSizeOf(t *testing.T) {
	tbl := NewTable(360, 640, 2.0/3.0)
	if got, want := tbl.SizeOf(BigLower), (Size{Width: 240, Height: 240}); got != want {
		t.Errorf("SizeOf(BigLower) = %+v, want %+v", got, want)
	}
	if got, want := tbl.SizeOf(SmallLeftUpper), (Size{Width: 120, Height: 120}); got != want {
		t.Errorf("SizeOf(SmallLeftUpper) = %+v, want %+v", got, want)
	}
}

func TestOddBigEdgeRows(t *testing.T) {
	tbl := NewTable(153, 84, 0.5)
	if tbl.BigEdge != 77 || tbl.SmallHeight != 38 {
		t.Fatalf("BigEdge/SmallHeight = %d/%d, want 77/38", tbl.BigEdge, tbl.SmallHeight)
	}
	if got, want := tbl.SizeOf(SmallRightUpper), (Size{Width: 76, Height: 38}); got != want {
		t.Errorf("SizeOf(SmallRightUpper) = %+v, want %+v", got, want)
	}
	if got, want := tbl.SizeOf(SmallLeftLower), (Size{Width: 76, Height: 39}); got != want {
		t.Errorf("SizeOf(SmallLeftLower) = %+v, want %+v", got, want)
	}

	// The last tile of every row ends exactly where the next row begins.
	f := FrameAt(tbl, 0, 0)
	for i := RowSize - 1; i < 4*RowSize; i += RowSize {
		if got, want := f.Rect(i).Bottom, f.Rect(i+1).Top; got != want {
			t.Errorf("Rect(%d).Bottom = %d, next row top = %d", i, got, want)
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{Left: 0, Top: -10, Right: 50, Bottom: 40}
	if r.Width() != 50 || r.Height() != 50 {
		t.Errorf("Width/Height = %d/%d, want 50/50", r.Width(), r.Height())
	}
	if got := r.Offset(15); got.Top != 5 || got.Bottom != 55 {
		t.Errorf("Offset(15) = %+v", got)
	}
}
