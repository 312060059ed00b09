package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

func newTestViewModel(t *testing.T, items int) *viewModel {
	t.Helper()
	c := New(io.Discard, LogInfo)
	m := c.newViewModel(context.Background(), config.Layout{Width: 40, Height: 20, Aspect: 0.5, Items: items})
	m.Init()
	if m.err != nil {
		t.Fatalf("Init() error: %v", m.err)
	}
	return m
}

func TestViewModelResize(t *testing.T) {
	m := newTestViewModel(t, 50)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 33})

	w, h := m.viewport.ViewportSize()
	if w != 60 || h != 30 {
		t.Errorf("viewport = %dx%d, want 60x30", w, h)
	}
	if tbl, ok := m.manager.Table(); !ok || tbl.BigEdge != 30 {
		t.Errorf("big edge = %d, want 30", tbl.BigEdge)
	}
}

func TestViewModelKeys(t *testing.T) {
	m := newTestViewModel(t, 50)

	m.handleKey("j")
	if m.status != "scroll 1 → 1" {
		t.Errorf("status after j = %q", m.status)
	}
	m.handleKey("k")
	m.handleKey("k")
	if m.status != "scroll -1 → 0" {
		t.Errorf("status after scrolling past the start = %q", m.status)
	}

	m.handleKey("G")
	if v := m.manager.View(); v.Tiles[len(v.Tiles)-1].Index != 49 {
		t.Errorf("G should reach the last item, window %d..%d", v.Lo, v.Hi)
	}
	m.handleKey("g")
	if v := m.manager.View(); v.Tiles[0].Index != 0 || v.Tiles[0].Top != 0 {
		t.Errorf("g should return to the first item, first tile %+v", v.Tiles[0])
	}

	m.handleKey("i")
	if got := m.viewport.ItemCount(); got != 51 {
		t.Errorf("item count after insert = %d, want 51", got)
	}
	m.handleKey("d")
	m.handleKey("d")
	if got := m.viewport.ItemCount(); got != 49 {
		t.Errorf("item count after removes = %d, want 49", got)
	}
	m.handleKey("r")
	if m.err != nil {
		t.Errorf("reset error: %v", m.err)
	}
	if cmd := m.handleKey("q"); cmd == nil {
		t.Error("q should quit")
	}
}

func TestViewModelEmpty(t *testing.T) {
	m := newTestViewModel(t, 0)
	m.handleKey("d")
	if m.status != "nothing to remove" {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "0 items") {
		t.Errorf("view header should show the item count:\n%s", m.View())
	}
}

func TestRenderCells(t *testing.T) {
	v := layout.View{
		Width: 6, Height: 3,
		Tiles: []layout.Tile{{Index: 0, Left: 0, Top: 0, Right: 6, Bottom: 3}},
	}
	lines := strings.Split(renderCells(v), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, want := range []string{"╭────╮", "│ 0  │", "╰────╯"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRenderCellsClipsTiles(t *testing.T) {
	v := layout.View{
		Width: 4, Height: 2,
		Tiles: []layout.Tile{{Index: 1, Left: 0, Top: -2, Right: 4, Bottom: 2}},
	}
	lines := strings.Split(renderCells(v), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if strings.Contains(lines[0], "╭") {
		t.Error("the top border is above the viewport and must be clipped")
	}
	if !strings.Contains(lines[1], "╰──╯") {
		t.Errorf("bottom border missing: %q", lines[1])
	}
	if renderCells(layout.View{}) != "" {
		t.Error("an empty viewport renders nothing")
	}
}
