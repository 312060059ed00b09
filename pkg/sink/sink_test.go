package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

func testView() layout.View {
	return layout.View{
		Width: 200, Height: 150, Aspect: 0.5, ItemCount: 12, BigEdge: 100, Lo: 0, Hi: 1,
		Tiles: []layout.Tile{
			{Index: 0, Role: "big-upper", Left: 0, Top: 0, Right: 100, Bottom: 100, Handle: "h0"},
			{Index: 1, Role: "small-right-upper", Left: 100, Top: 0, Right: 200, Bottom: 50},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testView(), WithJSONSession("s1"), WithJSONAnchor(0, 0))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Session string `json:"session"`
		Anchor  struct {
			Index int `json:"index"`
		} `json:"anchor"`
		Width int           `json:"width"`
		Tiles []layout.Tile `json:"tiles"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, data)
	}
	if out.Session != "s1" || out.Width != 200 || len(out.Tiles) != 2 {
		t.Errorf("decoded = %+v", out)
	}
	if out.Tiles[0].Handle != "h0" || out.Tiles[1].Role != "small-right-upper" {
		t.Errorf("tiles = %+v", out.Tiles)
	}
}

func TestRenderJSONEmptyTiles(t *testing.T) {
	data, err := RenderJSON(layout.View{Width: 10, Height: 10, Hi: -1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"tiles": []`) {
		t.Errorf("empty view should encode tiles as []:\n%s", data)
	}
	if strings.Contains(string(data), `"session"`) {
		t.Error("session should be omitted when unset")
	}
}

func TestRenderSVG(t *testing.T) {
	tests := []struct {
		name     string
		opts     []SVGOption
		contains []string
		excludes []string
	}{
		{
			name: "default",
			contains: []string{
				`viewBox="0 0 200 150"`,
				`clip-path="url(#viewport-clip)"`,
				`id="tile-0"`,
				`class="tile big-upper"`,
				`fill="#f58518"`,
				`>1</text>`,
			},
		},
		{
			name:     "without labels",
			opts:     []SVGOption{WithoutLabels()},
			contains: []string{`id="tile-1"`},
			excludes: []string{"<text"},
		},
		{
			name:     "overflow",
			opts:     []SVGOption{WithOverflow()},
			contains: []string{`viewBox="0 0 200 150"`, "  <g>\n"},
			excludes: []string{`clip-path="url(#viewport-clip)"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(testView(), tt.opts...))
			for _, s := range tt.contains {
				if !strings.Contains(svg, s) {
					t.Errorf("missing %q in:\n%s", s, svg)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(svg, s) {
					t.Errorf("unexpected %q in:\n%s", s, svg)
				}
			}
		})
	}
}

func TestRenderSVGOverflowExtendsViewBox(t *testing.T) {
	v := testView()
	v.Tiles = append(v.Tiles, layout.Tile{Index: 5, Role: "big-lower", Left: 100, Top: 100, Right: 200, Bottom: 200})
	v.Tiles[0].Top, v.Tiles[0].Bottom = -30, 70

	svg := string(RenderSVG(v, WithOverflow()))
	if !strings.Contains(svg, `viewBox="0 -30 200 230"`) {
		t.Errorf("overflow viewBox not extended:\n%s", svg)
	}
}
