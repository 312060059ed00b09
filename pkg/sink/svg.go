package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

// Fill colors per role, in role order.
var roleFills = [...]string{
	"#4c78a8", // big-upper
	"#f58518", // small-right-upper
	"#e45756", // small-right-lower
	"#72b7b2", // small-left-upper
	"#54a24b", // small-left-lower
	"#b279a2", // big-lower
}

const svgStyle = `
    .viewport { fill: none; stroke: #222; stroke-width: 2; }
    .tile { stroke: #fff; stroke-width: 1; }
    .tile-label { font-family: sans-serif; fill: #fff; text-anchor: middle; dominant-baseline: central; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	overflow bool
	labels   bool
}

// WithOverflow draws the full rectangles of tiles that reach past the
// viewport instead of clipping them.
func WithOverflow() SVGOption { return func(r *svgRenderer) { r.overflow = true } }

// WithoutLabels omits the index labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws the viewport and the attached tiles of v.
func RenderSVG(v layout.View, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	minY, maxY := 0, v.Height
	if r.overflow {
		for _, t := range v.Tiles {
			minY, maxY = min(minY, t.Top), max(maxY, t.Bottom)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 %d %d %d" width="%d" height="%d">`+"\n",
		minY, v.Width, maxY-minY, v.Width, maxY-minY)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	fmt.Fprintf(&buf, `  <clipPath id="viewport-clip"><rect x="0" y="0" width="%d" height="%d"/></clipPath>`+"\n", v.Width, v.Height)

	group := `  <g>`
	if !r.overflow {
		group = `  <g clip-path="url(#viewport-clip)">`
	}
	buf.WriteString(group + "\n")
	for _, t := range v.Tiles {
		renderTile(&buf, t, r.labels)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <rect class="viewport" x="0" y="0" width="%d" height="%d"/>`+"\n", v.Width, v.Height)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTile(buf *bytes.Buffer, t layout.Tile, label bool) {
	w, h := t.Right-t.Left, t.Bottom-t.Top
	fmt.Fprintf(buf, `    <rect id="tile-%d" class="tile %s" x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
		t.Index, t.Role, t.Left, t.Top, w, h, roleFill(t.Index))
	if !label || w <= 0 || h <= 0 {
		return
	}
	size := max(8, min(w, h)/3)
	fmt.Fprintf(buf, `    <text class="tile-label" x="%.1f" y="%.1f" font-size="%d">%d</text>`+"\n",
		float64(t.Left)+float64(w)/2, float64(t.Top)+float64(h)/2, size, t.Index)
}

func roleFill(index int) string {
	return roleFills[index%len(roleFills)]
}
