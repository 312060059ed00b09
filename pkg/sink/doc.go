// Package sink renders a layout.View to output formats.
//
// [RenderJSON] produces the view as indented JSON with optional metadata.
// [RenderSVG] draws the viewport frame and every attached tile, colored by
// role, with the item index as label. Tiles reaching past the viewport are
// clipped unless [WithOverflow] is given.
package sink
