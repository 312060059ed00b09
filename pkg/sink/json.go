package sink

import (
	"encoding/json"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	session string
	anchor  *jsonAnchor
}

type jsonAnchor struct {
	Index int `json:"index"`
	Top   int `json:"top"`
}

// WithJSONSession records the session the view belongs to.
func WithJSONSession(id string) JSONOption { return func(r *jsonRenderer) { r.session = id } }

// WithJSONAnchor records the anchor the next pass will be seeded from.
func WithJSONAnchor(index, top int) JSONOption {
	return func(r *jsonRenderer) { r.anchor = &jsonAnchor{Index: index, Top: top} }
}

type jsonOutput struct {
	Session string      `json:"session,omitempty"`
	Anchor  *jsonAnchor `json:"anchor,omitempty"`
	layout.View
}

// RenderJSON returns v as indented JSON.
func RenderJSON(v layout.View, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if v.Tiles == nil {
		v.Tiles = []layout.Tile{}
	}
	return json.MarshalIndent(jsonOutput{Session: r.session, Anchor: r.anchor, View: v}, "", "  ")
}
