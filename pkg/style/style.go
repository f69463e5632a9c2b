// Package style holds the opaque style records widgets copy their visual and
// sizing properties from.
//
// A Stylesheet is an explicit handle: widgets receive one at construction
// time instead of reading a process-wide current stylesheet, so two desktops
// can run with different themes side by side.
package style

import (
	"maps"
	"slices"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/render"
)

// DefaultStyleName is the style used when a widget does not name one.
const DefaultStyleName = "default"

// WidgetStyle is the fixed set of properties ApplyWidgetStyle copies onto a widget.
type WidgetStyle struct {
	Width   *int
	Height  *int
	Padding geometry.Thickness

	Background         render.Brush
	OverBackground     render.Brush
	DisabledBackground render.Brush
	FocusedBackground  render.Brush

	Border         render.Brush
	OverBorder     render.Brush
	DisabledBorder render.Brush
	FocusedBorder  render.Brush
}

// Stylesheet maps style names to widget styles, optionally per widget kind.
//
// Lookups first try "kind/name", then "name", then the default style.
type Stylesheet struct {
	// Version is the semantic version declared by the stylesheet source.
	Version string

	styles map[string]*WidgetStyle
}

// New returns an empty stylesheet.
func New() *Stylesheet {
	return &Stylesheet{Version: "v1.0.0", styles: make(map[string]*WidgetStyle)}
}

// Set registers s under name.
func (ss *Stylesheet) Set(name string, s *WidgetStyle) {
	if ss.styles == nil {
		ss.styles = make(map[string]*WidgetStyle)
	}
	ss.styles[name] = s
}

// Get returns the style registered under exactly name.
func (ss *Stylesheet) Get(name string) (*WidgetStyle, bool) {
	if ss == nil {
		return nil, false
	}
	s, ok := ss.styles[name]
	return s, ok
}

// Resolve finds the best style for a widget kind and style name.
// Returns nil if nothing matches, including the default.
func (ss *Stylesheet) Resolve(kind, name string) *WidgetStyle {
	if ss == nil {
		return nil
	}
	if name == "" {
		name = DefaultStyleName
	}
	if kind != "" {
		if s, ok := ss.styles[kind+"/"+name]; ok {
			return s
		}
	}
	if s, ok := ss.styles[name]; ok {
		return s
	}
	if kind != "" {
		if s, ok := ss.styles[kind+"/"+DefaultStyleName]; ok {
			return s
		}
	}
	return ss.styles[DefaultStyleName]
}

// Names returns the registered style names in sorted order.
func (ss *Stylesheet) Names() []string {
	if ss == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(ss.styles))
}
