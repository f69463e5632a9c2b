package widgets

import (
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// Style kinds used for stylesheet lookups.
const (
	KindLabel  = "label"
	KindButton = "button"
	KindPanel  = "panel"
	KindMenu   = "menu"
)

// ApplyStyle sets the style name of w and copies the matching style for
// kind from ss.
func ApplyStyle(w ui.Widget, ss *style.Stylesheet, kind, name string) {
	w.Core().SetStyleName(name)
	applyStyle(w, ss, kind)
}

func applyStyle(w ui.Widget, ss *style.Stylesheet, kind string) {
	b := w.Core()
	b.ApplyWidgetStyle(ss.Resolve(kind, b.StyleName()))
}
