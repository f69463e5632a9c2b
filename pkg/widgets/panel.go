package widgets

import (
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// Panel stacks its children over one content rectangle. Each child is
// placed by its own alignment and Left/Top offsets.
type Panel struct {
	ui.MultipleItemsContainer
}

// NewPanel returns an empty panel styled by the "panel" entries of ss.
func NewPanel(ss *style.Stylesheet, children ...ui.Widget) *Panel {
	p := &Panel{}
	p.Init(p)
	applyStyle(p, ss, KindPanel)
	for _, c := range children {
		p.AddChild(c)
	}
	return p
}
