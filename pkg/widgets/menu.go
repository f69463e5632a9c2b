package widgets

import (
	"slices"

	"github.com/go-drift/retain/pkg/focus"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// MenuItem is one entry of a HorizontalMenu.
type MenuItem struct {
	// ID is free for application use.
	ID string

	label    *Label
	mnemonic input.Key

	Activated ui.Event[*MenuItem]
}

// Text returns the item text without the mnemonic marker.
func (it *MenuItem) Text() string { return it.label.Text() }

// Mnemonic returns the key that activates the item while the menu takes
// keyboard input, or KeyNone.
func (it *MenuItem) Mnemonic() input.Key { return it.mnemonic }

// Label returns the label that displays the item.
func (it *MenuItem) Label() *Label { return it.label }

// HorizontalMenu is a menu bar: a one-row grid with an auto-sized column
// per item. It implements ui.MenuBar, so the desktop sends it keys while
// it is open or Alt is held.
//
// Alt toggles the open state. While open, Left and Right move the
// highlight, Enter or Space activates it and Escape closes the menu. An
// item's mnemonic activates it whenever the menu receives keys, and a
// click activates the item under the pointer. Activation closes the menu.
type HorizontalMenu struct {
	ui.Grid

	ss    *style.Stylesheet
	items []*MenuItem
	open  bool

	ItemActivated ui.Event[*MenuItem]
	OpenChanged   ui.Event[bool]
}

// NewHorizontalMenu returns an empty menu styled by the "menu" entries of
// ss. The "menu/hover" and "menu/selected" styles, when present, supply the
// highlight backgrounds.
func NewHorizontalMenu(ss *style.Stylesheet) *HorizontalMenu {
	m := &HorizontalMenu{ss: ss}
	m.InitGrid(m)
	m.SetSelectionMode(ui.SelectColumn)
	applyStyle(m, ss, KindMenu)
	if hs, ok := ss.Get(KindMenu + "/hover"); ok {
		m.Selection().SelectionHoverBackground = hs.Background
	}
	if sel, ok := ss.Get(KindMenu + "/selected"); ok {
		m.Selection().SelectionBackground = sel.Background
	}
	return m
}

// AddItem appends an item. An underscore in text marks the mnemonic.
func (m *HorizontalMenu) AddItem(text string) *MenuItem {
	plain, index, key := ParseMnemonic(text)
	l := NewLabel(m.ss, plain)
	l.SetMnemonic(index)
	l.SetVerticalAlignment(ui.VerticalCenter)
	l.SetGridColumn(len(m.items))

	it := &MenuItem{label: l, mnemonic: key}
	m.items = append(m.items, it)
	m.AddColumn(ui.Auto())
	m.AddChild(l)
	return it
}

// Items returns the items in display order.
func (m *HorizontalMenu) Items() []*MenuItem { return slices.Clone(m.items) }

// IsOpen reports whether the menu is in keyboard navigation mode.
func (m *HorizontalMenu) IsOpen() bool { return m.open }

// Open enters keyboard navigation and highlights the first item if none is.
func (m *HorizontalMenu) Open() {
	if m.open {
		return
	}
	m.open = true
	if m.HoverColumnIndex() < 0 && len(m.items) > 0 {
		m.SetHoverColumnIndex(0)
	}
	m.OpenChanged.Fire(true)
}

// Close leaves keyboard navigation. The highlight stays only under the pointer.
func (m *HorizontalMenu) Close() {
	if !m.open {
		return
	}
	m.open = false
	if !m.IsMouseOver() {
		m.SetHoverColumnIndex(-1)
	}
	m.OpenChanged.Fire(false)
}

// Activate closes the menu, selects item i and notifies its listeners.
// Out of range indices are ignored.
func (m *HorizontalMenu) Activate(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}
	it := m.items[i]
	m.Close()
	m.SetSelectedColumnIndex(i)
	it.Activated.Fire(it)
	m.ItemActivated.Fire(it)
}

func (m *HorizontalMenu) itemByMnemonic(k input.Key) int {
	if k == input.KeyNone {
		return -1
	}
	return slices.IndexFunc(m.items, func(it *MenuItem) bool { return it.mnemonic == k })
}

// OnMouseDown activates the item under the pointer.
func (m *HorizontalMenu) OnMouseDown(button input.MouseButton) {
	m.Grid.OnMouseDown(button)
	if button == input.MouseLeft {
		m.Activate(m.HoverColumnIndex())
	}
}

// OnKeyDown drives keyboard navigation.
func (m *HorizontalMenu) OnKeyDown(k input.Key) {
	m.Grid.OnKeyDown(k)

	switch {
	case k.IsAlt():
		if m.open {
			m.Close()
		} else {
			m.Open()
		}
	case k == input.KeyEscape:
		m.Close()
	case m.open && (k == input.KeyLeft || k == input.KeyRight):
		dir := focus.Right
		if k == input.KeyLeft {
			dir = focus.Left
		}
		if i := focus.Next(len(m.items), m.HoverColumnIndex(), focus.LinearDelta(dir), nil); i >= 0 {
			m.SetHoverColumnIndex(i)
		}
	case m.open && (k == input.KeyEnter || k == input.KeySpace):
		m.Activate(m.HoverColumnIndex())
	default:
		m.Activate(m.itemByMnemonic(k))
	}
}

// InternalRender underlines mnemonics while the desktop shows underscores.
func (m *HorizontalMenu) InternalRender(ctx *ui.RenderContext) {
	show := m.open
	if d := m.Desktop(); d != nil {
		show = d.ShowUnderscores()
	}
	for _, it := range m.items {
		it.label.ShowMnemonic = show
	}
	m.Grid.InternalRender(ctx)
}
