package ui

import (
	stderrors "errors"
	"slices"
	"time"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
)

var errNilContextMenu = stderrors.New("context menu widget is nil")

// Clock supplies the time used for double-click detection.
type Clock interface {
	Now() time.Time
}

// MenuBar is a widget that takes keyboard input while it is open or while
// Alt is held. The desktop uses the first visible one it finds in the tree.
type MenuBar interface {
	Widget
	IsOpen() bool
}

// ContextMenuClosingArgs is passed to ContextMenuClosing listeners. Setting
// Cancel keeps the menu open.
type ContextMenuClosingArgs struct {
	Menu   Widget
	Cancel bool
}

// Desktop owns the top-level widgets of one UI surface and drives input,
// layout, and rendering for them.
//
// Top-level widgets are drawn in insertion order, so the last one added is
// topmost and receives pointer input first. At most one modal widget and one
// context menu are active at a time.
type Desktop struct {
	widgets          []Widget
	forward, reverse []Widget
	snapshotDirty    bool

	bounds geometry.Rect

	focused    Widget
	focusables []Widget

	modal       Widget
	contextMenu Widget

	focusBeforeMenu Widget
	restoreFocus    bool

	menuBar MenuBar

	polled        bool
	lastMouse     input.MouseInfo
	lastKeys      input.KeySet
	mousePosition geometry.Point

	// Input is polled once per UpdateInput. A nil source disables input.
	Input input.Source
	// Clock defaults to the wall clock.
	Clock Clock
	// DoubleClickInterval defaults to DefaultDoubleClickInterval when zero.
	DoubleClickInterval time.Duration

	// FocusFrame and DebugFrame are handed to every render pass.
	FocusFrame render.Brush
	DebugFrame render.Brush

	MouseMoved           Event[geometry.Point]
	MouseDown            Event[input.MouseButton]
	MouseUp              Event[input.MouseButton]
	MouseWheelChanged    Event[int]
	KeyDown              Event[input.Key]
	KeyUp                Event[input.Key]
	FocusedWidgetChanged Event[Widget]
	ContextMenuClosing   Event[*ContextMenuClosingArgs]
	ContextMenuClosed    Event[Widget]
}

// NewDesktop returns an empty desktop covering bounds.
func NewDesktop(bounds geometry.Rect) *Desktop {
	return &Desktop{
		bounds:              bounds,
		lastKeys:            input.NewKeySet(),
		DoubleClickInterval: DefaultDoubleClickInterval,
	}
}

func (d *Desktop) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now()
	}
	return time.Now()
}

// Bounds returns the rectangle top-level widgets are laid out in.
func (d *Desktop) Bounds() geometry.Rect { return d.bounds }

// SetBounds resizes the desktop. Top-level widgets are re-laid out on the
// next UpdateLayout.
func (d *Desktop) SetBounds(r geometry.Rect) { d.bounds = r }

// MousePosition returns the pointer position from the last input snapshot.
func (d *Desktop) MousePosition() geometry.Point { return d.mousePosition }

// Widgets returns the top-level widgets bottom to top. The snapshot stays
// valid when widgets are added or removed during iteration.
func (d *Desktop) Widgets() []Widget {
	d.refreshSnapshots()
	return d.forward
}

// ReverseWidgets returns the top-level widgets topmost first.
func (d *Desktop) ReverseWidgets() []Widget {
	d.refreshSnapshots()
	return d.reverse
}

// WidgetCount returns the number of top-level widgets.
func (d *Desktop) WidgetCount() int { return len(d.widgets) }

func (d *Desktop) refreshSnapshots() {
	if !d.snapshotDirty {
		return
	}
	d.forward = slices.Clone(d.widgets)
	d.reverse = slices.Clone(d.widgets)
	slices.Reverse(d.reverse)
	d.snapshotDirty = false
}

// AddWidget puts w on top of the other top-level widgets.
func (d *Desktop) AddWidget(w Widget) {
	d.InsertWidget(len(d.widgets), w)
}

// InsertWidget inserts w at z-order index i, clamped to range. Inserting a
// widget that already has a parent or desktop panics.
func (d *Desktop) InsertWidget(i int, w Widget) {
	if isNilWidget(w) {
		return
	}
	i = min(max(i, 0), len(d.widgets))
	w.Core().attach("ui.Desktop.InsertWidget", nil, d)
	d.widgets = slices.Insert(d.widgets, i, w)
	d.snapshotDirty = true
}

// RemoveWidget detaches a top-level widget and reports whether it was one.
func (d *Desktop) RemoveWidget(w Widget) bool {
	i := slices.Index(d.widgets, w)
	if i < 0 {
		return false
	}
	d.widgets = slices.Delete(d.widgets, i, i+1)
	d.snapshotDirty = true
	w.Core().detach()
	return true
}

// ClearWidgets removes every top-level widget.
func (d *Desktop) ClearWidgets() {
	for len(d.widgets) > 0 {
		d.RemoveWidget(d.widgets[len(d.widgets)-1])
	}
}

// widgetDetached drops every desktop reference to w. It runs for each
// widget of a subtree leaving the desktop.
func (d *Desktop) widgetDetached(w Widget) {
	d.unregisterFocusable(w)
	if d.focused == w {
		d.SetFocusedWidget(nil)
	}
	if d.focusBeforeMenu == w {
		d.focusBeforeMenu = nil
	}
	if d.modal == w {
		d.modal = nil
	}
	if d.contextMenu == w {
		d.contextMenu = nil
	}
	if d.menuBar != nil && Widget(d.menuBar) == w {
		d.menuBar = nil
	}
}

// ModalWidget returns the active modal widget, or nil.
func (d *Desktop) ModalWidget() Widget { return d.modal }

// SetModalWidget replaces the modal widget. The previous one is removed
// from the desktop. The new one is added on top if needed and its first
// focusable widget takes focus. While a modal is active, pointer input
// does not reach widgets below it.
func (d *Desktop) SetModalWidget(w Widget) {
	if isNilWidget(w) {
		w = nil
	}
	if d.modal == w {
		return
	}
	if old := d.modal; old != nil {
		d.modal = nil
		d.RemoveWidget(old)
	}
	if w == nil {
		return
	}
	if w.Core().desktop != d {
		d.AddWidget(w)
	}
	d.modal = w
	// Widgets below the modal stop receiving pointer input, so they lose hover now.
	targets := d.ReverseWidgets()
	if i := slices.Index(targets, w); i >= 0 {
		dispatchMouseLeft(targets[i+1:])
	}
	if first := d.firstFocusable(w); first != nil {
		d.SetFocusedWidget(first)
	}
}

// ContextMenu returns the open context menu, or nil.
func (d *Desktop) ContextMenu() Widget { return d.contextMenu }

// ShowContextMenu opens menu at the absolute position p, closing any menu
// already open. The menu is aligned top-left, moved back inside the
// desktop if it would overflow, and added on top. A focusable menu takes
// focus and hands it back when closed. A nil menu panics.
func (d *Desktop) ShowContextMenu(menu Widget, p geometry.Point) {
	if isNilWidget(menu) {
		errors.Fail("ui.Desktop.ShowContextMenu", errNilContextMenu)
	}
	d.HideContextMenu()

	mb := menu.Core()
	mb.SetHorizontalAlignment(HorizontalLeft)
	mb.SetVerticalAlignment(VerticalTop)

	size := mb.Measure(d.bounds.Size())
	p.X = max(min(p.X, d.bounds.Right()-size.X), d.bounds.X)
	p.Y = max(min(p.Y, d.bounds.Bottom()-size.Y), d.bounds.Y)
	mb.SetLeft(p.X - d.bounds.X)
	mb.SetTop(p.Y - d.bounds.Y)
	mb.SetVisible(true)

	d.AddWidget(menu)
	d.contextMenu = menu

	if mb.canFocus {
		d.focusBeforeMenu = d.focused
		d.restoreFocus = true
		d.SetFocusedWidget(menu)
	}
}

// HideContextMenu closes the open context menu, if any, without asking
// ContextMenuClosing listeners. It fires ContextMenuClosed.
func (d *Desktop) HideContextMenu() {
	menu := d.contextMenu
	if menu == nil {
		return
	}
	d.contextMenu = nil
	d.RemoveWidget(menu)
	menu.Core().SetVisible(false)
	d.ContextMenuClosed.Fire(menu)

	if d.restoreFocus {
		prev := d.focusBeforeMenu
		d.focusBeforeMenu, d.restoreFocus = nil, false
		if prev != nil && prev.Core().desktop == d {
			d.SetFocusedWidget(prev)
		}
	}
}

// RequestCloseContextMenu asks ContextMenuClosing listeners and closes the
// menu unless one of them cancels. It reports whether the menu closed.
func (d *Desktop) RequestCloseContextMenu() bool {
	menu := d.contextMenu
	if menu == nil {
		return false
	}
	args := &ContextMenuClosingArgs{Menu: menu}
	d.ContextMenuClosing.Fire(args)
	if args.Cancel {
		return false
	}
	d.HideContextMenu()
	return true
}

// MenuBar returns the menu bar found during the last layout pass, or nil.
func (d *Desktop) MenuBar() MenuBar { return d.menuBar }

// UpdateLayout lays visible top-level widgets out over the desktop bounds,
// then settles any descendant whose layout went stale on its own.
func (d *Desktop) UpdateLayout() {
	d.menuBar = nil
	for _, w := range d.Widgets() {
		b := w.Core()
		if !b.visible {
			continue
		}
		b.Layout(d.bounds)
		d.settle(w)
	}
}

func (d *Desktop) settle(w Widget) {
	if d.menuBar == nil {
		if mb, ok := w.(MenuBar); ok {
			d.menuBar = mb
		}
	}
	ct, ok := w.(Container)
	if !ok {
		return
	}
	for _, child := range ct.Children() {
		b := child.Core()
		if !b.visible {
			continue
		}
		b.UpdateLayout()
		d.settle(child)
	}
}

// Render draws every visible top-level widget bottom to top, clipped to
// the desktop bounds.
func (d *Desktop) Render(s render.Surface) {
	if s == nil {
		return
	}
	old := s.Scissor()
	s.SetScissor(old.Intersect(d.bounds))
	defer s.SetScissor(old)

	ctx := &RenderContext{Surface: s, FocusFrame: d.FocusFrame, DebugFrame: d.DebugFrame}
	for _, w := range d.Widgets() {
		w.Core().Render(ctx)
	}
}

// Frame runs one full frame: input, then layout, then rendering.
func (d *Desktop) Frame(s render.Surface) {
	d.UpdateInput()
	d.UpdateLayout()
	d.Render(s)
}

// FindWidgetByID searches every top-level subtree in z-order.
func (d *Desktop) FindWidgetByID(id string) Widget {
	for _, w := range d.Widgets() {
		if found := FindWidgetByID(w, id); found != nil {
			return found
		}
	}
	return nil
}

// EnsureWidgetByID is FindWidgetByID that panics when nothing matches.
func (d *Desktop) EnsureWidgetByID(id string) Widget {
	w := d.FindWidgetByID(id)
	if w == nil {
		errors.Fail("ui.Desktop.EnsureWidgetByID", &errors.NotFoundError{ID: id})
	}
	return w
}

// IsPointOverGUI reports whether p lies over any visible top-level widget.
func (d *Desktop) IsPointOverGUI(p geometry.Point) bool {
	for _, w := range d.ReverseWidgets() {
		if b := w.Core(); b.visible && b.bounds.Contains(p) {
			return true
		}
	}
	return false
}

// CalculateTotalWidgets counts top-level widgets and all their descendants.
func (d *Desktop) CalculateTotalWidgets(visibleOnly bool) int {
	n := 0
	for _, w := range d.Widgets() {
		if visibleOnly && !w.Core().visible {
			continue
		}
		n++
		if ct, ok := w.(Container); ok {
			n += countDescendants(ct, visibleOnly)
		}
	}
	return n
}
