// Package ui implements the retained widget tree: the measure and arrange
// protocol, the container family, the proportional grid, and the desktop
// that turns polled device snapshots into widget events.
//
// All coordinates are whole pixels in desktop space. Everything here runs on
// the caller's frame loop; nothing blocks and nothing is safe for concurrent
// use.
package ui

import (
	stderrors "errors"
	"time"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
	"github.com/go-drift/retain/pkg/style"
)

var (
	errNotInitialized  = stderrors.New("widget used before Init")
	errAlreadyAttached = stderrors.New("widget already has a parent or desktop; remove it first")
)

// Widget is one node of the tree.
//
// Concrete widgets embed [Base] (or one of the container bases) and call
// Init with themselves before use. Base routes the hooks below through that
// self reference, so a widget overrides a hook simply by defining the method.
type Widget interface {
	// Core returns the embedded Base that holds shared widget state.
	Core() *Base

	// InternalMeasure returns the intrinsic content size for the given
	// available size, excluding padding. It must not mutate layout state.
	InternalMeasure(available geometry.Point) geometry.Point
	// Arrange lays children out inside ActualBounds.
	Arrange()
	// InternalRender draws content between background and border.
	InternalRender(ctx *RenderContext)
	// Translate shifts the widget and its subtree by delta.
	Translate(delta geometry.Point)
	// OnDesktopChanged runs after the widget's desktop reference changed.
	OnDesktopChanged()

	SetEnabled(enabled bool)
	// AcceptsTab reports whether Tab is delivered as a key instead of moving focus.
	AcceptsTab() bool

	OnMouseEntered(p geometry.Point)
	OnMouseMoved(p geometry.Point)
	OnMouseLeft()
	OnMouseDown(b input.MouseButton)
	OnMouseUp(b input.MouseButton)
	OnMouseWheel(delta int)
	OnKeyDown(k input.Key)
	OnKeyUp(k input.Key)
}

// Base holds the state every widget shares and the default hook behavior.
type Base struct {
	self Widget

	id        string
	styleName string

	left, top    int
	lastLocation geometry.Point

	width, height       int
	hasWidth, hasHeight bool
	padding             geometry.Thickness
	hAlign              HorizontalAlignment
	vAlign              VerticalAlignment

	gridColumn, gridRow         int
	gridColumnSpan, gridRowSpan int

	visible  bool
	enabled  bool
	canFocus bool
	focused  bool

	mouseOver     bool
	buttonDown    input.MouseButton
	hasButtonDown bool
	lastDown      time.Time

	parent  Container
	desktop *Desktop

	bounds          geometry.Rect
	actualBounds    geometry.Rect
	containerBounds geometry.Rect
	layoutState     LayoutState

	measureDirty     bool
	lastMeasureAvail geometry.Point
	lastMeasureSize  geometry.Point

	Background         render.Brush
	OverBackground     render.Brush
	DisabledBackground render.Brush
	FocusedBackground  render.Brush

	Border         render.Brush
	OverBorder     render.Brush
	DisabledBorder render.Brush
	FocusedBorder  render.Brush

	// ClipToBounds restricts drawing of the widget and its subtree to Bounds.
	ClipToBounds bool

	// Tag is free for application use.
	Tag any

	VisibleChanged    Event[Widget]
	MeasureChanged    Event[Widget]
	FocusChanged      Event[bool]
	MouseEntered      Event[geometry.Point]
	MouseMoved        Event[geometry.Point]
	MouseLeft         Event[Widget]
	MouseDown         Event[input.MouseButton]
	MouseUp           Event[input.MouseButton]
	DoubleClick       Event[input.MouseButton]
	MouseWheelChanged Event[int]
	KeyDown           Event[input.Key]
	KeyUp             Event[input.Key]
}

// NewWidget returns a plain leaf widget with no intrinsic size. It is
// useful as a spacer or as a hit target with only event handlers attached.
func NewWidget() *Base {
	b := &Base{}
	b.Init(b)
	return b
}

// Init registers the concrete widget and resets state to a detached,
// visible, enabled widget with unit grid spans.
func (b *Base) Init(self Widget) {
	b.self = self
	b.visible = true
	b.enabled = true
	b.gridColumnSpan = 1
	b.gridRowSpan = 1
	b.layoutState = LayoutInvalid
	b.measureDirty = true
}

// Core returns b.
func (b *Base) Core() *Base { return b }

// Self returns the concrete widget registered via Init.
func (b *Base) Self() Widget {
	if b.self == nil {
		errors.Fail("ui.Base", errNotInitialized)
	}
	return b.self
}

// ID returns the widget id used by FindWidgetByID.
func (b *Base) ID() string { return b.id }

// SetID sets the widget id.
func (b *Base) SetID(id string) { b.id = id }

// StyleName returns the style name passed to ApplyWidgetStyle callers.
func (b *Base) StyleName() string { return b.styleName }

// SetStyleName records the style name. It does not restyle the widget.
func (b *Base) SetStyleName(name string) { b.styleName = name }

// Parent returns the owning container, or nil for top-level and detached widgets.
func (b *Base) Parent() Container { return b.parent }

// Desktop returns the desktop the widget is attached to, or nil.
func (b *Base) Desktop() *Desktop { return b.desktop }

// Left returns the horizontal position hint.
func (b *Base) Left() int { return b.left }

// SetLeft sets the horizontal position hint. A laid-out widget only
// becomes LocationInvalid and is translated on the next update.
func (b *Base) SetLeft(v int) {
	if b.left == v {
		return
	}
	b.left = v
	b.invalidateLocation()
}

// Top returns the vertical position hint.
func (b *Base) Top() int { return b.top }

// SetTop sets the vertical position hint.
func (b *Base) SetTop(v int) {
	if b.top == v {
		return
	}
	b.top = v
	b.invalidateLocation()
}

func (b *Base) invalidateLocation() {
	if b.layoutState == LayoutNormal {
		b.layoutState = LayoutLocationInvalid
	}
}

// Width returns the width hint and whether it is set.
func (b *Base) Width() (int, bool) { return b.width, b.hasWidth }

// SetWidth sets the width hint. Negative values clamp to zero.
func (b *Base) SetWidth(v int) {
	v = max(v, 0)
	if b.hasWidth && b.width == v {
		return
	}
	b.width, b.hasWidth = v, true
	b.InvalidateMeasure()
}

// ClearWidth removes the width hint.
func (b *Base) ClearWidth() {
	if !b.hasWidth {
		return
	}
	b.width, b.hasWidth = 0, false
	b.InvalidateMeasure()
}

// Height returns the height hint and whether it is set.
func (b *Base) Height() (int, bool) { return b.height, b.hasHeight }

// SetHeight sets the height hint. Negative values clamp to zero.
func (b *Base) SetHeight(v int) {
	v = max(v, 0)
	if b.hasHeight && b.height == v {
		return
	}
	b.height, b.hasHeight = v, true
	b.InvalidateMeasure()
}

// ClearHeight removes the height hint.
func (b *Base) ClearHeight() {
	if !b.hasHeight {
		return
	}
	b.height, b.hasHeight = 0, false
	b.InvalidateMeasure()
}

// Padding returns the content inset.
func (b *Base) Padding() geometry.Thickness { return b.padding }

// SetPadding sets the content inset. Negative edges clamp to zero.
func (b *Base) SetPadding(t geometry.Thickness) {
	t = geometry.Thickness{
		Left:   max(t.Left, 0),
		Top:    max(t.Top, 0),
		Right:  max(t.Right, 0),
		Bottom: max(t.Bottom, 0),
	}
	if b.padding == t {
		return
	}
	b.padding = t
	b.InvalidateMeasure()
}

// HorizontalAlignment returns the horizontal alignment.
func (b *Base) HorizontalAlignment() HorizontalAlignment { return b.hAlign }

// SetHorizontalAlignment sets the horizontal alignment.
func (b *Base) SetHorizontalAlignment(a HorizontalAlignment) {
	if b.hAlign == a {
		return
	}
	b.hAlign = a
	b.InvalidateMeasure()
}

// VerticalAlignment returns the vertical alignment.
func (b *Base) VerticalAlignment() VerticalAlignment { return b.vAlign }

// SetVerticalAlignment sets the vertical alignment.
func (b *Base) SetVerticalAlignment(a VerticalAlignment) {
	if b.vAlign == a {
		return
	}
	b.vAlign = a
	b.InvalidateMeasure()
}

// GridColumn returns the grid column index.
func (b *Base) GridColumn() int { return b.gridColumn }

// SetGridColumn sets the grid column index. Negative values clamp to zero.
func (b *Base) SetGridColumn(v int) {
	v = max(v, 0)
	if b.gridColumn == v {
		return
	}
	b.gridColumn = v
	b.InvalidateMeasure()
}

// GridRow returns the grid row index.
func (b *Base) GridRow() int { return b.gridRow }

// SetGridRow sets the grid row index. Negative values clamp to zero.
func (b *Base) SetGridRow(v int) {
	v = max(v, 0)
	if b.gridRow == v {
		return
	}
	b.gridRow = v
	b.InvalidateMeasure()
}

// GridColumnSpan returns the number of columns the widget covers.
func (b *Base) GridColumnSpan() int { return b.gridColumnSpan }

// SetGridColumnSpan sets the column span. Values below one clamp to one.
func (b *Base) SetGridColumnSpan(v int) {
	v = max(v, 1)
	if b.gridColumnSpan == v {
		return
	}
	b.gridColumnSpan = v
	b.InvalidateMeasure()
}

// GridRowSpan returns the number of rows the widget covers.
func (b *Base) GridRowSpan() int { return b.gridRowSpan }

// SetGridRowSpan sets the row span. Values below one clamp to one.
func (b *Base) SetGridRowSpan(v int) {
	v = max(v, 1)
	if b.gridRowSpan == v {
		return
	}
	b.gridRowSpan = v
	b.InvalidateMeasure()
}

// Visible reports whether the widget takes part in layout, input, and rendering.
func (b *Base) Visible() bool { return b.visible }

// SetVisible shows or hides the widget and notifies VisibleChanged.
func (b *Base) SetVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	if !v {
		b.mouseOver = false
		b.hasButtonDown = false
	}
	b.VisibleChanged.Fire(b.Self())
}

// Enabled reports whether the widget accepts pointer presses.
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled enables or disables the widget. Containers override this to
// propagate to their children.
func (b *Base) SetEnabled(v bool) {
	b.enabled = v
}

// CanFocus reports whether the widget takes keyboard focus.
func (b *Base) CanFocus() bool { return b.canFocus }

// SetCanFocus updates focusability and the desktop's focusable registry.
func (b *Base) SetCanFocus(v bool) {
	if b.canFocus == v {
		return
	}
	b.canFocus = v
	if b.desktop == nil {
		return
	}
	if v {
		b.desktop.registerFocusable(b.Self())
	} else {
		b.desktop.unregisterFocusable(b.Self())
	}
}

// IsFocused reports whether the widget is the focused widget or a
// focusable ancestor of it.
func (b *Base) IsFocused() bool { return b.focused }

func (b *Base) setFocused(v bool) {
	if b.focused == v {
		return
	}
	b.focused = v
	b.FocusChanged.Fire(v)
}

// AcceptsTab reports false; text-entry widgets override it.
func (b *Base) AcceptsTab() bool { return false }

// IsMouseOver reports whether the pointer is over the widget.
func (b *Base) IsMouseOver() bool { return b.mouseOver }

// MouseButtonsDown returns the button pressed on this widget, if any.
func (b *Base) MouseButtonsDown() (input.MouseButton, bool) {
	return b.buttonDown, b.hasButtonDown
}

// Bounds returns the arranged rectangle including padding.
func (b *Base) Bounds() geometry.Rect { return b.bounds }

// ActualBounds returns Bounds minus padding.
func (b *Base) ActualBounds() geometry.Rect { return b.actualBounds }

// ContainerBounds returns the rectangle last offered by the parent.
func (b *Base) ContainerBounds() geometry.Rect { return b.containerBounds }

// LayoutState returns how stale the arrangement is.
func (b *Base) LayoutState() LayoutState { return b.layoutState }

// Measure returns the desired size including padding. Results are cached
// per available size until InvalidateMeasure is called.
func (b *Base) Measure(available geometry.Point) geometry.Point {
	if !b.measureDirty && b.lastMeasureAvail == available {
		return b.lastMeasureSize
	}

	var result geometry.Point
	if b.hasWidth && b.hasHeight {
		result = geometry.Pt(b.width, b.height)
	} else {
		inner := geometry.Pt(
			max(available.X-b.padding.Width(), 0),
			max(available.Y-b.padding.Height(), 0),
		)
		result = b.Self().InternalMeasure(inner)
		if b.hasWidth {
			result.X = b.width
		}
		if b.hasHeight {
			result.Y = b.height
		}
	}

	result.X += b.padding.Width()
	result.Y += b.padding.Height()

	b.lastMeasureSize = result
	b.lastMeasureAvail = available
	b.measureDirty = false
	return result
}

// InternalMeasure returns zero; widgets with content override it.
func (b *Base) InternalMeasure(geometry.Point) geometry.Point {
	return geometry.Point{}
}

// Arrange does nothing for leaves.
func (b *Base) Arrange() {}

// InvalidateMeasure drops the measure cache, marks the layout invalid, and
// notifies MeasureChanged so the parent can do the same.
func (b *Base) InvalidateMeasure() {
	b.measureDirty = true
	b.InvalidateLayout()
	b.MeasureChanged.Fire(b.Self())
}

// InvalidateLayout forces a full arrangement on the next UpdateLayout.
func (b *Base) InvalidateLayout() {
	b.layoutState = LayoutInvalid
}

// Layout offers containerBounds to the widget. A changed rectangle forces a
// full arrangement; otherwise only pending work is done.
func (b *Base) Layout(containerBounds geometry.Rect) {
	if b.containerBounds != containerBounds {
		b.containerBounds = containerBounds
		b.InvalidateLayout()
	}
	b.UpdateLayout()
}

// UpdateLayout advances the layout state machine to LayoutNormal.
func (b *Base) UpdateLayout() {
	switch b.layoutState {
	case LayoutNormal:
		return
	case LayoutLocationInvalid:
		loc := geometry.Pt(b.left, b.top)
		delta := loc.Sub(b.lastLocation)
		b.lastLocation = loc
		b.layoutState = LayoutNormal
		if !delta.IsZero() {
			b.Self().Translate(delta)
		}
		return
	}

	cb := b.containerBounds
	var size geometry.Point
	if b.hAlign != HorizontalStretch || b.vAlign != VerticalStretch {
		size = b.Measure(cb.Size())
	} else {
		size = cb.Size()
	}
	size.X = min(size.X, cb.Width)
	size.Y = min(size.Y, cb.Height)

	r := Align(cb.Size(), size, b.hAlign, b.vAlign)
	r = r.Offset(cb.Location()).Translate(b.left, b.top)

	b.bounds = r
	b.actualBounds = b.padding.Deflate(r)
	b.lastLocation = geometry.Pt(b.left, b.top)
	b.layoutState = LayoutNormal

	b.Self().Arrange()
}

// Translate moves Bounds and ActualBounds by delta.
func (b *Base) Translate(delta geometry.Point) {
	b.bounds = b.bounds.Offset(delta)
	b.actualBounds = b.actualBounds.Offset(delta)
}

// OnDesktopChanged does nothing for leaves.
func (b *Base) OnDesktopChanged() {}

func (b *Base) setDesktop(d *Desktop) {
	if b.desktop == d {
		return
	}
	if old := b.desktop; old != nil {
		old.widgetDetached(b.Self())
		b.mouseOver = false
		b.hasButtonDown = false
	}
	b.desktop = d
	if d != nil && b.canFocus {
		d.registerFocusable(b.Self())
	}
	b.Self().OnDesktopChanged()
}

// attach links b under parent (nil for top level) on desktop d. A widget
// that already has an owner is a programming error.
func (b *Base) attach(op string, parent Container, d *Desktop) {
	if b.parent != nil || b.desktop != nil {
		errors.Fail(op, errAlreadyAttached)
	}
	b.parent = parent
	b.setDesktop(d)
}

// detach leaves the desktop before unlinking the parent so the desktop
// can still walk the old focus chain through the parent.
func (b *Base) detach() {
	b.setDesktop(nil)
	b.parent = nil
}

// ApplyWidgetStyle copies size hints, padding, and brushes from s.
// A nil style is ignored.
func (b *Base) ApplyWidgetStyle(s *style.WidgetStyle) {
	if s == nil {
		return
	}
	if s.Width != nil {
		b.SetWidth(*s.Width)
	} else {
		b.ClearWidth()
	}
	if s.Height != nil {
		b.SetHeight(*s.Height)
	} else {
		b.ClearHeight()
	}
	b.SetPadding(s.Padding)

	b.Background = s.Background
	b.OverBackground = s.OverBackground
	b.DisabledBackground = s.DisabledBackground
	b.FocusedBackground = s.FocusedBackground

	b.Border = s.Border
	b.OverBorder = s.OverBorder
	b.DisabledBorder = s.DisabledBorder
	b.FocusedBorder = s.FocusedBorder
}

// CurrentBackground picks the background brush for the interaction state.
// Disabled wins over hover, and hover wins over focus.
func (b *Base) CurrentBackground() render.Brush {
	return b.pick(b.Background, b.OverBackground, b.DisabledBackground, b.FocusedBackground)
}

// CurrentBorder picks the border brush the same way as CurrentBackground.
func (b *Base) CurrentBorder() render.Brush {
	return b.pick(b.Border, b.OverBorder, b.DisabledBorder, b.FocusedBorder)
}

func (b *Base) pick(normal, over, disabled, focused render.Brush) render.Brush {
	switch {
	case !b.enabled:
		if disabled != nil {
			return disabled
		}
	case b.mouseOver && over != nil:
		return over
	case b.focused && focused != nil:
		return focused
	}
	return normal
}

func (b *Base) now() time.Time {
	if b.desktop != nil {
		return b.desktop.now()
	}
	return time.Now()
}

func (b *Base) doubleClickInterval() time.Duration {
	if b.desktop != nil && b.desktop.DoubleClickInterval > 0 {
		return b.desktop.DoubleClickInterval
	}
	return DefaultDoubleClickInterval
}
