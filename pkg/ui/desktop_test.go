package ui

import (
	stderrors "errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/focus"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
)

func focusable(w, h int) *sized {
	s := newSized(w, h)
	s.SetCanFocus(true)
	return s
}

func click(d *Desktop, in *fakeInput) {
	in.press(input.MouseLeft)
	frame(d)
	in.release(input.MouseLeft)
	frame(d)
}

func countEvents[T any](e *Event[T]) *int {
	n := new(int)
	e.Add(func(T) { *n++ })
	return n
}

func TestFocusChain(t *testing.T) {
	d, _, _ := newTestDesktop()
	panel := NewMultipleItemsContainer()
	panel.SetCanFocus(true)
	leaf := focusable(10, 10)
	other := focusable(10, 10)
	panel.AddChild(leaf)
	d.AddWidget(panel)
	d.AddWidget(other)

	var changes []Widget
	d.FocusedWidgetChanged.Add(func(w Widget) { changes = append(changes, w) })

	d.SetFocusedWidget(leaf)
	assert.True(t, leaf.IsFocused())
	assert.True(t, panel.IsFocused(), "focusable ancestors join the chain")

	d.SetFocusedWidget(other)
	assert.False(t, leaf.IsFocused())
	assert.False(t, panel.IsFocused())
	assert.True(t, other.IsFocused())
	assert.Equal(t, []Widget{leaf, other}, changes)
}

func TestRemovingFocusedWidgetClearsFocus(t *testing.T) {
	d, _, _ := newTestDesktop()
	panel := NewMultipleItemsContainer()
	panel.SetCanFocus(true)
	leaf := focusable(10, 10)
	panel.AddChild(leaf)
	d.AddWidget(panel)

	d.SetFocusedWidget(leaf)
	require.True(t, panel.IsFocused())
	panel.RemoveChild(leaf)
	assert.Nil(t, d.FocusedWidget())
	assert.False(t, leaf.IsFocused())
	assert.False(t, panel.IsFocused(), "ancestor keeps focus after its focused child left")
	assert.NotContains(t, d.Focusables(), Widget(leaf))

	top := focusable(10, 10)
	d.AddWidget(top)
	d.SetFocusedWidget(top)
	top.SetCanFocus(false)
	assert.Nil(t, d.FocusedWidget())
	assert.False(t, top.IsFocused())
}

func TestRemovingSubtreeClearsAncestorFocus(t *testing.T) {
	d, _, _ := newTestDesktop()
	outer := NewMultipleItemsContainer()
	outer.SetCanFocus(true)
	inner := NewMultipleItemsContainer()
	inner.SetCanFocus(true)
	leaf := focusable(10, 10)
	inner.AddChild(leaf)
	outer.AddChild(inner)
	d.AddWidget(outer)

	d.SetFocusedWidget(leaf)
	require.True(t, outer.IsFocused())
	require.True(t, inner.IsFocused())

	outer.RemoveChild(inner)
	assert.Nil(t, d.FocusedWidget())
	assert.False(t, outer.IsFocused())
	assert.False(t, inner.IsFocused())
	assert.False(t, leaf.IsFocused())
	assert.Nil(t, inner.Parent())
	assert.Nil(t, leaf.Desktop())
	assert.Same(t, inner, leaf.Parent())
}

func TestContextMenuIsClampedToDesktop(t *testing.T) {
	d := NewDesktop(geometry.RectFromXYWH(0, 0, 100, 100))
	menu := newSized(30, 20)

	d.ShowContextMenu(menu, geometry.Pt(90, 95))
	d.UpdateLayout()

	assert.Equal(t, geometry.RectFromXYWH(70, 80, 30, 20), menu.Bounds())
	assert.Same(t, menu, d.ContextMenu())
}

func TestContextMenuIsSingleton(t *testing.T) {
	d, _, _ := newTestDesktop()
	closed := countEvents(&d.ContextMenuClosed)
	first := newSized(30, 20)
	second := newSized(30, 20)

	d.ShowContextMenu(first, geometry.Pt(0, 0))
	d.ShowContextMenu(second, geometry.Pt(10, 10))

	assert.Equal(t, 1, *closed)
	assert.Equal(t, 1, d.WidgetCount())
	assert.Nil(t, first.Desktop())
	assert.False(t, first.Visible())
	assert.Same(t, second, d.ContextMenu())

	d.HideContextMenu()
	d.HideContextMenu()
	assert.Equal(t, 2, *closed)
	assert.Nil(t, d.ContextMenu())
}

func TestNilContextMenuPanics(t *testing.T) {
	d, _, _ := newTestDesktop()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		var re *errors.RetainError
		require.True(t, stderrors.As(r.(error), &re))
		assert.Equal(t, errors.KindConfig, re.Kind)
	}()
	var menu *sized
	d.ShowContextMenu(menu, geometry.Pt(0, 0))
}

func TestFocusableContextMenuRestoresFocus(t *testing.T) {
	d, _, _ := newTestDesktop()
	editor := focusable(10, 10)
	d.AddWidget(editor)
	d.SetFocusedWidget(editor)

	menu := focusable(30, 20)
	d.ShowContextMenu(menu, geometry.Pt(5, 5))
	assert.Same(t, menu, d.FocusedWidget())

	d.HideContextMenu()
	assert.Same(t, editor, d.FocusedWidget())
}

func TestClickOutsideClosesContextMenu(t *testing.T) {
	d, in, _ := newTestDesktop()
	menu := newSized(30, 20)
	d.ShowContextMenu(menu, geometry.Pt(10, 10))
	frame(d)

	in.moveTo(20, 20)
	click(d, in)
	require.Same(t, menu, d.ContextMenu(), "press inside keeps the menu")

	cancel := true
	d.ContextMenuClosing.Add(func(a *ContextMenuClosingArgs) {
		assert.Same(t, menu, a.Menu)
		a.Cancel = cancel
	})
	in.moveTo(150, 50)
	click(d, in)
	require.Same(t, menu, d.ContextMenu(), "listener vetoed the close")

	cancel = false
	click(d, in)
	assert.Nil(t, d.ContextMenu())
}

func TestEscapeClosesContextMenu(t *testing.T) {
	d, in, _ := newTestDesktop()
	editor := newTabWidget()
	d.AddWidget(editor)
	d.SetFocusedWidget(editor)
	d.ShowContextMenu(newSized(30, 20), geometry.Pt(10, 10))
	frame(d)

	in.keys = []input.Key{input.KeyEscape}
	frame(d)
	assert.Nil(t, d.ContextMenu())
	assert.Empty(t, editor.keys, "escape that closes a menu is consumed")

	in.keys = nil
	frame(d)
	in.keys = []input.Key{input.KeyEscape}
	frame(d)
	assert.Equal(t, []input.Key{input.KeyEscape}, editor.keys)
}

func TestDoubleClick(t *testing.T) {
	d, in, clk := newTestDesktop()
	w := newSized(50, 50)
	d.AddWidget(w)
	doubles := countEvents(&w.DoubleClick)
	frame(d)
	in.moveTo(10, 10)
	frame(d)

	click(d, in)
	clk.advance(100 * time.Millisecond)
	click(d, in)
	assert.Equal(t, 1, *doubles)

	clk.advance(100 * time.Millisecond)
	click(d, in)
	assert.Equal(t, 1, *doubles, "a third press starts a new sequence")

	clk.advance(600 * time.Millisecond)
	click(d, in)
	assert.Equal(t, 1, *doubles, "presses beyond the interval are single clicks")

	clk.advance(499 * time.Millisecond)
	click(d, in)
	assert.Equal(t, 2, *doubles)
}

func TestMouseUpGoesToPressedWidget(t *testing.T) {
	d, in, _ := newTestDesktop()
	w := newSized(50, 50)
	d.AddWidget(w)
	ups := countEvents(&w.MouseUp)
	frame(d)

	in.moveTo(10, 10)
	in.press(input.MouseLeft)
	frame(d)
	in.moveTo(150, 50)
	frame(d)
	assert.False(t, w.IsMouseOver())

	in.release(input.MouseLeft)
	frame(d)
	assert.Equal(t, 1, *ups)
	_, down := w.MouseButtonsDown()
	assert.False(t, down)
}

func TestPointerGoesToTopmostWidget(t *testing.T) {
	d, in, _ := newTestDesktop()
	bottom := newSized(50, 50)
	top := newSized(50, 50)
	d.AddWidget(bottom)
	d.AddWidget(top)
	bottomDowns := countEvents(&bottom.MouseDown)
	topDowns := countEvents(&top.MouseDown)
	frame(d)

	in.moveTo(10, 10)
	click(d, in)

	assert.True(t, top.IsMouseOver())
	assert.False(t, bottom.IsMouseOver())
	assert.Equal(t, 1, *topDowns)
	assert.Equal(t, 0, *bottomDowns)

	top.SetEnabled(false)
	click(d, in)
	assert.Equal(t, 1, *topDowns)
	assert.Equal(t, 0, *bottomDowns, "a disabled widget still hides the one below")
}

func TestModalBlocksWidgetsBelow(t *testing.T) {
	d, in, _ := newTestDesktop()
	below := focusable(200, 100)
	d.AddWidget(below)
	downs := countEvents(&below.MouseDown)

	dialog := NewMultipleItemsContainer()
	dialog.SetLeft(100)
	dialog.SetTop(50)
	okButton := focusable(20, 20)
	dialog.AddChild(okButton)
	d.SetModalWidget(dialog)
	assert.Same(t, okButton, d.FocusedWidget())

	frame(d)
	in.moveTo(10, 10)
	click(d, in)
	assert.Equal(t, 0, *downs)
	assert.False(t, below.IsMouseOver())

	assert.False(t, d.FocusNext(), "only the modal's widgets take focus")
	assert.Same(t, okButton, d.FocusedWidget())

	replacement := NewMultipleItemsContainer()
	d.SetModalWidget(replacement)
	assert.Nil(t, dialog.Desktop())
	assert.Same(t, replacement, d.ModalWidget())
	assert.Nil(t, d.FocusedWidget(), "focus inside the old modal is dropped")

	d.SetModalWidget(nil)
	assert.Equal(t, 1, d.WidgetCount())
	in.moveTo(11, 10)
	click(d, in)
	assert.Equal(t, 1, *downs)
}

func TestModalClearsHoverBelow(t *testing.T) {
	d, in, _ := newTestDesktop()
	below := newSized(50, 50)
	d.AddWidget(below)
	left := countEvents(&below.MouseLeft)

	frame(d)
	in.moveTo(10, 10)
	frame(d)
	require.True(t, below.IsMouseOver())

	dialog := newSized(20, 20)
	dialog.SetLeft(150)
	dialog.SetTop(60)
	d.SetModalWidget(dialog)
	assert.False(t, below.IsMouseOver())
	assert.Equal(t, 1, *left)

	in.moveTo(12, 12)
	frame(d)
	assert.False(t, below.IsMouseOver(), "pointer input stops at the modal")
	assert.Equal(t, 1, *left)
}

func TestClickPromotesFocus(t *testing.T) {
	d, in, _ := newTestDesktop()
	w := focusable(50, 50)
	plain := newSized(50, 50)
	plain.SetLeft(100)
	d.AddWidget(w)
	d.AddWidget(plain)
	frame(d)

	in.moveTo(10, 10)
	click(d, in)
	assert.Same(t, w, d.FocusedWidget())

	in.moveTo(110, 10)
	click(d, in)
	assert.Same(t, w, d.FocusedWidget(), "non-focusable widgets leave focus alone")
}

func TestWheelGoesToFocusedChain(t *testing.T) {
	d, in, _ := newTestDesktop()
	w := focusable(10, 10)
	d.AddWidget(w)
	d.SetFocusedWidget(w)

	var got []int
	w.MouseWheelChanged.Add(func(delta int) { got = append(got, delta) })
	desktopWheel := countEvents(&d.MouseWheelChanged)

	frame(d)
	in.mouse.Wheel = 3
	frame(d)
	in.mouse.Wheel = 1
	frame(d)

	assert.Equal(t, []int{3, -2}, got)
	assert.Equal(t, 2, *desktopWheel)
}

func TestKeysGoToFocusedChain(t *testing.T) {
	d, in, _ := newTestDesktop()
	w := newTabWidget()
	d.AddWidget(w)
	d.SetFocusedWidget(w)
	var ups []input.Key
	w.KeyUp.Add(func(k input.Key) { ups = append(ups, k) })

	in.keys = []input.Key{input.KeyA}
	frame(d)
	frame(d)
	in.keys = nil
	frame(d)

	assert.Equal(t, []input.Key{input.KeyA}, w.keys, "held keys fire once")
	assert.Equal(t, []input.Key{input.KeyA}, ups)
}

func TestTabMovesFocus(t *testing.T) {
	d, in, _ := newTestDesktop()
	a, b, c := focusable(10, 10), focusable(10, 10), focusable(10, 10)
	hidden := focusable(10, 10)
	hidden.SetVisible(false)
	panel := NewMultipleItemsContainer()
	panel.AddChild(a)
	panel.AddChild(hidden)
	panel.AddChild(b)
	d.AddWidget(panel)
	d.AddWidget(c)

	press := func(keys ...input.Key) {
		in.keys = keys
		frame(d)
		in.keys = nil
		frame(d)
	}

	press(input.KeyTab)
	assert.Same(t, a, d.FocusedWidget())
	press(input.KeyTab)
	assert.Same(t, b, d.FocusedWidget())
	press(input.KeyTab)
	assert.Same(t, c, d.FocusedWidget())
	press(input.KeyTab)
	assert.Same(t, a, d.FocusedWidget())

	press(input.KeyLeftShift, input.KeyTab)
	assert.Same(t, c, d.FocusedWidget())
}

func TestAcceptsTabKeepsFocus(t *testing.T) {
	d, in, _ := newTestDesktop()
	editor := newTabWidget()
	d.AddWidget(editor)
	d.AddWidget(focusable(10, 10))
	d.SetFocusedWidget(editor)

	in.keys = []input.Key{input.KeyTab}
	frame(d)

	assert.Same(t, editor, d.FocusedWidget())
	assert.Equal(t, []input.Key{input.KeyTab}, editor.keys)
}

func TestFocusInDirection(t *testing.T) {
	d, _, _ := newTestDesktop()
	left := focusable(10, 10)
	right := focusable(10, 10)
	right.SetLeft(50)
	d.AddWidget(left)
	d.AddWidget(right)
	d.UpdateLayout()
	d.SetFocusedWidget(left)

	assert.True(t, d.FocusInDirection(focus.Right))
	assert.Same(t, right, d.FocusedWidget())
	assert.True(t, d.FocusInDirection(focus.Down), "falls back to linear order")
	assert.Same(t, left, d.FocusedWidget())
}

func TestMenuBarTakesKeysWhileAltHeld(t *testing.T) {
	d, in, _ := newTestDesktop()
	bar := newMenuBar()
	editor := newTabWidget()
	d.AddWidget(bar)
	d.AddWidget(editor)
	d.SetFocusedWidget(editor)
	frame(d)
	require.Equal(t, MenuBar(bar), d.MenuBar())

	in.keys = []input.Key{input.KeyLeftAlt}
	frame(d)
	assert.True(t, d.ShowUnderscores())
	in.keys = []input.Key{input.KeyLeftAlt, input.KeyF}
	frame(d)
	assert.Equal(t, []input.Key{input.KeyLeftAlt, input.KeyF}, bar.keys)
	assert.Empty(t, editor.keys)

	in.keys = nil
	frame(d)
	assert.False(t, d.ShowUnderscores())
	in.keys = []input.Key{input.KeyB}
	frame(d)
	assert.Equal(t, []input.Key{input.KeyB}, editor.keys)

	bar.open = true
	in.keys = []input.Key{input.KeyB, input.KeyC}
	frame(d)
	assert.Equal(t, input.KeyC, bar.keys[len(bar.keys)-1])

	d.RemoveWidget(bar)
	assert.Nil(t, d.MenuBar())
}

func TestDesktopRenderOrderAndClip(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	d, _, _ := newTestDesktop()
	under := newSized(40, 40)
	under.Background = render.Solid{Color: red}
	over := newSized(20, 20)
	over.Background = render.Solid{Color: blue}
	d.AddWidget(under)
	d.AddWidget(over)

	clipper := NewMultipleItemsContainer()
	clipper.SetLeft(100)
	clipper.SetWidth(20)
	clipper.SetHeight(20)
	clipper.ClipToBounds = true
	spill := newSized(10, 10)
	spill.SetLeft(15)
	spill.Background = render.Solid{Color: blue}
	clipper.AddChild(spill)
	d.AddWidget(clipper)

	s := render.NewImageSurface(200, 100)
	d.UpdateLayout()
	d.Render(s)

	img := s.Image()
	assert.Equal(t, blue, img.RGBAAt(10, 10), "last added draws on top")
	assert.Equal(t, red, img.RGBAAt(30, 30))
	assert.Equal(t, blue, img.RGBAAt(117, 5))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(122, 5), "clipped to the container")
}

func TestDesktopQueries(t *testing.T) {
	d, _, _ := newTestDesktop()
	panel := NewMultipleItemsContainer()
	leaf := newSized(10, 10)
	leaf.SetID("leaf")
	hidden := newSized(10, 10)
	hidden.SetVisible(false)
	panel.AddChild(leaf)
	panel.AddChild(hidden)
	d.AddWidget(panel)
	d.UpdateLayout()

	assert.True(t, d.IsPointOverGUI(geometry.Pt(5, 5)))
	assert.False(t, d.IsPointOverGUI(geometry.Pt(150, 50)))
	assert.Equal(t, 3, d.CalculateTotalWidgets(false))
	assert.Equal(t, 2, d.CalculateTotalWidgets(true))

	assert.Equal(t, Widget(leaf), d.FindWidgetByID("leaf"))
	assert.Panics(t, func() { d.EnsureWidgetByID("nope") })

	d.ClearWidgets()
	assert.Equal(t, 0, d.WidgetCount())
	assert.Nil(t, panel.Desktop())
	assert.Nil(t, leaf.Desktop())
}
