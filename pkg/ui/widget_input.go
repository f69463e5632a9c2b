package ui

import (
	"time"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
)

// DefaultDoubleClickInterval is the longest gap between two presses on the
// same widget that still counts as a double click.
const DefaultDoubleClickInterval = 500 * time.Millisecond

// OnMouseEntered marks the pointer as over the widget.
func (b *Base) OnMouseEntered(p geometry.Point) {
	b.mouseOver = true
	b.MouseEntered.Fire(p)
}

// OnMouseMoved notifies MouseMoved.
func (b *Base) OnMouseMoved(p geometry.Point) {
	b.MouseMoved.Fire(p)
}

// OnMouseLeft clears the pointer-over state.
func (b *Base) OnMouseLeft() {
	b.mouseOver = false
	b.MouseLeft.Fire(b.Self())
}

// OnMouseDown records the pressed button, detects double clicks, and
// promotes a registered focusable widget to focus.
//
// A second press within the desktop's double-click interval fires
// DoubleClick once and resets the timestamp, so a third press starts over.
func (b *Base) OnMouseDown(button input.MouseButton) {
	b.buttonDown = button
	b.hasButtonDown = true
	b.MouseDown.Fire(button)

	now := b.now()
	if !b.lastDown.IsZero() && now.Sub(b.lastDown) < b.doubleClickInterval() {
		b.lastDown = time.Time{}
		b.DoubleClick.Fire(button)
	} else {
		b.lastDown = now
	}

	if d := b.desktop; d != nil && b.enabled && !b.focused && d.isFocusable(b.Self()) {
		d.SetFocusedWidget(b.Self())
	}
}

// OnMouseUp clears the pressed button.
func (b *Base) OnMouseUp(button input.MouseButton) {
	b.hasButtonDown = false
	b.MouseUp.Fire(button)
}

// OnMouseWheel notifies MouseWheelChanged.
func (b *Base) OnMouseWheel(delta int) {
	b.MouseWheelChanged.Fire(delta)
}

// OnKeyDown notifies KeyDown.
func (b *Base) OnKeyDown(k input.Key) {
	b.KeyDown.Fire(k)
}

// OnKeyUp notifies KeyUp.
func (b *Base) OnKeyUp(k input.Key) {
	b.KeyUp.Fire(k)
}
