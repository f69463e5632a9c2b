package ui

import (
	"slices"

	"github.com/go-drift/retain/pkg/input"
)

// pointerTargets returns the top-level widgets that may receive pointer
// input, topmost first. An active modal hides everything below it; a
// context menu opened above the modal stays reachable.
func (d *Desktop) pointerTargets() []Widget {
	targets := d.ReverseWidgets()
	if d.modal == nil {
		return targets
	}
	if i := slices.Index(targets, d.modal); i >= 0 {
		return targets[:i+1]
	}
	return targets
}

// ShowUnderscores reports whether menu mnemonics should be displayed: the
// menu bar is open or Alt is held.
func (d *Desktop) ShowUnderscores() bool {
	if d.menuBar != nil && d.menuBar.IsOpen() {
		return true
	}
	return d.lastKeys.Contains(input.KeyLeftAlt) || d.lastKeys.Contains(input.KeyRightAlt)
}

// UpdateInput polls Input once and dispatches the differences from the
// previous snapshot: pointer movement, then button edges in button order,
// then wheel, then key presses and releases in key order.
func (d *Desktop) UpdateInput() {
	if d.Input == nil {
		return
	}
	d.updateMouse(d.Input.Mouse())
	d.updateKeyboard(input.NewKeySet(d.Input.DownKeys()...))
}

func (d *Desktop) updateMouse(m input.MouseInfo) {
	last := d.lastMouse
	d.lastMouse = m
	d.mousePosition = m.Position

	if !d.polled || m.Position != last.Position {
		d.polled = true
		d.MouseMoved.Fire(m.Position)
		dispatchMouseMovement(d.pointerTargets(), m.Position)
	}

	for b := range input.ButtonCount {
		button := input.MouseButton(b)
		switch input.ButtonEdge(last, m, button) {
		case input.EdgePressed:
			d.handleMouseDown(button)
		case input.EdgeReleased:
			d.handleMouseUp(button)
		}
	}

	if delta := m.Wheel - last.Wheel; delta != 0 {
		d.MouseWheelChanged.Fire(delta)
		if d.focused != nil {
			iterateFocusable(d.focused, func(w Widget) { w.OnMouseWheel(delta) })
		}
	}
}

// handleMouseDown closes a context menu pressed outside of, unless a
// listener vetoes, then delivers the press to the topmost hovered widget.
func (d *Desktop) handleMouseDown(button input.MouseButton) {
	d.MouseDown.Fire(button)

	if menu := d.contextMenu; menu != nil && !menu.Core().bounds.Contains(d.mousePosition) {
		d.RequestCloseContextMenu()
	}

	dispatchMouseDown(d.pointerTargets(), button)
}

func (d *Desktop) handleMouseUp(button input.MouseButton) {
	d.MouseUp.Fire(button)
	dispatchMouseUp(d.pointerTargets(), button)
}

func (d *Desktop) updateKeyboard(keys input.KeySet) {
	pressed, released := input.Diff(d.lastKeys, keys)
	d.lastKeys = keys

	for _, k := range pressed {
		d.KeyDown.Fire(k)
		d.handleKeyDown(k, keys)
	}
	for _, k := range released {
		d.KeyUp.Fire(k)
		if d.focused != nil {
			iterateFocusable(d.focused, func(w Widget) { w.OnKeyUp(k) })
		}
	}
}

// handleKeyDown routes one pressed key. Escape closes an open context
// menu. Tab and Shift+Tab move focus unless the focused widget accepts
// tabs. Other keys go to the menu bar while mnemonics are shown, and to
// the focused chain otherwise.
func (d *Desktop) handleKeyDown(k input.Key, keys input.KeySet) {
	if k == input.KeyEscape && d.contextMenu != nil {
		d.RequestCloseContextMenu()
		return
	}

	if k == input.KeyTab && (d.focused == nil || !d.focused.AcceptsTab()) {
		if keys.Contains(input.KeyLeftShift) || keys.Contains(input.KeyRightShift) {
			d.FocusPrevious()
		} else {
			d.FocusNext()
		}
		return
	}

	if d.menuBar != nil && d.ShowUnderscores() {
		d.menuBar.OnKeyDown(k)
		return
	}
	if d.focused != nil {
		iterateFocusable(d.focused, func(w Widget) { w.OnKeyDown(k) })
	}
}
