package ui

import (
	"slices"

	"github.com/go-drift/retain/pkg/focus"
	"github.com/go-drift/retain/pkg/geometry"
)

// FocusedWidget returns the widget holding keyboard focus, or nil.
func (d *Desktop) FocusedWidget() Widget { return d.focused }

// SetFocusedWidget moves keyboard focus. IsFocused is cleared on the old
// widget and its focusable ancestors, then set on the new chain.
func (d *Desktop) SetFocusedWidget(w Widget) {
	if isNilWidget(w) {
		w = nil
	}
	if d.focused == w {
		return
	}
	if old := d.focused; old != nil {
		clearFocusChain(old)
	}
	d.focused = w
	if w != nil {
		iterateFocusable(w, func(f Widget) { f.Core().setFocused(true) })
	}
	d.FocusedWidgetChanged.Fire(w)
}

func (d *Desktop) registerFocusable(w Widget) {
	if !slices.Contains(d.focusables, w) {
		d.focusables = append(d.focusables, w)
	}
}

func (d *Desktop) unregisterFocusable(w Widget) {
	i := slices.Index(d.focusables, w)
	if i < 0 {
		return
	}
	d.focusables = slices.Delete(d.focusables, i, i+1)
	if d.focused == w {
		d.SetFocusedWidget(nil)
	}
}

func (d *Desktop) isFocusable(w Widget) bool {
	return slices.Contains(d.focusables, w)
}

// Focusables returns the registered focusable widgets in registration order.
func (d *Desktop) Focusables() []Widget {
	return slices.Clone(d.focusables)
}

// canTakeFocus filters registered widgets for traversal: visible up to the
// root, enabled, and inside the modal widget when one is active.
func (d *Desktop) canTakeFocus(w Widget) bool {
	b := w.Core()
	if !b.canFocus || !b.enabled || !IsPlaced(w) {
		return false
	}
	if d.modal != nil && !IsDescendantOf(w, d.modal) {
		return d.contextMenu != nil && IsDescendantOf(w, d.contextMenu)
	}
	return true
}

// focusOrder lists focus candidates in tree order, bottom widget first.
func (d *Desktop) focusOrder() []Widget {
	var order []Widget
	for _, top := range d.Widgets() {
		Walk(top, func(w Widget) bool {
			if d.canTakeFocus(w) {
				order = append(order, w)
			}
			return true
		})
	}
	return order
}

func (d *Desktop) firstFocusable(root Widget) Widget {
	var first Widget
	Walk(root, func(w Widget) bool {
		if b := w.Core(); b.canFocus && b.enabled && IsPlaced(w) {
			first = w
			return false
		}
		return true
	})
	return first
}

// FocusNext moves focus to the next candidate in tree order, wrapping
// around. It reports whether focus moved.
func (d *Desktop) FocusNext() bool { return d.moveFocus(1) }

// FocusPrevious moves focus to the previous candidate, wrapping around.
func (d *Desktop) FocusPrevious() bool { return d.moveFocus(-1) }

func (d *Desktop) moveFocus(delta int) bool {
	order := d.focusOrder()
	i := focus.Next(len(order), slices.Index(order, d.focused), delta, nil)
	if i < 0 || order[i] == d.focused {
		return false
	}
	d.SetFocusedWidget(order[i])
	return true
}

// FocusInDirection moves focus to the nearest candidate in direction dir,
// falling back to linear traversal when nothing lies that way.
func (d *Desktop) FocusInDirection(dir focus.Direction) bool {
	if d.focused == nil {
		return d.FocusNext()
	}
	order := d.focusOrder()
	rects := make([]geometry.Rect, len(order))
	for i, w := range order {
		if w != d.focused {
			rects[i] = w.Core().bounds
		}
	}
	if i := focus.InDirection(d.focused.Core().bounds, rects, dir); i >= 0 {
		d.SetFocusedWidget(order[i])
		return true
	}
	return d.moveFocus(focus.LinearDelta(dir))
}
