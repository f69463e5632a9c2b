package ui

import "github.com/go-drift/retain/pkg/errors"

// Walk visits w and its descendants depth first in child order. Returning
// false from fn stops the walk; Walk reports whether it ran to completion.
func Walk(w Widget, fn func(Widget) bool) bool {
	if !fn(w) {
		return false
	}
	if ct, ok := w.(Container); ok {
		for _, child := range ct.Children() {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// FindWidgetByID returns the first widget in w's subtree with the given id.
func FindWidgetByID(w Widget, id string) Widget {
	var found Widget
	Walk(w, func(c Widget) bool {
		if c.Core().id == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindWidgetByID searches this widget's subtree.
func (b *Base) FindWidgetByID(id string) Widget {
	return FindWidgetByID(b.Self(), id)
}

// EnsureWidgetByID searches this widget's subtree and panics with a
// NotFoundError when nothing matches.
func (b *Base) EnsureWidgetByID(id string) Widget {
	w := b.FindWidgetByID(id)
	if w == nil {
		errors.Fail("ui.EnsureWidgetByID", &errors.NotFoundError{ID: id})
	}
	return w
}

// RemoveFromParent detaches the widget from its container, if any.
func (b *Base) RemoveFromParent() {
	if b.parent != nil {
		b.parent.RemoveChild(b.Self())
	}
}

// RemoveFromDesktop removes a top-level widget from its desktop.
func (b *Base) RemoveFromDesktop() {
	if b.desktop != nil && b.parent == nil {
		b.desktop.RemoveWidget(b.Self())
	}
}

// IsPlaced reports whether w and every ancestor are visible.
func IsPlaced(w Widget) bool {
	for b := w.Core(); ; {
		if !b.visible {
			return false
		}
		if b.parent == nil {
			return true
		}
		b = b.parent.Core()
	}
}

// IsDescendantOf reports whether w is root or lies inside root's subtree.
func IsDescendantOf(w, root Widget) bool {
	for cur := w; cur != nil; {
		if cur == root {
			return true
		}
		p := cur.Core().parent
		if p == nil {
			return false
		}
		cur = p
	}
	return false
}

// clearFocusChain clears IsFocused on w and every ancestor. It ignores
// CanFocus, which may have been switched off while the flag was set.
func clearFocusChain(w Widget) {
	for cur := w; cur != nil; {
		b := cur.Core()
		b.setFocused(false)
		if b.parent == nil {
			return
		}
		cur = b.parent
	}
}

// iterateFocusable calls fn for w and each ancestor that can take focus,
// innermost first.
func iterateFocusable(w Widget, fn func(Widget)) {
	for cur := w; cur != nil; {
		b := cur.Core()
		if b.canFocus {
			fn(cur)
		}
		if b.parent == nil {
			return
		}
		cur = b.parent
	}
}
