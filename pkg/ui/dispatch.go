package ui

import (
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
)

// The dispatch helpers take widgets topmost first. Desktops and containers
// pass their reverse snapshots so the last added sibling is hit first.

// dispatchMouseMovement delivers enter or move to the first visible widget
// containing p and leave to every other widget that was under the pointer.
// It reports whether any widget contains p.
func dispatchMouseMovement(widgets []Widget, p geometry.Point) bool {
	hit := false
	for _, w := range widgets {
		b := w.Core()
		if !b.visible {
			continue
		}
		if !hit && b.bounds.Contains(p) {
			hit = true
			if b.mouseOver {
				w.OnMouseMoved(p)
			} else {
				w.OnMouseEntered(p)
			}
			continue
		}
		if b.mouseOver {
			w.OnMouseLeft()
		}
	}
	return hit
}

// dispatchMouseLeft clears hover on every widget still marked as under the pointer.
func dispatchMouseLeft(widgets []Widget) {
	for _, w := range widgets {
		if w.Core().mouseOver {
			w.OnMouseLeft()
		}
	}
}

// dispatchMouseDown delivers the press to the first visible, enabled widget
// under the pointer.
func dispatchMouseDown(widgets []Widget, button input.MouseButton) bool {
	for _, w := range widgets {
		b := w.Core()
		if b.visible && b.enabled && b.mouseOver {
			w.OnMouseDown(button)
			return true
		}
	}
	return false
}

// dispatchMouseUp delivers the release to the first widget holding a press.
// A release with no such widget is ignored.
func dispatchMouseUp(widgets []Widget, button input.MouseButton) bool {
	for _, w := range widgets {
		b := w.Core()
		if b.visible && b.hasButtonDown {
			w.OnMouseUp(button)
			return true
		}
	}
	return false
}
