package ui

import (
	stderrors "errors"
	"reflect"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
)

var errNotContainer = stderrors.New("container base embedded in a type that does not implement Container")

// Container is a widget that owns children.
//
// Children and ReverseChildren return snapshots that stay valid when the
// child list changes during iteration. Callers must not modify them.
type Container interface {
	Widget
	Children() []Widget
	ReverseChildren() []Widget
	ChildCount() int
	// RemoveChild detaches w and reports whether it was a child.
	RemoveChild(w Widget) bool
}

// ContainerBase forwards input, rendering, translation, and desktop
// changes to the children of the embedding Container. By default it
// measures as the largest visible child and lays every visible child out
// over ActualBounds.
type ContainerBase struct {
	Base
}

func (c *ContainerBase) container() Container {
	ct, ok := c.Self().(Container)
	if !ok {
		errors.Fail("ui.ContainerBase", errNotContainer)
	}
	return ct
}

// adopt attaches w as a child and subscribes to the notifications that
// invalidate this container's measure. The returned func unsubscribes.
func (c *ContainerBase) adopt(op string, w Widget) (unsubscribe func()) {
	wb := w.Core()
	wb.attach(op, c.container(), c.desktop)
	offMeasure := wb.MeasureChanged.Add(func(Widget) { c.InvalidateMeasure() })
	offVisible := wb.VisibleChanged.Add(func(Widget) { c.InvalidateMeasure() })
	c.InvalidateMeasure()
	return func() {
		offMeasure()
		offVisible()
	}
}

func (c *ContainerBase) release(w Widget, unsubscribe func()) {
	if unsubscribe != nil {
		unsubscribe()
	}
	w.Core().detach()
	c.InvalidateMeasure()
}

// SetEnabled sets Enabled here and on every direct child. Nested
// containers continue the propagation through their own SetEnabled.
func (c *ContainerBase) SetEnabled(v bool) {
	c.Base.SetEnabled(v)
	for _, child := range c.container().Children() {
		child.SetEnabled(v)
	}
}

// InternalMeasure returns the largest measure among visible children.
func (c *ContainerBase) InternalMeasure(available geometry.Point) geometry.Point {
	var result geometry.Point
	for _, child := range c.container().Children() {
		cb := child.Core()
		if !cb.visible {
			continue
		}
		m := cb.Measure(available)
		result.X = max(result.X, m.X)
		result.Y = max(result.Y, m.Y)
	}
	return result
}

// Arrange lays every visible child out over ActualBounds.
func (c *ContainerBase) Arrange() {
	for _, child := range c.container().Children() {
		if cb := child.Core(); cb.visible {
			cb.Layout(c.actualBounds)
		}
	}
}

// InternalRender renders children in insertion order.
func (c *ContainerBase) InternalRender(ctx *RenderContext) {
	for _, child := range c.container().Children() {
		child.Core().Render(ctx)
	}
}

// Translate moves the container and carries the children and the
// rectangles they were offered along with it.
func (c *ContainerBase) Translate(delta geometry.Point) {
	c.Base.Translate(delta)
	for _, child := range c.container().Children() {
		cb := child.Core()
		cb.containerBounds = cb.containerBounds.Offset(delta)
		child.Translate(delta)
	}
}

// OnDesktopChanged hands the new desktop down to the children.
func (c *ContainerBase) OnDesktopChanged() {
	for _, child := range c.container().Children() {
		child.Core().setDesktop(c.desktop)
	}
}

// OnMouseEntered marks the container and resolves hover among children.
func (c *ContainerBase) OnMouseEntered(p geometry.Point) {
	c.Base.OnMouseEntered(p)
	dispatchMouseMovement(c.container().ReverseChildren(), p)
}

// OnMouseMoved resolves hover among children.
func (c *ContainerBase) OnMouseMoved(p geometry.Point) {
	c.Base.OnMouseMoved(p)
	dispatchMouseMovement(c.container().ReverseChildren(), p)
}

// OnMouseLeft clears hover on the container and any hovered child.
func (c *ContainerBase) OnMouseLeft() {
	c.Base.OnMouseLeft()
	dispatchMouseLeft(c.container().ReverseChildren())
}

// OnMouseDown handles the press here, then forwards it to the topmost
// hovered child.
func (c *ContainerBase) OnMouseDown(button input.MouseButton) {
	c.Base.OnMouseDown(button)
	dispatchMouseDown(c.container().ReverseChildren(), button)
}

// OnMouseUp handles the release here, then forwards it to the child
// holding the press.
func (c *ContainerBase) OnMouseUp(button input.MouseButton) {
	c.Base.OnMouseUp(button)
	dispatchMouseUp(c.container().ReverseChildren(), button)
}

// CalculateTotalChildCount counts all descendants, optionally skipping
// invisible subtrees.
func (c *ContainerBase) CalculateTotalChildCount(visibleOnly bool) int {
	return countDescendants(c.container(), visibleOnly)
}

func countDescendants(ct Container, visibleOnly bool) int {
	n := 0
	for _, child := range ct.Children() {
		if visibleOnly && !child.Core().visible {
			continue
		}
		n++
		if sub, ok := child.(Container); ok {
			n += countDescendants(sub, visibleOnly)
		}
	}
	return n
}

// isNilWidget catches both untyped nil and typed nil pointers.
func isNilWidget(w any) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
