package ui

import "slices"

// MultipleItemsContainer owns an ordered list of children. Later children
// draw above earlier ones and are hit first.
type MultipleItemsContainer struct {
	ContainerBase

	widgets     []Widget
	unsubscribe []func()

	forward, reverse []Widget
	snapshotDirty    bool
}

// NewMultipleItemsContainer returns a container that stacks its children
// over its content rectangle.
func NewMultipleItemsContainer() *MultipleItemsContainer {
	m := &MultipleItemsContainer{}
	m.Init(m)
	return m
}

// AddChild appends w.
func (m *MultipleItemsContainer) AddChild(w Widget) {
	m.InsertChild(len(m.widgets), w)
}

// InsertChild inserts w at index i, clamped to the valid range.
func (m *MultipleItemsContainer) InsertChild(i int, w Widget) {
	if isNilWidget(w) {
		return
	}
	i = min(max(i, 0), len(m.widgets))
	off := m.adopt("ui.MultipleItemsContainer.InsertChild", w)
	m.widgets = slices.Insert(m.widgets, i, w)
	m.unsubscribe = slices.Insert(m.unsubscribe, i, off)
	m.snapshotDirty = true
}

// RemoveChild detaches w if it is a child.
func (m *MultipleItemsContainer) RemoveChild(w Widget) bool {
	i := m.IndexOf(w)
	if i < 0 {
		return false
	}
	m.RemoveChildAt(i)
	return true
}

// RemoveChildAt detaches the child at index i. Out of range indices are ignored.
func (m *MultipleItemsContainer) RemoveChildAt(i int) {
	if i < 0 || i >= len(m.widgets) {
		return
	}
	w, off := m.widgets[i], m.unsubscribe[i]
	m.widgets = slices.Delete(m.widgets, i, i+1)
	m.unsubscribe = slices.Delete(m.unsubscribe, i, i+1)
	m.snapshotDirty = true
	m.release(w, off)
}

// ClearChildren detaches every child.
func (m *MultipleItemsContainer) ClearChildren() {
	for len(m.widgets) > 0 {
		m.RemoveChildAt(len(m.widgets) - 1)
	}
}

// IndexOf returns the position of w, or -1.
func (m *MultipleItemsContainer) IndexOf(w Widget) int {
	return slices.Index(m.widgets, w)
}

// ChildAt returns the child at index i, or nil if out of range.
func (m *MultipleItemsContainer) ChildAt(i int) Widget {
	if i < 0 || i >= len(m.widgets) {
		return nil
	}
	return m.widgets[i]
}

// ChildCount returns the number of children.
func (m *MultipleItemsContainer) ChildCount() int {
	return len(m.widgets)
}

// Children returns the children in insertion order.
func (m *MultipleItemsContainer) Children() []Widget {
	m.refreshSnapshots()
	return m.forward
}

// ReverseChildren returns the children topmost first.
func (m *MultipleItemsContainer) ReverseChildren() []Widget {
	m.refreshSnapshots()
	return m.reverse
}

// Snapshots are rebuilt on first access after a structural change, so a
// batch of edits costs one copy.
func (m *MultipleItemsContainer) refreshSnapshots() {
	if !m.snapshotDirty {
		return
	}
	m.forward = slices.Clone(m.widgets)
	m.reverse = slices.Clone(m.widgets)
	slices.Reverse(m.reverse)
	m.snapshotDirty = false
}
