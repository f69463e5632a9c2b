package ui

// SingleItemContainer owns at most one child of type T.
type SingleItemContainer[T Widget] struct {
	ContainerBase

	child       T
	hasChild    bool
	unsubscribe func()
}

// NewSingleItemContainer returns a container that lays its one child out
// over its content rectangle.
func NewSingleItemContainer[T Widget]() *SingleItemContainer[T] {
	s := &SingleItemContainer[T]{}
	s.Init(s)
	return s
}

// Child returns the current child, or the zero T if there is none.
func (s *SingleItemContainer[T]) Child() T {
	return s.child
}

// HasChild reports whether a child is set.
func (s *SingleItemContainer[T]) HasChild() bool {
	return s.hasChild
}

// SetChild replaces the child. The old child is detached before the new
// one is attached. A nil w just removes the current child.
func (s *SingleItemContainer[T]) SetChild(w T) {
	if s.hasChild && Widget(s.child) == Widget(w) {
		return
	}
	if s.hasChild {
		old := s.child
		var zero T
		s.child, s.hasChild = zero, false
		s.release(old, s.unsubscribe)
		s.unsubscribe = nil
	}
	if isNilWidget(w) {
		return
	}
	s.unsubscribe = s.adopt("ui.SingleItemContainer.SetChild", w)
	s.child, s.hasChild = w, true
}

// Children returns the child as a one-element snapshot.
func (s *SingleItemContainer[T]) Children() []Widget {
	if !s.hasChild {
		return nil
	}
	return []Widget{s.child}
}

// ReverseChildren is the same as Children.
func (s *SingleItemContainer[T]) ReverseChildren() []Widget {
	return s.Children()
}

// ChildCount returns 0 or 1.
func (s *SingleItemContainer[T]) ChildCount() int {
	if s.hasChild {
		return 1
	}
	return 0
}

// RemoveChild clears the child if it is w.
func (s *SingleItemContainer[T]) RemoveChild(w Widget) bool {
	if !s.hasChild || Widget(s.child) != w {
		return false
	}
	var zero T
	s.SetChild(zero)
	return true
}
