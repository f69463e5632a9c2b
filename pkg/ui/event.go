package ui

// Event is a list of handlers notified in registration order.
//
// The zero value is ready to use. Handlers added or removed while the event
// is firing take effect on the next Fire.
type Event[T any] struct {
	handlers []handler[T]
	nextID   int
}

type handler[T any] struct {
	id int
	fn func(T)
}

// Add registers fn and returns a func that unregisters it. Calling the
// returned func more than once is a no-op.
func (e *Event[T]) Add(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})
	return func() {
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Fire calls every registered handler with v.
func (e *Event[T]) Fire(v T) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := e.handlers
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}
