// Package errors provides structured error handling for the retain widget engine.
//
// Recoverable layout conditions (negative sizes, out-of-range grid cells, zero
// part totals) never surface here; they are clamped where they occur. This
// package covers the two remaining channels: programmer errors, which fail
// fast through [Fail], and loader or runtime errors, which are reported to a
// pluggable [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a programming or configuration error, such as a
	// missing required child or an unresolvable widget id.
	KindConfig
	// KindLayout indicates a failure inside a measure or arrange pass.
	KindLayout
	// KindStyle indicates a stylesheet that could not be loaded or applied.
	KindStyle
	// KindInput indicates a failure while polling or dispatching input.
	KindInput
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLayout:
		return "layout"
	case KindStyle:
		return "style"
	case KindInput:
		return "input"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// RetainError represents a structured error raised by the engine.
type RetainError struct {
	// Op is the operation that failed (e.g., "ui.Desktop.ShowContextMenu").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RetainError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RetainError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.demo").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NotFoundError reports a widget lookup that found nothing.
type NotFoundError struct {
	// ID is the identifier that was searched for.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find widget with id %q", e.ID)
}

// Fail panics with a KindConfig RetainError. It is reserved for programmer
// errors that must not be silently absorbed by a running frame loop.
func Fail(op string, err error) {
	panic(&RetainError{
		Op:         op,
		Kind:       KindConfig,
		Err:        err,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *RetainError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
