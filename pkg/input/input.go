// Package input models the pollable device snapshot consumed by the desktop.
//
// Any device that can report a pointer position, a fixed set of button
// states, a cumulative wheel value, and the set of currently pressed keys
// satisfies [Source]. The desktop diffs consecutive snapshots to synthesize
// discrete events; nothing in this package blocks or buffers.
package input

import (
	"slices"

	"github.com/go-drift/retain/pkg/geometry"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	// MouseLeft is the primary button.
	MouseLeft MouseButton = iota
	// MouseMiddle is the wheel button.
	MouseMiddle
	// MouseRight is the secondary button.
	MouseRight

	// ButtonCount is the number of buttons tracked per snapshot.
	ButtonCount = 3
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	default:
		return "unknown"
	}
}

// MouseInfo is a single pointer snapshot.
type MouseInfo struct {
	Position geometry.Point
	// Buttons holds the pressed state per MouseButton.
	Buttons [ButtonCount]bool
	// Wheel is the cumulative wheel value; the desktop dispatches differences.
	Wheel int
}

// IsDown reports whether button b is pressed in this snapshot.
func (m MouseInfo) IsDown(b MouseButton) bool {
	if b < 0 || int(b) >= ButtonCount {
		return false
	}
	return m.Buttons[b]
}

// Source is polled once per frame for the current device state.
type Source interface {
	// Mouse returns the current pointer snapshot.
	Mouse() MouseInfo
	// DownKeys returns the keys that are currently held.
	DownKeys() []Key
}

// Edge describes how a button or key changed between two snapshots.
type Edge int

const (
	// EdgeNone means the state did not change.
	EdgeNone Edge = iota
	// EdgePressed means released -> pressed.
	EdgePressed
	// EdgeReleased means pressed -> released.
	EdgeReleased
)

// ButtonEdge compares the state of b in last and current.
func ButtonEdge(last, current MouseInfo, b MouseButton) Edge {
	was, is := last.IsDown(b), current.IsDown(b)
	switch {
	case is && !was:
		return EdgePressed
	case !is && was:
		return EdgeReleased
	default:
		return EdgeNone
	}
}

// KeySet is an unordered set of held keys.
type KeySet map[Key]struct{}

// NewKeySet builds a set from keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether k is in the set.
func (s KeySet) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// Diff returns the keys newly pressed in current and the keys released since
// last. Both results are sorted so dispatch order is reproducible.
func Diff(last, current KeySet) (pressed, released []Key) {
	for k := range current {
		if !last.Contains(k) {
			pressed = append(pressed, k)
		}
	}
	for k := range last {
		if !current.Contains(k) {
			released = append(released, k)
		}
	}
	slices.Sort(pressed)
	slices.Sort(released)
	return pressed, released
}
