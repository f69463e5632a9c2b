// Package focus provides the pure traversal rules used to move keyboard
// focus between widgets. It knows nothing about widgets themselves: callers
// hand in indices and rectangles and get back the index to focus next.
package focus

import (
	"math"

	"github.com/go-drift/retain/pkg/geometry"
)

// Direction indicates a directional traversal.
type Direction int

const (
	// Up moves focus upward.
	Up Direction = iota

	// Down moves focus downward.
	Down

	// Left moves focus leftward.
	Left

	// Right moves focus rightward.
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// LinearDelta returns +1 or -1 for linear traversal based on direction.
func LinearDelta(d Direction) int {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

// Next returns the index of the next candidate, stepping by delta from
// current and wrapping around. canFocus filters candidates. A current of -1
// means nothing is focused, so the first step lands on index 0 (or the last
// index for a negative delta). Returns -1 if no candidate accepts focus.
func Next(count, current, delta int, canFocus func(i int) bool) int {
	if count <= 0 || delta == 0 {
		return -1
	}
	if current < 0 && delta < 0 {
		current = count
	}
	for step := 1; step <= count; step++ {
		i := wrapIndex(current+delta*step, count)
		if canFocus == nil || canFocus(i) {
			return i
		}
	}
	return -1
}

// InDirection picks the candidate that lies in direction d from current and
// scores best by distance, preferring candidates aligned on the cross axis.
// Empty rectangles never match. Returns -1 if nothing lies in that direction.
func InDirection(current geometry.Rect, candidates []geometry.Rect, d Direction) int {
	if current.IsEmpty() {
		return -1
	}
	best := -1
	bestScore := math.MaxFloat64
	for i, r := range candidates {
		if r.IsEmpty() || r == current {
			continue
		}
		if !isInDirection(current, r, d) {
			continue
		}
		score := directionalScore(current, r, d)
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func center(r geometry.Rect) (x, y float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

func isInDirection(source, target geometry.Rect, d Direction) bool {
	sx, sy := center(source)
	tx, ty := center(target)

	switch d {
	case Up:
		return ty < sy
	case Down:
		return ty > sy
	case Left:
		return tx < sx
	case Right:
		return tx > sx
	}
	return false
}

// directionalScore is lower for better targets. Cross-axis distance weighs
// double so aligned widgets win over closer diagonal ones.
func directionalScore(source, target geometry.Rect, d Direction) float64 {
	sx, sy := center(source)
	tx, ty := center(target)

	var primary, cross float64
	switch d {
	case Up, Down:
		primary = math.Abs(ty - sy)
		cross = math.Abs(tx - sx)
	case Left, Right:
		primary = math.Abs(tx - sx)
		cross = math.Abs(ty - sy)
	}
	return primary + cross*2
}
