// Package geometry provides the integer pixel geometry used by the widget tree.
package geometry

import "image"

// Point represents a 2D position, offset, or size in whole pixels.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromXYWH constructs a Rect from position and size values.
func RectFromXYWH(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize constructs a Rect at the origin with the given size.
func RectFromSize(size Point) Rect {
	return Rect{Width: size.X, Height: size.Y}
}

// Location returns the top-left corner.
func (r Rect) Location() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the width and height as a Point.
func (r Rect) Size() Point {
	return Point{X: r.Width, Y: r.Height}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the center point of the rectangle, rounded toward zero.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Offset returns a new rect offset by p.
func (r Rect) Offset(p Point) Rect {
	return r.Translate(p.X, p.Y)
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.X, other.X)
	top := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	left := min(r.X, other.X)
	top := min(r.Y, other.Y)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Thickness holds per-edge insets such as padding.
type Thickness struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Uniform returns a Thickness with the same value on every edge.
func Uniform(v int) Thickness {
	return Thickness{Left: v, Top: v, Right: v, Bottom: v}
}

// Width returns the sum of left and right insets.
func (t Thickness) Width() int {
	return t.Left + t.Right
}

// Height returns the sum of top and bottom insets.
func (t Thickness) Height() int {
	return t.Top + t.Bottom
}

// Deflate shrinks r by t, clamping width and height at zero.
func (t Thickness) Deflate(r Rect) Rect {
	r.X += t.Left
	r.Y += t.Top
	r.Width = max(r.Width-t.Width(), 0)
	r.Height = max(r.Height-t.Height(), 0)
	return r
}
