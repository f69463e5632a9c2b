// Package render defines the drawing boundary between the widget tree and a
// rendering backend.
//
// The widget tree never touches pixels. Each visible widget hands its final
// bounds and its current background or border [Brush] to a [Surface]; the
// surface decides how to rasterize them. [ImageSurface] is a software
// implementation over an in-memory RGBA image.
package render

import (
	"image"
	"image/color"

	"github.com/go-drift/retain/pkg/geometry"
)

// Surface is the abstract drawing target handed to widgets each frame.
type Surface interface {
	// FillRect fills r with c, clipped to the current scissor rectangle.
	FillRect(r geometry.Rect, c color.Color)
	// DrawImage draws the src region of img stretched into dst.
	DrawImage(img image.Image, src image.Rectangle, dst geometry.Rect)
	// Scissor returns the current clip rectangle.
	Scissor() geometry.Rect
	// SetScissor replaces the clip rectangle.
	SetScissor(r geometry.Rect)
}

// Brush paints a rectangle. Style records hold brushes for each interaction
// state; the widget picks one and the brush decides how it is drawn.
type Brush interface {
	Draw(s Surface, r geometry.Rect)
}

// Solid is a Brush that fills with a single colour.
type Solid struct {
	Color color.Color
}

// Draw fills r.
func (b Solid) Draw(s Surface, r geometry.Rect) {
	if b.Color == nil {
		return
	}
	s.FillRect(r, b.Color)
}

// ImageRegion is a Brush that stretches a region of an atlas image.
type ImageRegion struct {
	Image  image.Image
	Region image.Rectangle
}

// Draw stretches the region into r.
func (b ImageRegion) Draw(s Surface, r geometry.Rect) {
	if b.Image == nil {
		return
	}
	src := b.Region
	if src.Empty() {
		src = b.Image.Bounds()
	}
	s.DrawImage(b.Image, src, r)
}

// Outline is a Brush that draws a rectangle frame of the given thickness.
type Outline struct {
	Color     color.Color
	Thickness int
}

// Draw strokes the inside edge of r.
func (b Outline) Draw(s Surface, r geometry.Rect) {
	t := max(b.Thickness, 1)
	if b.Color == nil || r.IsEmpty() {
		return
	}
	s.FillRect(geometry.RectFromXYWH(r.X, r.Y, r.Width, min(t, r.Height)), b.Color)
	s.FillRect(geometry.RectFromXYWH(r.X, r.Bottom()-t, r.Width, min(t, r.Height)), b.Color)
	s.FillRect(geometry.RectFromXYWH(r.X, r.Y, min(t, r.Width), r.Height), b.Color)
	s.FillRect(geometry.RectFromXYWH(r.Right()-t, r.Y, min(t, r.Width), r.Height), b.Color)
}
