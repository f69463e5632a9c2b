package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/go-drift/retain/pkg/geometry"
)

// ImageSurface rasterizes into an *image.RGBA.
type ImageSurface struct {
	dst     *image.RGBA
	scissor geometry.Rect

	// Scaler is used for DrawImage. Defaults to nearest-neighbour, which
	// keeps pixel-art atlases crisp.
	Scaler draw.Scaler
}

// NewImageSurface creates a surface backed by a new RGBA image of the given size.
func NewImageSurface(width, height int) *ImageSurface {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return &ImageSurface{
		dst:     dst,
		scissor: geometry.FromImage(dst.Bounds()),
		Scaler:  draw.NearestNeighbor,
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.dst
}

// Clear fills the whole image with c, ignoring the scissor.
func (s *ImageSurface) Clear(c color.Color) {
	draw.Draw(s.dst, s.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills r with c using source-over compositing.
func (s *ImageSurface) FillRect(r geometry.Rect, c color.Color) {
	clipped := r.Intersect(s.scissor).Image().Intersect(s.dst.Bounds())
	if clipped.Empty() {
		return
	}
	draw.Draw(s.dst, clipped, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawImage scales the src region of img into dst, clipped to the scissor.
func (s *ImageSurface) DrawImage(img image.Image, src image.Rectangle, dst geometry.Rect) {
	if img == nil || dst.IsEmpty() || src.Empty() {
		return
	}
	clip := s.scissor.Image().Intersect(s.dst.Bounds())
	if clip.Empty() {
		return
	}
	scaler := s.Scaler
	if scaler == nil {
		scaler = draw.NearestNeighbor
	}
	target := s.dst.SubImage(clip).(*image.RGBA)
	scaler.Scale(target, dst.Image(), img, src, draw.Over, nil)
}

// Scissor returns the current clip rectangle.
func (s *ImageSurface) Scissor() geometry.Rect {
	return s.scissor
}

// SetScissor replaces the clip rectangle.
func (s *ImageSurface) SetScissor(r geometry.Rect) {
	s.scissor = r
}
