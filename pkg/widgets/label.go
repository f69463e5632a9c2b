package widgets

import (
	"image"
	"image/color"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// Label shows lines of text in a fixed-advance bitmap face.
//
// Width is counted in cells: every grapheme cluster takes the one or two
// cells uniseg reports, times the face advance. Each "\n" starts a new
// line one face height below the previous one. Text is drawn from the top
// left of ActualBounds and cut at its edges.
type Label struct {
	ui.Base

	text     string
	face     font.Face
	color    color.Color
	mnemonic int

	// ShowMnemonic underlines the mnemonic cluster, if one is set.
	ShowMnemonic bool

	glyphs *image.RGBA
}

// NewLabel returns a white label in the 7x13 basic face, styled by the
// "label" entries of ss.
func NewLabel(ss *style.Stylesheet, text string) *Label {
	l := &Label{text: text, face: basicfont.Face7x13, color: color.White, mnemonic: -1}
	l.Init(l)
	applyStyle(l, ss, KindLabel)
	return l
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text and clears the mnemonic.
func (l *Label) SetText(s string) {
	if l.text == s {
		return
	}
	l.text = s
	l.mnemonic = -1
	l.glyphs = nil
	l.InvalidateMeasure()
}

// Mnemonic returns the underlined cluster index, or -1.
func (l *Label) Mnemonic() int { return l.mnemonic }

// SetMnemonic sets the cluster index to underline. Clusters are counted
// over the whole text with each line break counting as one.
func (l *Label) SetMnemonic(i int) { l.mnemonic = max(i, -1) }

// Color returns the text colour.
func (l *Label) Color() color.Color { return l.color }

// SetColor changes the text colour.
func (l *Label) SetColor(c color.Color) {
	if c == nil {
		c = color.White
	}
	l.color = c
	l.glyphs = nil
}

// Face returns the font face.
func (l *Label) Face() font.Face { return l.face }

// SetFace changes the font face. A nil face restores the basic face.
func (l *Label) SetFace(f font.Face) {
	if f == nil {
		f = basicfont.Face7x13
	}
	l.face = f
	l.glyphs = nil
	l.InvalidateMeasure()
}

// cellSize is the advance of one narrow cell and the line height.
func (l *Label) cellSize() geometry.Point {
	adv, ok := l.face.GlyphAdvance('M')
	if !ok {
		adv = l.face.Metrics().Height / 2
	}
	return geometry.Pt(adv.Ceil(), l.face.Metrics().Height.Ceil())
}

// InternalMeasure returns the widest line in cells by the number of lines.
func (l *Label) InternalMeasure(geometry.Point) geometry.Point {
	if l.text == "" {
		return geometry.Point{}
	}
	cell := l.cellSize()
	lines := strings.Split(l.text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, uniseg.StringWidth(line))
	}
	return geometry.Pt(width*cell.X, len(lines)*cell.Y)
}

// eachCluster calls fn for every grapheme cluster of text with its global
// index, line, first cell and width in cells.
func eachCluster(text string, fn func(index, line, cell, width int, cluster string)) {
	index := 0
	for li, line := range strings.Split(text, "\n") {
		cell := 0
		state := -1
		for rest := line; rest != ""; {
			var c string
			var w int
			c, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			fn(index, li, cell, w, c)
			cell += w
			index++
		}
		index++
	}
}

func (l *Label) rasterize() *image.RGBA {
	if l.glyphs != nil {
		return l.glyphs
	}
	size := l.InternalMeasure(geometry.Point{})
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	cell := l.cellSize()
	ascent := l.face.Metrics().Ascent.Ceil()
	d := font.Drawer{Dst: img, Src: image.NewUniform(l.color), Face: l.face}
	eachCluster(l.text, func(_, line, x, _ int, cluster string) {
		d.Dot = fixed.P(x*cell.X, line*cell.Y+ascent)
		d.DrawString(cluster)
	})
	l.glyphs = img
	return img
}

// InternalRender draws the cached glyph image and the mnemonic underline.
func (l *Label) InternalRender(ctx *ui.RenderContext) {
	ab := l.ActualBounds()
	if l.text == "" || ab.IsEmpty() {
		return
	}
	img := l.rasterize()
	w := min(img.Bounds().Dx(), ab.Width)
	h := min(img.Bounds().Dy(), ab.Height)
	if w <= 0 || h <= 0 {
		return
	}
	ctx.Surface.DrawImage(img, image.Rect(0, 0, w, h), geometry.RectFromXYWH(ab.X, ab.Y, w, h))

	if !l.ShowMnemonic || l.mnemonic < 0 {
		return
	}
	cell := l.cellSize()
	ascent := l.face.Metrics().Ascent.Ceil()
	eachCluster(l.text, func(i, line, x, width int, _ string) {
		if i != l.mnemonic {
			return
		}
		r := geometry.RectFromXYWH(ab.X+x*cell.X, ab.Y+line*cell.Y+ascent+1, width*cell.X, 1)
		ctx.Surface.FillRect(r.Intersect(ab), l.color)
	})
}
