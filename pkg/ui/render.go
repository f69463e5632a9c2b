package ui

import "github.com/go-drift/retain/pkg/render"

// RenderContext carries the drawing surface through a render pass.
type RenderContext struct {
	Surface render.Surface

	// FocusFrame, when set, is drawn over Bounds of every focused widget.
	FocusFrame render.Brush
	// DebugFrame, when set, is drawn over Bounds of every rendered widget.
	DebugFrame render.Brush
}

// Render brings the layout up to date and draws the widget: background,
// then InternalRender, then border. Invisible and empty widgets draw nothing.
func (b *Base) Render(ctx *RenderContext) {
	if !b.visible || ctx == nil || ctx.Surface == nil {
		return
	}
	b.UpdateLayout()

	bounds := b.bounds
	if bounds.IsEmpty() {
		return
	}

	s := ctx.Surface
	if b.ClipToBounds {
		old := s.Scissor()
		clip := old.Intersect(bounds)
		if clip.IsEmpty() {
			return
		}
		s.SetScissor(clip)
		defer s.SetScissor(old)
	}

	if bg := b.CurrentBackground(); bg != nil {
		bg.Draw(s, bounds)
	}

	b.Self().InternalRender(ctx)

	if border := b.CurrentBorder(); border != nil {
		border.Draw(s, bounds)
	}
	if ctx.DebugFrame != nil {
		ctx.DebugFrame.Draw(s, bounds)
	}
	if ctx.FocusFrame != nil && b.focused {
		ctx.FocusFrame.Draw(s, bounds)
	}
}

// InternalRender draws nothing for plain widgets.
func (b *Base) InternalRender(*RenderContext) {}
