package widgets

import (
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// Button is a focusable single-child container that fires Click when the
// left button is pressed and released over it, or when Enter or Space is
// pressed while it has focus. Disabled buttons never fire.
type Button struct {
	ui.SingleItemContainer[ui.Widget]

	pressed bool

	Click ui.Event[*Button]
}

// NewButton returns a button holding a centered label, styled by the
// "button" entries of ss.
func NewButton(ss *style.Stylesheet, text string) *Button {
	b := &Button{}
	b.Init(b)
	b.SetCanFocus(true)
	applyStyle(b, ss, KindButton)

	l := NewLabel(ss, text)
	l.SetHorizontalAlignment(ui.HorizontalCenter)
	l.SetVerticalAlignment(ui.VerticalCenter)
	b.SetChild(l)
	return b
}

// Label returns the child label, or nil if the content was replaced by
// another widget.
func (b *Button) Label() *Label {
	l, _ := b.Child().(*Label)
	return l
}

// IsPressed reports whether the left button went down on the button and
// has not been released yet.
func (b *Button) IsPressed() bool { return b.pressed }

// OnMouseDown starts a press.
func (b *Button) OnMouseDown(button input.MouseButton) {
	b.SingleItemContainer.OnMouseDown(button)
	if button == input.MouseLeft {
		b.pressed = true
	}
}

// OnMouseUp ends a press and clicks if the pointer is still over the button.
func (b *Button) OnMouseUp(button input.MouseButton) {
	click := button == input.MouseLeft && b.pressed
	if button == input.MouseLeft {
		b.pressed = false
	}
	b.SingleItemContainer.OnMouseUp(button)
	if click && b.IsMouseOver() && b.Enabled() {
		b.Click.Fire(b)
	}
}

// OnKeyDown clicks on Enter and Space.
func (b *Button) OnKeyDown(k input.Key) {
	b.SingleItemContainer.OnKeyDown(k)
	if (k == input.KeyEnter || k == input.KeySpace) && b.Enabled() {
		b.Click.Fire(b)
	}
}
