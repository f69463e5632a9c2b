package uitest

import (
	"image/color"
	"testing"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
	"github.com/go-drift/retain/pkg/ui"
)

// Tester runs full frames of a desktop against fake devices.
type Tester struct {
	Desktop *ui.Desktop
	Input   *FakeInput
	Clock   *FakeClock
	Surface *render.ImageSurface
}

// NewTester returns a tester with a width x height desktop at the origin.
func NewTester(width, height int) *Tester {
	in := &FakeInput{}
	clk := NewFakeClock()
	d := ui.NewDesktop(geometry.RectFromXYWH(0, 0, width, height))
	d.Input = in
	d.Clock = clk
	return &Tester{
		Desktop: d,
		Input:   in,
		Clock:   clk,
		Surface: render.NewImageSurface(width, height),
	}
}

// NewTesterWithT creates a tester whose desktop is cleared when t ends.
func NewTesterWithT(t testing.TB, width, height int) *Tester {
	tester := NewTester(width, height)
	t.Cleanup(tester.Desktop.ClearWidgets)
	return tester
}

// Pump clears the surface and runs one frame.
func (t *Tester) Pump() {
	t.Surface.Clear(color.Transparent)
	t.Desktop.Frame(t.Surface)
}

// MoveTo moves the pointer and pumps.
func (t *Tester) MoveTo(x, y int) {
	t.Input.MoveTo(geometry.Pt(x, y))
	t.Pump()
}

// Click moves to (x, y) and presses and releases the left button, pumping
// after each step.
func (t *Tester) Click(x, y int) {
	t.ClickButton(x, y, input.MouseLeft)
}

// ClickButton is Click with an explicit button.
func (t *Tester) ClickButton(x, y int, b input.MouseButton) {
	t.MoveTo(x, y)
	t.Input.Press(b)
	t.Pump()
	t.Input.Release(b)
	t.Pump()
}

// Type presses and releases each key in turn.
func (t *Tester) Type(keys ...input.Key) {
	for _, k := range keys {
		t.Input.KeyDown(k)
		t.Pump()
		t.Input.KeyUp(k)
		t.Pump()
	}
}

// Chord holds keys together for one frame, then releases them.
func (t *Tester) Chord(keys ...input.Key) {
	for _, k := range keys {
		t.Input.KeyDown(k)
	}
	t.Pump()
	for _, k := range keys {
		t.Input.KeyUp(k)
	}
	t.Pump()
}

// PixelAt returns the colour at (x, y) from the last frame.
func (t *Tester) PixelAt(x, y int) color.RGBA {
	return t.Surface.Image().RGBAAt(x, y)
}
