package ui

import (
	"time"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
)

// sized is a leaf with a fixed intrinsic size that counts measure calls.
type sized struct {
	Base
	size     geometry.Point
	measures int
}

func newSized(w, h int) *sized {
	s := &sized{size: geometry.Pt(w, h)}
	s.Init(s)
	return s
}

func (s *sized) InternalMeasure(geometry.Point) geometry.Point {
	s.measures++
	return s.size
}

// tabWidget swallows Tab instead of letting the desktop move focus.
type tabWidget struct {
	Base
	keys []input.Key
}

func newTabWidget() *tabWidget {
	t := &tabWidget{}
	t.Init(t)
	t.SetCanFocus(true)
	return t
}

func (t *tabWidget) AcceptsTab() bool { return true }

func (t *tabWidget) OnKeyDown(k input.Key) {
	t.keys = append(t.keys, k)
	t.Base.OnKeyDown(k)
}

type menuBar struct {
	MultipleItemsContainer
	open bool
	keys []input.Key
}

func newMenuBar() *menuBar {
	m := &menuBar{}
	m.Init(m)
	return m
}

func (m *menuBar) IsOpen() bool { return m.open }

func (m *menuBar) OnKeyDown(k input.Key) {
	m.keys = append(m.keys, k)
}

type fakeInput struct {
	mouse input.MouseInfo
	keys  []input.Key
}

func (f *fakeInput) Mouse() input.MouseInfo { return f.mouse }
func (f *fakeInput) DownKeys() []input.Key { return f.keys }

func (f *fakeInput) moveTo(x, y int) { f.mouse.Position = geometry.Pt(x, y) }
func (f *fakeInput) press(b input.MouseButton) {
	f.mouse.Buttons[b] = true
}
func (f *fakeInput) release(b input.MouseButton) {
	f.mouse.Buttons[b] = false
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestDesktop returns a 200x100 desktop wired to a fake input source
// and clock.
func newTestDesktop() (*Desktop, *fakeInput, *fakeClock) {
	d := NewDesktop(geometry.RectFromXYWH(0, 0, 200, 100))
	in := &fakeInput{}
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	d.Input = in
	d.Clock = clk
	return d, in, clk
}

// frame runs input and layout without rendering.
func frame(d *Desktop) {
	d.UpdateInput()
	d.UpdateLayout()
}
