package uitest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/ui"
)

func TestFakeClockAdvance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()
	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, clk.Now().Sub(start))

	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clk.Set(target)
	assert.True(t, clk.Now().Equal(target))
}

func TestFakeInputSnapshot(t *testing.T) {
	in := &FakeInput{}
	in.MoveTo(geometry.Pt(3, 4))
	in.Press(input.MouseRight)
	in.Scroll(2)
	in.KeyDown(input.KeyA)
	in.KeyDown(input.KeyA)
	in.KeyDown(input.KeyB)

	m := in.Mouse()
	assert.Equal(t, geometry.Pt(3, 4), m.Position)
	assert.True(t, m.IsDown(input.MouseRight))
	assert.Equal(t, 2, m.Wheel)
	assert.Equal(t, []input.Key{input.KeyA, input.KeyB}, in.DownKeys())

	in.KeyUp(input.KeyA)
	assert.Equal(t, []input.Key{input.KeyB}, in.DownKeys())

	in.ReleaseAll()
	assert.Empty(t, in.DownKeys())
	assert.False(t, in.Mouse().IsDown(input.MouseRight))
}

func TestFinders(t *testing.T) {
	tester := NewTesterWithT(t, 100, 100)
	outer := ui.NewMultipleItemsContainer()
	outer.SetID("outer")
	inner := ui.NewWidget()
	inner.SetID("inner")
	outer.AddChild(inner)
	tester.Desktop.AddWidget(outer)
	tester.Desktop.AddWidget(ui.NewWidget())

	assert.Equal(t, 2, Find(tester.Desktop, ByType[*ui.Base]()).Count())
	assert.Same(t, inner, Find(tester.Desktop, ByID("inner")).First())
	assert.Same(t, inner, Find(tester.Desktop, Descendant(ByID("outer"), ByType[*ui.Base]())).First())
	assert.False(t, Find(tester.Desktop, ByID("missing")).Exists())
	assert.Nil(t, Find(tester.Desktop, ByID("missing")).FirstOrNil())
	assert.Panics(t, func() { Find(tester.Desktop, ByID("missing")).First() })
}

func TestTesterClickAndDoubleClick(t *testing.T) {
	tester := NewTesterWithT(t, 100, 100)
	target := ui.NewWidget()
	target.SetWidth(20)
	target.SetHeight(20)
	tester.Desktop.AddWidget(target)
	tester.Pump()

	clicks, doubles := 0, 0
	target.MouseDown.Add(func(input.MouseButton) { clicks++ })
	target.DoubleClick.Add(func(input.MouseButton) { doubles++ })

	tester.Click(5, 5)
	tester.Clock.Advance(50 * time.Millisecond)
	tester.Click(5, 5)
	require.Equal(t, 2, clicks)
	assert.Equal(t, 1, doubles)

	tester.Clock.Advance(time.Second)
	tester.Click(5, 5)
	assert.Equal(t, 1, doubles)
}
