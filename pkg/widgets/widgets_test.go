package widgets_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/uitest"
	"github.com/go-drift/retain/pkg/widgets"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestParseMnemonic(t *testing.T) {
	tests := []struct {
		in    string
		plain string
		index int
		key   input.Key
	}{
		{"_File", "File", 0, input.KeyF},
		{"E_xit", "Exit", 1, input.KeyX},
		{"_1st", "1st", 0, input.Key1},
		{"a__b", "a_b", -1, input.KeyNone},
		{"_日本", "日本", 0, input.KeyNone},
		{"end_", "end_", -1, input.KeyNone},
		{"_A_B", "A_B", 0, input.KeyA},
		{"plain", "plain", -1, input.KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			plain, index, key := widgets.ParseMnemonic(tt.in)
			assert.Equal(t, tt.plain, plain)
			assert.Equal(t, tt.index, index)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLabelMeasuresCells(t *testing.T) {
	tests := []struct {
		text string
		want geometry.Point
	}{
		{"", geometry.Pt(0, 0)},
		{"hello", geometry.Pt(35, 13)},
		{"é", geometry.Pt(7, 13)},
		{"日本", geometry.Pt(28, 13)},
		{"a\nbcd", geometry.Pt(21, 26)},
	}
	for _, tt := range tests {
		l := widgets.NewLabel(nil, tt.text)
		assert.Equal(t, tt.want, l.Measure(geometry.Pt(500, 500)), "%q", tt.text)
	}
}

func TestLabelTextChangeRemeasures(t *testing.T) {
	l := widgets.NewLabel(nil, "ab")
	require.Equal(t, geometry.Pt(14, 13), l.Measure(geometry.Pt(100, 100)))

	l.SetText("abcd")
	assert.Equal(t, geometry.Pt(28, 13), l.Measure(geometry.Pt(100, 100)))
}

func TestLabelDrawsGlyphsAndMnemonic(t *testing.T) {
	tester := uitest.NewTesterWithT(t, 50, 20)
	l := widgets.NewLabel(nil, "X")
	tester.Desktop.AddWidget(l)
	tester.Pump()

	inked := 0
	for y := range 13 {
		for x := range 7 {
			if tester.PixelAt(x, y).A > 0 {
				inked++
			}
		}
	}
	assert.Positive(t, inked)
	assert.Equal(t, color.RGBA{}, tester.PixelAt(20, 5))

	l.SetMnemonic(0)
	l.ShowMnemonic = true
	tester.Pump()
	for x := range 7 {
		assert.Equal(t, white, tester.PixelAt(x, 12), "underline at x=%d", x)
	}
}

func TestButtonClicks(t *testing.T) {
	tester := uitest.NewTesterWithT(t, 100, 100)
	b := widgets.NewButton(nil, "OK")
	clicks := 0
	b.Click.Add(func(*widgets.Button) { clicks++ })
	tester.Desktop.AddWidget(b)
	tester.Pump()
	require.Equal(t, geometry.RectFromXYWH(0, 0, 14, 13), b.Bounds())

	tester.Click(5, 5)
	assert.Equal(t, 1, clicks)
	assert.Same(t, b, tester.Desktop.FocusedWidget())

	tester.Input.Press(input.MouseLeft)
	tester.Pump()
	assert.True(t, b.IsPressed())
	tester.MoveTo(50, 50)
	tester.Input.Release(input.MouseLeft)
	tester.Pump()
	assert.False(t, b.IsPressed())
	assert.Equal(t, 1, clicks, "release outside does not click")

	tester.Type(input.KeyEnter)
	tester.Type(input.KeySpace)
	assert.Equal(t, 3, clicks)

	b.SetEnabled(false)
	tester.Click(5, 5)
	tester.Type(input.KeyEnter)
	assert.Equal(t, 3, clicks)
	assert.False(t, b.Label().Enabled())
}

func TestButtonUsesStylesheet(t *testing.T) {
	width := 40
	ss := style.New()
	ss.Set("button/default", &style.WidgetStyle{
		Width:      &width,
		Padding:    geometry.Uniform(2),
		Background: render.Solid{Color: color.RGBA{G: 255, A: 255}},
	})
	b := widgets.NewButton(ss, "OK")

	assert.Equal(t, geometry.Pt(44, 17), b.Measure(geometry.Pt(100, 100)))
	assert.NotNil(t, b.Background)
	assert.Nil(t, b.Label().Background, "labels use their own kind")
}

func TestPanelStacksChildren(t *testing.T) {
	a := widgets.NewLabel(nil, "a")
	bc := widgets.NewLabel(nil, "bc")
	bc.SetLeft(10)
	p := widgets.NewPanel(nil, a, bc)

	assert.Equal(t, 2, p.ChildCount())
	assert.Equal(t, geometry.Pt(14, 13), p.Measure(geometry.Pt(100, 100)))
}

func newFileMenu(t *testing.T) (*uitest.Tester, *widgets.HorizontalMenu, *[]string) {
	tester := uitest.NewTesterWithT(t, 200, 50)
	m := widgets.NewHorizontalMenu(nil)
	m.AddItem("_File")
	m.AddItem("_Edit")
	m.AddItem("E_xit")
	var activated []string
	m.ItemActivated.Add(func(it *widgets.MenuItem) { activated = append(activated, it.Text()) })
	tester.Desktop.AddWidget(m)
	tester.Input.MoveTo(geometry.Pt(150, 40))
	tester.Pump()
	return tester, m, &activated
}

func TestMenuIsDesktopMenuBar(t *testing.T) {
	tester, m, _ := newFileMenu(t)
	assert.Equal(t, m, tester.Desktop.MenuBar())
	assert.Equal(t, []int{28, 28, 28}, m.ColumnWidths())
	assert.Equal(t, input.KeyX, m.Items()[2].Mnemonic())
}

func TestMenuMnemonicWithAlt(t *testing.T) {
	tester, m, activated := newFileMenu(t)

	tester.Input.KeyDown(input.KeyLeftAlt)
	tester.Pump()
	assert.True(t, m.IsOpen())
	assert.True(t, m.Items()[0].Label().ShowMnemonic)

	tester.Input.KeyDown(input.KeyX)
	tester.Pump()
	tester.Input.ReleaseAll()
	tester.Pump()

	assert.Equal(t, []string{"Exit"}, *activated)
	assert.False(t, m.IsOpen())
	assert.False(t, m.Items()[0].Label().ShowMnemonic)
}

func TestMenuKeyboardNavigation(t *testing.T) {
	tester, m, activated := newFileMenu(t)

	tester.Type(input.KeyLeftAlt)
	require.True(t, m.IsOpen(), "menu stays open after alt is released")
	assert.Equal(t, 0, m.HoverColumnIndex())

	tester.Type(input.KeyLeft)
	assert.Equal(t, 2, m.HoverColumnIndex(), "wraps around")
	tester.Type(input.KeyRight, input.KeyRight)
	assert.Equal(t, 1, m.HoverColumnIndex())

	tester.Type(input.KeyEnter)
	assert.Equal(t, []string{"Edit"}, *activated)
	assert.Equal(t, 1, m.SelectedColumnIndex())

	tester.Type(input.KeyLeftAlt)
	tester.Type(input.KeyEscape)
	assert.False(t, m.IsOpen())
	assert.Equal(t, -1, m.HoverColumnIndex())

	tester.Type(input.KeyF)
	assert.Len(t, *activated, 1, "closed menu without alt ignores mnemonics")
}

func TestMenuClickActivates(t *testing.T) {
	tester, m, activated := newFileMenu(t)
	var itemHits int
	m.Items()[1].Activated.Add(func(*widgets.MenuItem) { itemHits++ })

	tester.Click(40, 5)
	assert.Equal(t, []string{"Edit"}, *activated)
	assert.Equal(t, 1, itemHits)

	tester.Click(150, 5)
	assert.Len(t, *activated, 1)
}
