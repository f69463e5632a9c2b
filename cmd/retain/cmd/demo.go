package cmd

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/retain/pkg/config"
	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
	"github.com/go-drift/retain/pkg/uitest"
	"github.com/go-drift/retain/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Render a sample desktop to PNG",
		Long: `Build a sample desktop (menu bar, buttons and labels in a grid),
optionally replay clicks against it, and write the final frame as PNG.

The desktop size, double-click interval and stylesheet come from retain.yaml
in the project root when present. Without a configured stylesheet a built-in
theme is used.

Flags:
  -o, --output FILE   PNG file to write (default: demo.png)
  --columns LIST      Column proportions, e.g. "Auto,*,2*" (default)
  --rows LIST         Row proportions, e.g. "Auto,*,Auto" (default)
  --size WxH          Override the desktop size
  --click X,Y         Click at X,Y before rendering; may be repeated
  --dir DIR           Project directory (default: current directory)

Proportions are "Auto", "Fill", "<n>px", "*" or "<w>*".`,
		Usage: "retain demo [-o FILE] [--columns LIST] [--rows LIST] [--size WxH] [--click X,Y]...",
		Run:   runDemo,
	})
}

const builtinTheme = `
version: "1.0.0"
styles:
  default:
    background: "#1e1e1e"
  label/default:
    padding: {left: 4, top: 2, right: 4, bottom: 2}
  button/default:
    padding: {left: 6, top: 4, right: 6, bottom: 4}
    background: "#3c3c3c"
    over_background: "#505050"
    disabled_background: "#2a2a2a"
    focused_border: outline:cornflowerblue
  menu/default:
    background: "#2d2d2d"
  menu/hover:
    background: "#3f3f46"
  menu/selected:
    background: "#094771"
`

type demoOptions struct {
	output  string
	columns string
	rows    string
	dir     string
	width   int
	height  int
	clicks  []geometry.Point
}

func parseDemoArgs(args []string) (demoOptions, error) {
	opts := demoOptions{
		output:  "demo.png",
		columns: "Auto,*,2*",
		rows:    "Auto,*,Auto",
		dir:     ".",
	}
	for i := 0; i < len(args); i++ {
		flag := args[i]
		switch flag {
		case "-o", "--output", "--columns", "--rows", "--size", "--click", "--dir":
		default:
			return opts, fmt.Errorf("unknown flag %q", flag)
		}
		if i+1 >= len(args) {
			return opts, fmt.Errorf("%s requires a value", flag)
		}
		i++
		v := args[i]

		switch flag {
		case "-o", "--output":
			opts.output = v
		case "--columns":
			opts.columns = v
		case "--rows":
			opts.rows = v
		case "--dir":
			opts.dir = v
		case "--size":
			p, err := parseSize(v)
			if err != nil {
				return opts, err
			}
			opts.width, opts.height = p.X, p.Y
		case "--click":
			p, err := parsePoint(v)
			if err != nil {
				return opts, err
			}
			opts.clicks = append(opts.clicks, p)
		}
	}
	return opts, nil
}

func parseSize(s string) (geometry.Point, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if !ok || errW != nil || errH != nil || w <= 0 || h <= 0 {
		return geometry.Point{}, fmt.Errorf("invalid size %q", s)
	}
	return geometry.Pt(w, h), nil
}

func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if !ok || errX != nil || errY != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q", s)
	}
	return geometry.Pt(x, y), nil
}

func parseProportions(list string) ([]*ui.Proportion, error) {
	var ps []*ui.Proportion
	for _, f := range strings.Split(list, ",") {
		p, err := ui.ParseProportion(f)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func runDemo(args []string) (err error) {
	// Widget setters report misuse by panicking with a config error.
	defer errors.RecoverWithCallback("cmd.demo", func(r any) {
		err = fmt.Errorf("demo failed: %v", r)
	})

	opts, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts.dir)
	if err != nil {
		return report("cmd.demo", errors.KindConfig, err)
	}
	if opts.width > 0 {
		cfg.Width, cfg.Height = opts.width, opts.height
	}
	ss, err := demoStylesheet(cfg)
	if err != nil {
		return report("cmd.demo", errors.KindStyle, err)
	}

	d := cfg.NewDesktop()
	in := &uitest.FakeInput{}
	d.Input = in

	demo, err := buildDemo(ss, opts)
	if err != nil {
		return err
	}
	d.AddWidget(demo.grid)

	surface := render.NewImageSurface(cfg.Width, cfg.Height)
	frame := func() {
		surface.Clear(color.Black)
		d.Frame(surface)
	}
	frame()
	for _, p := range opts.clicks {
		in.MoveTo(p)
		frame()
		in.Press(input.MouseLeft)
		frame()
		in.Release(input.MouseLeft)
		frame()
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %dx%d desktop, %d widgets\n", cfg.AppName, cfg.Width, cfg.Height, d.CalculateTotalWidgets(true))
	fmt.Fprintf(stdout, "columns: widths %v at %v\n", demo.grid.ColumnWidths(), demo.grid.CellLocationsX())
	fmt.Fprintf(stdout, "rows:    heights %v at %v\n", demo.grid.RowHeights(), demo.grid.CellLocationsY())
	fmt.Fprintf(stdout, "status:  %s\n", demo.status.Text())
	fmt.Fprintf(stdout, "wrote %s\n", opts.output)
	return nil
}

func resolveConfig(dir string) (*config.Resolved, error) {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		root = dir
	}
	return config.Resolve(root)
}

func demoStylesheet(cfg *config.Resolved) (*style.Stylesheet, error) {
	if cfg.StylePath != "" {
		return cfg.LoadStylesheet()
	}
	return style.Parse([]byte(builtinTheme), style.FormatYAML)
}

type demoTree struct {
	grid   *ui.Grid
	menu   *widgets.HorizontalMenu
	status *widgets.Label
}

// buildDemo lays out a menu bar over a row of buttons and labels, with a
// status line at the bottom that reports activity.
func buildDemo(ss *style.Stylesheet, opts demoOptions) (*demoTree, error) {
	columns, err := parseProportions(opts.columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	rows, err := parseProportions(opts.rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	grid := ui.NewGrid()
	grid.SetColumns(columns...)
	grid.SetRows(rows...)
	grid.SetColumnSpacing(4)
	grid.SetRowSpacing(4)
	grid.SetHorizontalAlignment(ui.HorizontalStretch)
	grid.SetVerticalAlignment(ui.VerticalStretch)
	grid.LinesBrush = render.Solid{Color: color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}}

	status := widgets.NewLabel(ss, "Ready")
	status.SetGridRow(2)
	status.SetGridColumnSpan(len(columns))

	menu := widgets.NewHorizontalMenu(ss)
	for _, text := range []string{"_File", "_Edit", "_View", "_Help"} {
		menu.AddItem(text)
	}
	menu.SetGridColumnSpan(len(columns))
	menu.SetHorizontalAlignment(ui.HorizontalStretch)
	menu.ItemActivated.Add(func(it *widgets.MenuItem) {
		status.SetText("Menu: " + it.Text())
	})

	clicks := 0
	ok := widgets.NewButton(ss, "OK")
	ok.SetID("ok")
	ok.SetGridRow(1)
	ok.SetVerticalAlignment(ui.VerticalTop)
	ok.Click.Add(func(*widgets.Button) {
		clicks++
		status.SetText(fmt.Sprintf("OK clicked %d time(s)", clicks))
	})

	cancel := widgets.NewButton(ss, "Cancel")
	cancel.SetEnabled(false)
	tools := widgets.NewPanel(ss, cancel)
	tools.SetGridColumn(1)
	tools.SetGridRow(1)
	tools.SetHorizontalAlignment(ui.HorizontalCenter)
	tools.SetVerticalAlignment(ui.VerticalCenter)

	info := widgets.NewLabel(ss, "Proportional grid\ncolumns "+opts.columns+"\nrows "+opts.rows)
	info.SetGridColumn(2)
	info.SetGridRow(1)

	for _, w := range []ui.Widget{menu, ok, tools, info, status} {
		grid.AddChild(w)
	}
	return &demoTree{grid: grid, menu: menu, status: status}, nil
}
