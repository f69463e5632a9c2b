package ui

import (
	"math"
	"slices"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/render"
)

// Grid arranges children in cells of proportionally sized columns and rows.
//
// A child is placed by its GridColumn, GridRow and spans. Cell coordinates
// beyond the declared track count are clamped to that count, which adds one
// implicit track sized by the default Part(1) proportion.
type Grid struct {
	MultipleItemsContainer

	columns trackList
	rows    trackList

	columnSpacing, rowSpacing int

	totalColumnsPart, totalRowsPart       float64
	hasTotalColumnsPart, hasTotalRowsPart bool

	skipEmpty bool

	defaultProportion *Proportion

	visibleWidgets    []Widget
	measureColWidths  []int
	measureRowHeights []int
	colWidths         []int
	rowHeights        []int
	cellLocationsX    []int
	cellLocationsY    []int
	gridLinesX        []int
	gridLinesY        []int
	actualSize        geometry.Point

	// LinesBrush, when set, draws one pixel lines between tracks.
	LinesBrush render.Brush

	selection GridSelection
}

type trackList struct {
	items []*Proportion
	subs  []func()
}

// NewGrid returns an empty grid that collapses spacing around empty tracks.
func NewGrid() *Grid {
	g := &Grid{}
	g.initGrid(g)
	return g
}

// InitGrid prepares a Grid embedded in another widget type. self is the
// outer widget.
func (g *Grid) InitGrid(self Widget) {
	g.initGrid(self)
}

func (g *Grid) initGrid(self Widget) {
	g.Init(self)
	g.skipEmpty = true
	g.defaultProportion = Part(1)
	g.selection = newGridSelection()
}

// AddColumn appends a column proportion.
func (g *Grid) AddColumn(p *Proportion) { g.InsertColumn(len(g.columns.items), p) }

// InsertColumn inserts a column proportion at index i, clamped to range.
func (g *Grid) InsertColumn(i int, p *Proportion) { g.insertTrack(&g.columns, axisColumns, i, p) }

// RemoveColumnAt removes the column proportion at index i.
func (g *Grid) RemoveColumnAt(i int) { g.removeTrack(&g.columns, axisColumns, i) }

// SetColumns replaces all column proportions.
func (g *Grid) SetColumns(ps ...*Proportion) { g.setTracks(&g.columns, axisColumns, ps) }

// Columns returns a copy of the column proportions.
func (g *Grid) Columns() []*Proportion { return slices.Clone(g.columns.items) }

// ColumnCount returns the number of declared columns.
func (g *Grid) ColumnCount() int { return len(g.columns.items) }

// ColumnProportion returns the proportion of column i, or the default
// Part(1) for undeclared columns.
func (g *Grid) ColumnProportion(i int) *Proportion {
	if i < 0 || i >= len(g.columns.items) {
		return g.defaultProportion
	}
	return g.columns.items[i]
}

// AddRow appends a row proportion.
func (g *Grid) AddRow(p *Proportion) { g.InsertRow(len(g.rows.items), p) }

// InsertRow inserts a row proportion at index i, clamped to range.
func (g *Grid) InsertRow(i int, p *Proportion) { g.insertTrack(&g.rows, axisRows, i, p) }

// RemoveRowAt removes the row proportion at index i.
func (g *Grid) RemoveRowAt(i int) { g.removeTrack(&g.rows, axisRows, i) }

// SetRows replaces all row proportions.
func (g *Grid) SetRows(ps ...*Proportion) { g.setTracks(&g.rows, axisRows, ps) }

// Rows returns a copy of the row proportions.
func (g *Grid) Rows() []*Proportion { return slices.Clone(g.rows.items) }

// RowCount returns the number of declared rows.
func (g *Grid) RowCount() int { return len(g.rows.items) }

// RowProportion returns the proportion of row i, or the default Part(1).
func (g *Grid) RowProportion(i int) *Proportion {
	if i < 0 || i >= len(g.rows.items) {
		return g.defaultProportion
	}
	return g.rows.items[i]
}

type axis int

const (
	axisColumns axis = iota
	axisRows
)

func (g *Grid) insertTrack(t *trackList, a axis, i int, p *Proportion) {
	if p == nil {
		return
	}
	i = min(max(i, 0), len(t.items))
	off := p.Changed.Add(func(*Proportion) { g.InvalidateMeasure() })
	t.items = slices.Insert(t.items, i, p)
	t.subs = slices.Insert(t.subs, i, off)
	g.tracksChanged(a)
}

func (g *Grid) removeTrack(t *trackList, a axis, i int) {
	if i < 0 || i >= len(t.items) {
		return
	}
	t.subs[i]()
	t.items = slices.Delete(t.items, i, i+1)
	t.subs = slices.Delete(t.subs, i, i+1)
	g.tracksChanged(a)
}

func (g *Grid) setTracks(t *trackList, a axis, ps []*Proportion) {
	for _, off := range t.subs {
		off()
	}
	t.items, t.subs = nil, nil
	for _, p := range ps {
		if p == nil {
			continue
		}
		t.items = append(t.items, p)
		t.subs = append(t.subs, p.Changed.Add(func(*Proportion) { g.InvalidateMeasure() }))
	}
	g.tracksChanged(a)
}

func (g *Grid) tracksChanged(a axis) {
	if a == axisColumns {
		g.SetHoverColumnIndex(-1)
		g.SetSelectedColumnIndex(-1)
	} else {
		g.SetHoverRowIndex(-1)
		g.SetSelectedRowIndex(-1)
	}
	g.InvalidateMeasure()
}

// ColumnSpacing returns the gap between columns.
func (g *Grid) ColumnSpacing() int { return g.columnSpacing }

// SetColumnSpacing sets the gap between columns. Negative values clamp to zero.
func (g *Grid) SetColumnSpacing(v int) {
	v = max(v, 0)
	if g.columnSpacing == v {
		return
	}
	g.columnSpacing = v
	g.InvalidateMeasure()
}

// RowSpacing returns the gap between rows.
func (g *Grid) RowSpacing() int { return g.rowSpacing }

// SetRowSpacing sets the gap between rows. Negative values clamp to zero.
func (g *Grid) SetRowSpacing(v int) {
	v = max(v, 0)
	if g.rowSpacing == v {
		return
	}
	g.rowSpacing = v
	g.InvalidateMeasure()
}

// SkipEmptyTracks reports whether spacing collapses after zero-sized tracks.
func (g *Grid) SkipEmptyTracks() bool { return g.skipEmpty }

// SetSkipEmptyTracks sets whether spacing collapses after zero-sized tracks.
func (g *Grid) SetSkipEmptyTracks(v bool) {
	if g.skipEmpty == v {
		return
	}
	g.skipEmpty = v
	g.InvalidateMeasure()
}

// TotalColumnsPart returns the override for the sum of column weights.
func (g *Grid) TotalColumnsPart() (float64, bool) {
	return g.totalColumnsPart, g.hasTotalColumnsPart
}

// SetTotalColumnsPart normalizes column weights against v instead of their sum.
func (g *Grid) SetTotalColumnsPart(v float64) {
	g.totalColumnsPart, g.hasTotalColumnsPart = v, true
	g.InvalidateLayout()
}

// ClearTotalColumnsPart removes the column weight override.
func (g *Grid) ClearTotalColumnsPart() {
	g.totalColumnsPart, g.hasTotalColumnsPart = 0, false
	g.InvalidateLayout()
}

// TotalRowsPart returns the override for the sum of row weights.
func (g *Grid) TotalRowsPart() (float64, bool) {
	return g.totalRowsPart, g.hasTotalRowsPart
}

// SetTotalRowsPart normalizes row weights against v instead of their sum.
func (g *Grid) SetTotalRowsPart(v float64) {
	g.totalRowsPart, g.hasTotalRowsPart = v, true
	g.InvalidateLayout()
}

// ClearTotalRowsPart removes the row weight override.
func (g *Grid) ClearTotalRowsPart() {
	g.totalRowsPart, g.hasTotalRowsPart = 0, false
	g.InvalidateLayout()
}

// ColumnWidths returns the solved column widths from the last arrangement.
func (g *Grid) ColumnWidths() []int { return slices.Clone(g.colWidths) }

// RowHeights returns the solved row heights from the last arrangement.
func (g *Grid) RowHeights() []int { return slices.Clone(g.rowHeights) }

// CellLocationsX returns the left edge of every column in desktop space.
func (g *Grid) CellLocationsX() []int { return slices.Clone(g.cellLocationsX) }

// CellLocationsY returns the top edge of every row in desktop space.
func (g *Grid) CellLocationsY() []int { return slices.Clone(g.cellLocationsY) }

// GridLinesX returns the x of each line between columns.
func (g *Grid) GridLinesX() []int { return slices.Clone(g.gridLinesX) }

// GridLinesY returns the y of each line between rows.
func (g *Grid) GridLinesY() []int { return slices.Clone(g.gridLinesY) }

// ColumnWidth returns the solved width of column i, or 0 out of range.
func (g *Grid) ColumnWidth(i int) int { return at(g.colWidths, i) }

// RowHeight returns the solved height of row i, or 0 out of range.
func (g *Grid) RowHeight(i int) int { return at(g.rowHeights, i) }

// CellLocationX returns the left edge of column i, or 0 out of range.
func (g *Grid) CellLocationX(i int) int { return at(g.cellLocationsX, i) }

// CellLocationY returns the top edge of row i, or 0 out of range.
func (g *Grid) CellLocationY(i int) int { return at(g.cellLocationsY, i) }

// ActualSize returns the sum of solved track sizes, without spacing.
func (g *Grid) ActualSize() geometry.Point { return g.actualSize }

// CellRectangle returns the rectangle of a single cell, or an empty
// rectangle for indices outside the solved tracks.
func (g *Grid) CellRectangle(col, row int) geometry.Rect {
	if col < 0 || col >= len(g.cellLocationsX) || row < 0 || row >= len(g.cellLocationsY) {
		return geometry.Rect{}
	}
	return geometry.RectFromXYWH(g.cellLocationsX[col], g.cellLocationsY[row], g.colWidths[col], g.rowHeights[row])
}

func (g *Grid) gridPosition(w Widget) (col, row int) {
	b := w.Core()
	return min(b.gridColumn, len(g.columns.items)), min(b.gridRow, len(g.rows.items))
}

// spacingAfter is the gap following track i of n.
func (g *Grid) spacingAfter(i, n, size, spacing int) int {
	if i >= n-1 {
		return 0
	}
	if g.skipEmpty && size == 0 {
		return 0
	}
	return spacing
}

// InternalMeasure sizes the grid from fixed tracks and single-span children.
func (g *Grid) InternalMeasure(available geometry.Point) geometry.Point {
	return g.layoutProcessFixed(available)
}

// layoutProcessFixed fills the measure track arrays: Pixels tracks take
// their value and every other track grows to its largest single-span child.
func (g *Grid) layoutProcessFixed(available geometry.Point) geometry.Point {
	g.visibleWidgets = g.visibleWidgets[:0]
	cols, rows := 0, 0
	for _, child := range g.Children() {
		b := child.Core()
		if !b.visible {
			continue
		}
		g.visibleWidgets = append(g.visibleWidgets, child)
		col, row := g.gridPosition(child)
		cols = max(cols, col+b.gridColumnSpan)
		rows = max(rows, row+b.gridRowSpan)
	}
	cols = max(cols, len(g.columns.items))
	rows = max(rows, len(g.rows.items))

	g.measureColWidths = resetInts(g.measureColWidths, cols)
	g.measureRowHeights = resetInts(g.measureRowHeights, rows)

	if cols > 0 {
		available.X = max(available.X-(cols-1)*g.columnSpacing, 0)
	}
	if rows > 0 {
		available.Y = max(available.Y-(rows-1)*g.rowSpacing, 0)
	}

	for i := range cols {
		if p := g.ColumnProportion(i); p.typ == ProportionPixels {
			g.measureColWidths[i] = max(int(p.value), 0)
		}
	}
	for i := range rows {
		if p := g.RowProportion(i); p.typ == ProportionPixels {
			g.measureRowHeights[i] = max(int(p.value), 0)
		}
	}

	for _, child := range g.visibleWidgets {
		b := child.Core()
		col, row := g.gridPosition(child)
		colFixed := g.ColumnProportion(col).typ == ProportionPixels
		rowFixed := g.RowProportion(row).typ == ProportionPixels
		if colFixed && rowFixed {
			continue
		}

		m := b.Measure(available)
		if b.gridColumnSpan == 1 && !colFixed {
			g.measureColWidths[col] = max(g.measureColWidths[col], m.X)
		}
		if b.gridRowSpan == 1 && !rowFixed {
			g.measureRowHeights[row] = max(g.measureRowHeights[row], m.Y)
		}
	}

	var result geometry.Point
	for i, w := range g.measureColWidths {
		result.X += w + g.spacingAfter(i, cols, w, g.columnSpacing)
	}
	for i, h := range g.measureRowHeights {
		result.Y += h + g.spacingAfter(i, rows, h, g.rowSpacing)
	}
	return result
}

// Arrange solves the track sizes for ActualBounds and lays out children.
func (g *Grid) Arrange() {
	bounds := g.actualBounds
	g.layoutProcessFixed(bounds.Size())

	g.colWidths = append(g.colWidths[:0], g.measureColWidths...)
	g.rowHeights = append(g.rowHeights[:0], g.measureRowHeights...)

	colPart, hasColPart := g.TotalColumnsPart()
	distribute(g.colWidths, bounds.Width, g.columnSpacing, g.ColumnProportion, colPart, hasColPart)
	rowPart, hasRowPart := g.TotalRowsPart()
	distribute(g.rowHeights, bounds.Height, g.rowSpacing, g.RowProportion, rowPart, hasRowPart)

	g.cellLocationsX, g.gridLinesX, g.actualSize.X = g.locate(g.cellLocationsX, g.gridLinesX, g.colWidths, bounds.X, g.columnSpacing)
	g.cellLocationsY, g.gridLinesY, g.actualSize.Y = g.locate(g.cellLocationsY, g.gridLinesY, g.rowHeights, bounds.Y, g.rowSpacing)

	for _, child := range g.visibleWidgets {
		child.Core().Layout(g.cellBounds(child))
	}

	if g.mouseOver && g.desktop != nil {
		g.updateHover(g.desktop.MousePosition())
	}
}

// distribute resolves Part and Fill tracks in sizes. Auto and Pixels tracks
// keep their measured size and are subtracted from the available length
// first. Part tracks split the remainder by weight, where the weight total
// also counts Fill values unless overridden. The first Fill track takes
// what is left. Negative remainders resolve to zero.
func distribute(sizes []int, length, spacing int, prop func(int) *Proportion, override float64, hasOverride bool) {
	if len(sizes) == 0 {
		return
	}
	available := float64(length - (len(sizes)-1)*spacing)

	totalPart := 0.0
	for i, size := range sizes {
		switch p := prop(i); p.typ {
		case ProportionAuto, ProportionPixels:
			available -= float64(size)
		default:
			totalPart += p.value
		}
	}
	if hasOverride {
		totalPart = override
	}
	available = math.Max(available, 0)

	if math.Abs(totalPart) > proportionEpsilon {
		took := 0
		for i := range sizes {
			if p := prop(i); p.typ == ProportionPart {
				sizes[i] = max(int(p.value*available/totalPart), 0)
				took += sizes[i]
			}
		}
		available = math.Max(available-float64(took), 0)
	}

	for i := range sizes {
		if prop(i).typ == ProportionFill {
			sizes[i] = int(available)
			break
		}
	}
}

// locate turns track sizes into cell origins and line positions starting
// at start. It returns the total of the sizes.
func (g *Grid) locate(locs, lines, sizes []int, start, spacing int) ([]int, []int, int) {
	locs, lines = locs[:0], lines[:0]
	p, total := start, 0
	for i, size := range sizes {
		locs = append(locs, p)
		p += size
		if i < len(sizes)-1 {
			lines = append(lines, p+spacing/2)
		}
		p += g.spacingAfter(i, len(sizes), size, spacing)
		total += size
	}
	return locs, lines, total
}

// cellBounds spans the child's cells including the spacing inside the span.
func (g *Grid) cellBounds(child Widget) geometry.Rect {
	b := child.Core()
	col, row := g.gridPosition(child)
	lastCol := min(col+b.gridColumnSpan, len(g.colWidths))
	lastRow := min(row+b.gridRowSpan, len(g.rowHeights))
	if col >= lastCol || row >= lastRow {
		return geometry.Rect{}
	}

	r := geometry.RectFromXYWH(g.cellLocationsX[col], g.cellLocationsY[row], 0, 0)
	for i := col; i < lastCol; i++ {
		r.Width += g.colWidths[i]
		if i < lastCol-1 {
			r.Width += g.spacingAfter(i, len(g.colWidths), g.colWidths[i], g.columnSpacing)
		}
	}
	for i := row; i < lastRow; i++ {
		r.Height += g.rowHeights[i]
		if i < lastRow-1 {
			r.Height += g.spacingAfter(i, len(g.rowHeights), g.rowHeights[i], g.rowSpacing)
		}
	}
	return r
}

// Translate also moves the solved cell and line positions.
func (g *Grid) Translate(delta geometry.Point) {
	g.MultipleItemsContainer.Translate(delta)
	shift(g.cellLocationsX, delta.X)
	shift(g.gridLinesX, delta.X)
	shift(g.cellLocationsY, delta.Y)
	shift(g.gridLinesY, delta.Y)
}

// InternalRender draws the selection, the children, then the grid lines.
func (g *Grid) InternalRender(ctx *RenderContext) {
	g.renderSelection(ctx.Surface)
	g.MultipleItemsContainer.InternalRender(ctx)

	if g.LinesBrush == nil {
		return
	}
	ab := g.actualBounds
	for _, x := range g.gridLinesX {
		g.LinesBrush.Draw(ctx.Surface, geometry.RectFromXYWH(x, ab.Y, 1, ab.Height))
	}
	for _, y := range g.gridLinesY {
		g.LinesBrush.Draw(ctx.Surface, geometry.RectFromXYWH(ab.X, y, ab.Width, 1))
	}
}

func resetInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func at(s []int, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func shift(s []int, d int) {
	for i := range s {
		s[i] += d
	}
}
