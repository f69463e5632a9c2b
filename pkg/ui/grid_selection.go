package ui

import (
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
	"github.com/go-drift/retain/pkg/render"
)

// GridSelectionMode selects what a grid highlights under the pointer.
type GridSelectionMode int

const (
	SelectNone GridSelectionMode = iota
	SelectRow
	SelectColumn
	SelectCell
)

func (m GridSelectionMode) String() string {
	switch m {
	case SelectNone:
		return "none"
	case SelectRow:
		return "row"
	case SelectColumn:
		return "column"
	case SelectCell:
		return "cell"
	default:
		return "unknown"
	}
}

// GridSelection holds a grid's hover and selection state. Indices of -1
// mean none.
type GridSelection struct {
	mode GridSelectionMode

	hoverRow, hoverCol       int
	selectedRow, selectedCol int

	// HoverIndexCanBeNull clears hover when the pointer is over no track;
	// otherwise the last hovered track stays highlighted.
	HoverIndexCanBeNull bool
	// CanSelectNothing lets a press on the selected track deselect it.
	CanSelectNothing bool

	SelectionBackground      render.Brush
	SelectionHoverBackground render.Brush

	HoverIndexChanged    Event[*Grid]
	SelectedIndexChanged Event[*Grid]
}

func newGridSelection() GridSelection {
	return GridSelection{hoverRow: -1, hoverCol: -1, selectedRow: -1, selectedCol: -1, HoverIndexCanBeNull: true}
}

// Selection exposes the grid's hover and selection settings and events.
func (g *Grid) Selection() *GridSelection { return &g.selection }

// SelectionMode returns the highlight mode.
func (g *Grid) SelectionMode() GridSelectionMode { return g.selection.mode }

// SetSelectionMode sets the highlight mode and clears hover.
func (g *Grid) SetSelectionMode(m GridSelectionMode) {
	if g.selection.mode == m {
		return
	}
	g.selection.mode = m
	g.SetHoverRowIndex(-1)
	g.SetHoverColumnIndex(-1)
}

// HoverRowIndex returns the hovered row, or -1.
func (g *Grid) HoverRowIndex() int { return g.selection.hoverRow }

// SetHoverRowIndex sets the hovered row. Negative values mean none.
func (g *Grid) SetHoverRowIndex(i int) {
	i = max(i, -1)
	if g.selection.hoverRow == i {
		return
	}
	g.selection.hoverRow = i
	g.selection.HoverIndexChanged.Fire(g)
}

// HoverColumnIndex returns the hovered column, or -1.
func (g *Grid) HoverColumnIndex() int { return g.selection.hoverCol }

// SetHoverColumnIndex sets the hovered column. Negative values mean none.
func (g *Grid) SetHoverColumnIndex(i int) {
	i = max(i, -1)
	if g.selection.hoverCol == i {
		return
	}
	g.selection.hoverCol = i
	g.selection.HoverIndexChanged.Fire(g)
}

// SelectedRowIndex returns the selected row, or -1.
func (g *Grid) SelectedRowIndex() int { return g.selection.selectedRow }

// SetSelectedRowIndex selects a row. Negative values mean none.
func (g *Grid) SetSelectedRowIndex(i int) {
	i = max(i, -1)
	if g.selection.selectedRow == i {
		return
	}
	g.selection.selectedRow = i
	g.selection.SelectedIndexChanged.Fire(g)
}

// SelectedColumnIndex returns the selected column, or -1.
func (g *Grid) SelectedColumnIndex() int { return g.selection.selectedCol }

// SetSelectedColumnIndex selects a column. Negative values mean none.
func (g *Grid) SetSelectedColumnIndex(i int) {
	i = max(i, -1)
	if g.selection.selectedCol == i {
		return
	}
	g.selection.selectedCol = i
	g.selection.SelectedIndexChanged.Fire(g)
}

// OnMouseEntered updates hover after the usual forwarding.
func (g *Grid) OnMouseEntered(p geometry.Point) {
	g.MultipleItemsContainer.OnMouseEntered(p)
	g.updateHover(p)
}

// OnMouseMoved updates hover after the usual forwarding.
func (g *Grid) OnMouseMoved(p geometry.Point) {
	g.MultipleItemsContainer.OnMouseMoved(p)
	g.updateHover(p)
}

// OnMouseLeft clears hover.
func (g *Grid) OnMouseLeft() {
	g.MultipleItemsContainer.OnMouseLeft()
	if g.selection.mode != SelectNone {
		g.SetHoverRowIndex(-1)
		g.SetHoverColumnIndex(-1)
	}
}

// OnMouseDown selects the hovered track. Pressing the selected track again
// deselects it when CanSelectNothing is set.
func (g *Grid) OnMouseDown(button input.MouseButton) {
	g.MultipleItemsContainer.OnMouseDown(button)

	s := &g.selection
	if s.hoverRow >= 0 {
		if s.selectedRow != s.hoverRow {
			g.SetSelectedRowIndex(s.hoverRow)
		} else if s.CanSelectNothing {
			g.SetSelectedRowIndex(-1)
		}
	}
	if s.hoverCol >= 0 {
		if s.selectedCol != s.hoverCol {
			g.SetSelectedColumnIndex(s.hoverCol)
		} else if s.CanSelectNothing {
			g.SetSelectedColumnIndex(-1)
		}
	}
}

// updateHover scans the solved tracks linearly for the one under p.
func (g *Grid) updateHover(p geometry.Point) {
	mode := g.selection.mode
	if mode == SelectNone {
		return
	}
	if mode == SelectColumn || mode == SelectCell {
		if i := findTrack(g.cellLocationsX, g.colWidths, g.columnSpacing, p.X); i >= 0 || g.selection.HoverIndexCanBeNull {
			g.SetHoverColumnIndex(i)
		}
	}
	if mode == SelectRow || mode == SelectCell {
		if i := findTrack(g.cellLocationsY, g.rowHeights, g.rowSpacing, p.Y); i >= 0 || g.selection.HoverIndexCanBeNull {
			g.SetHoverRowIndex(i)
		}
	}
}

// findTrack returns the track whose band contains v. A band reaches half
// the spacing past each edge of its track, so gaps split between neighbours.
func findTrack(locs, sizes []int, spacing, v int) int {
	half := spacing / 2
	for i, loc := range locs {
		if v >= loc-half && v < loc+sizes[i]+spacing-half {
			return i
		}
	}
	return -1
}

func (g *Grid) renderSelection(s render.Surface) {
	sel := &g.selection
	if sel.mode == SelectNone || s == nil {
		return
	}
	hover := sel.hoverRow != sel.selectedRow || sel.hoverCol != sel.selectedCol
	switch sel.mode {
	case SelectRow:
		hover = sel.hoverRow != sel.selectedRow
	case SelectColumn:
		hover = sel.hoverCol != sel.selectedCol
	}
	if hover && sel.SelectionHoverBackground != nil {
		if r, ok := g.selectionRect(sel.hoverCol, sel.hoverRow); ok {
			sel.SelectionHoverBackground.Draw(s, r)
		}
	}
	if sel.SelectionBackground != nil {
		if r, ok := g.selectionRect(sel.selectedCol, sel.selectedRow); ok {
			sel.SelectionBackground.Draw(s, r)
		}
	}
}

// selectionRect grows a track by half the spacing before it. Row mode
// spans the full width and column mode the full height.
func (g *Grid) selectionRect(col, row int) (geometry.Rect, bool) {
	ab := g.actualBounds
	r := ab
	mode := g.selection.mode
	if mode == SelectColumn || mode == SelectCell {
		if col < 0 || col >= len(g.cellLocationsX) {
			return geometry.Rect{}, false
		}
		r.X = g.cellLocationsX[col] - g.columnSpacing/2
		r.Width = g.colWidths[col] + g.columnSpacing/2
	}
	if mode == SelectRow || mode == SelectCell {
		if row < 0 || row >= len(g.cellLocationsY) {
			return geometry.Rect{}, false
		}
		r.Y = g.cellLocationsY[row] - g.rowSpacing/2
		r.Height = g.rowHeights[row] + g.rowSpacing/2
	}
	return r, true
}
