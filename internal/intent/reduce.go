// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package intent

import (
	"time"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

// Context carries host-owned state the reducer needs but does not own
// itself: EscapePressed's behavior depends on whether an edit is
// active, but edit-mode state belongs to the edit-mode manager, not the
// reducer -- the host threads the relevant bit through here each call
// so the reducer stays pure and total.
type Context struct {
	IsEditing bool
}

// Handler is the sole mutator of SelectionState. It is stateless
// across calls except for the SelectionState it is handed and returns;
// Cells/MaxRow/MaxCol/MaxRanges/SelectAllDwell are fixed collaborators
// supplied at construction.
type Handler struct {
	Cells          cellmodel.CellDataSource
	MaxRow, MaxCol int
	MaxRanges      int
	SelectAllDwell time.Duration
}

// NewHandler returns a Handler wired to its collaborators.
func NewHandler(cells cellmodel.CellDataSource, maxRow, maxCol, maxRanges int, selectAllDwell time.Duration) *Handler {
	return &Handler{Cells: cells, MaxRow: maxRow, MaxCol: maxCol, MaxRanges: maxRanges, SelectAllDwell: selectAllDwell}
}

func (h *Handler) clampRow(r int) int { return clampInt(r, 0, h.MaxRow) }
func (h *Handler) clampCol(c int) int { return clampInt(c, 0, h.MaxCol) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reduce is the total reducer: reduce(state, intent) -> (state', effects).
// It never fails; malformed intents degrade to sensible defaults.
func (h *Handler) Reduce(state SelectionState, in Intent, ctx Context) Result {
	switch i := in.(type) {
	case SetActiveCell:
		return h.setActiveCell(state, i.Row, i.Col)
	case ExtendSelection:
		return h.extendTo(state, i.Row, i.Col)
	case AddRange:
		return h.addRange(state, i.Row, i.Col)
	case BeginDragSelection:
		return h.beginDrag(state, i.Row, i.Col)
	case UpdateDragSelection:
		return h.updateDrag(state, i.Row, i.Col)
	case EndDragSelection:
		return h.endDrag(state)
	case BeginFillDrag:
		return h.beginFillDrag(state)
	case UpdateFillDrag:
		return h.updateFillDrag(state, i.Row, i.Col)
	case EndFillDrag:
		return h.endFillDrag(state)
	case SelectRow:
		return h.selectRow(state, i.Row, i.Extend, i.Additive)
	case SelectColumn:
		return h.selectColumn(state, i.Col, i.Extend, i.Additive)
	case SelectAll:
		return h.selectAll(state, i.AtUnixNano)
	case SelectAllCells:
		return h.selectEntireGrid(state)
	case BeginEdit:
		cell := state.ActiveCell
		return Result{State: state, Effects: Effects{BeginEditCell: &cell}}
	case ShowContextMenu:
		c := cellmodel.Coord{Row: i.Row, Col: i.Col}
		return Result{State: state, Effects: Effects{ShowContextMenu: &c}}
	case InsertRows:
		return Result{State: state, Effects: Effects{InsertRows: &RowsEffect{Row: h.resolveRowSentinel(state, i.Row), Count: maxInt(i.Count, 1)}}}
	case DeleteRows:
		return Result{State: state, Effects: Effects{DeleteRows: &DeleteRangeEffect{Start: i.StartRow, End: i.EndRow}}}
	case InsertColumns:
		return Result{State: state, Effects: Effects{InsertColumns: &ColsEffect{Col: h.resolveColSentinel(state, i.Col), Count: maxInt(i.Count, 1)}}}
	case DeleteColumns:
		return Result{State: state, Effects: Effects{DeleteColumns: &DeleteRangeEffect{Start: i.StartCol, End: i.EndCol}}}
	case MergeCells:
		return Result{State: state, Effects: Effects{MergeCells: true}}
	case UnmergeCells:
		return Result{State: state, Effects: Effects{UnmergeCells: true}}
	case ShowFormatDialog:
		return Result{State: state, Effects: Effects{ShowFormatDialog: true}}
	case OpenFindReplace:
		m := i.Mode
		return Result{State: state, Effects: Effects{OpenFindReplace: &m}}
	case OpenSortDialog:
		return Result{State: state, Effects: Effects{OpenSortDialog: true}}
	case OpenFilterDropdown:
		return Result{State: state, Effects: Effects{OpenFilterDropdown: &i}}
	case OpenDataValidation:
		return Result{State: state, Effects: Effects{OpenDataValidation: true}}

	case NavigateCell:
		return h.navigateCell(state, i.Direction, i.Jump, i.Extend)
	case NavigatePage:
		return h.navigatePage(state, i.Direction, i.Extend, i.PageSize)
	case NavigateHomeEnd:
		return h.navigateHomeEnd(state, i.Target, i.DocumentLevel, i.Extend)
	case TabEnterNavigate:
		return h.tabEnterNavigate(state, i.Key, i.Reverse)
	case StartEdit:
		cell := state.ActiveCell
		return Result{State: state, Effects: Effects{BeginEditCell: &cell, BeginEditSeed: i.Seed, BeginEditHasSeed: i.HasSeed}}
	case ConfirmEdit:
		return Result{State: state, Effects: Effects{ConfirmEdit: true}}
	case CancelEdit:
		return Result{State: state, Effects: Effects{CancelEdit: true}}
	case EscapePressed:
		return h.escapePressed(state, ctx)
	case DeleteContents:
		return Result{State: state, Effects: Effects{DeleteContents: true}}
	case ClipboardAction:
		op := i.Action
		return Result{State: state, Effects: Effects{Clipboard: &op}}
	case ApplyFormat:
		f := i.Format
		return Result{State: state, Effects: Effects{ApplyFormat: &f}}
	case UndoRedo:
		op := i.Op
		return Result{State: state, Effects: Effects{UndoRedo: &op}}
	}
	// Unknown/malformed intent: no-op, per the reducer's totality contract.
	return Result{State: state}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resolveRowSentinel turns InsertRows.Row's sentinel values into a literal
// row index against the current active cell.
func (h *Handler) resolveRowSentinel(state SelectionState, row int) int {
	switch row {
	case SentinelAbove:
		return state.ActiveCell.Row
	case SentinelBelow:
		return state.ActiveCell.Row + 1
	default:
		return row
	}
}

func (h *Handler) resolveColSentinel(state SelectionState, col int) int {
	switch col {
	case SentinelAbove:
		return state.ActiveCell.Col
	case SentinelBelow:
		return state.ActiveCell.Col + 1
	default:
		return col
	}
}

func (h *Handler) setActiveCell(state SelectionState, row, col int) Result {
	state.ActiveCell = cellmodel.Coord{Row: h.clampRow(row), Col: h.clampCol(col)}
	state.Ranges = nil
	state.fill = fillDragState{}
	return Result{State: state}
}

// extendTo implements "anchor stays fixed on extend": the
// last range's End moves to (row, col); if no range exists yet, one is
// created from activeCell.
func (h *Handler) extendTo(state SelectionState, row, col int) Result {
	row, col = h.clampRow(row), h.clampCol(col)
	if r := state.lastRange(); r != nil {
		r.EndRow, r.EndCol = row, col
	} else {
		state.Ranges = append(state.Ranges, SelectionRange{
			StartRow: state.ActiveCell.Row, StartCol: state.ActiveCell.Col,
			EndRow: row, EndCol: col,
		})
	}
	return Result{State: state}
}

// appendRange appends r to state.Ranges, evicting the oldest range first
// if already at MaxRanges so the bound holds after every range-appending
// path, not just addRange's original call site.
func (h *Handler) appendRange(state SelectionState, r SelectionRange) SelectionState {
	if h.MaxRanges > 0 && len(state.Ranges) >= h.MaxRanges {
		state.Ranges = append([]SelectionRange{}, state.Ranges[1:]...)
	}
	state.Ranges = append(state.Ranges, r)
	return state
}

// addRange appends a new degenerate range at (row, col), evicting the
// oldest range first if already at MaxRanges.
func (h *Handler) addRange(state SelectionState, row, col int) Result {
	row, col = h.clampRow(row), h.clampCol(col)
	state = h.appendRange(state, SelectionRange{StartRow: row, StartCol: col, EndRow: row, EndCol: col})
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	return Result{State: state}
}

func (h *Handler) beginDrag(state SelectionState, row, col int) Result {
	row, col = h.clampRow(row), h.clampCol(col)
	state.drag = dragState{Active: true, StartRow: row, StartCol: col, PreDragSnap: state}
	state = h.appendRange(state, SelectionRange{StartRow: row, StartCol: col, EndRow: row, EndCol: col})
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	return Result{State: state}
}

func (h *Handler) updateDrag(state SelectionState, row, col int) Result {
	if !state.drag.Active {
		return Result{State: state}
	}
	row, col = h.clampRow(row), h.clampCol(col)
	if r := state.lastRange(); r != nil {
		r.EndRow, r.EndCol = row, col
	}
	return Result{State: state}
}

func (h *Handler) endDrag(state SelectionState) Result {
	state.drag.Active = false
	return Result{State: state}
}

// beginFillDrag freezes the current selection's normalized extent as the
// fill source.
func (h *Handler) beginFillDrag(state SelectionState) Result {
	var src cellmodel.Range
	if r := state.lastRange(); r != nil {
		src = r.Normalized()
	} else {
		src = cellmodel.Range{StartRow: state.ActiveCell.Row, StartCol: state.ActiveCell.Col, EndRow: state.ActiveCell.Row, EndCol: state.ActiveCell.Col}
	}
	state.fill = fillDragState{Active: true, Source: src, Preview: src, PreDragSnap: state}
	return Result{State: state}
}

// updateFillDrag implements the axis-lock contract: the
// axis with the greater deviation from the source extent wins and
// extends; the other axis stays frozen at the source's extent.
func (h *Handler) updateFillDrag(state SelectionState, row, col int) Result {
	if !state.fill.Active {
		return Result{State: state}
	}
	row, col = h.clampRow(row), h.clampCol(col)
	src := state.fill.Source

	rowDev := devOf(src.StartRow, src.EndRow, row)
	colDev := devOf(src.StartCol, src.EndCol, col)

	preview := src
	if colDev > rowDev {
		preview.StartCol = minInt(src.StartCol, col)
		preview.EndCol = maxInt(src.EndCol, col)
	} else {
		preview.StartRow = minInt(src.StartRow, row)
		preview.EndRow = maxInt(src.EndRow, row)
	}
	state.fill.Preview = preview
	return Result{State: state}
}

func devOf(lo, hi, target int) int {
	return maxInt(maxInt(lo-target, target-hi), 0)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// endFillDrag emits the fill effect unless the preview never grew past
// the source, in which case it's a no-op and the pre-drag selection is
// restored.
func (h *Handler) endFillDrag(state SelectionState) Result {
	if !state.fill.Active {
		return Result{State: state}
	}
	src, preview := state.fill.Source, state.fill.Preview
	preDrag := state.fill.PreDragSnap
	state.fill = fillDragState{}

	if preview == src {
		return Result{State: preDrag}
	}

	state.Ranges = []SelectionRange{{StartRow: preview.StartRow, StartCol: preview.StartCol, EndRow: preview.EndRow, EndCol: preview.EndCol}}
	state.ActiveCell = cellmodel.Coord{Row: preview.StartRow, Col: preview.StartCol}
	return Result{State: state, Effects: Effects{Fill: &FillEffect{From: src, To: preview}}}
}

func (h *Handler) selectRow(state SelectionState, row int, extend, additive bool) Result {
	row = h.clampRow(row)
	newRange := SelectionRange{StartRow: row, StartCol: 0, EndRow: row, EndCol: h.MaxCol}
	switch {
	case additive:
		state = h.appendRange(state, newRange)
	case extend:
		if r := state.lastRange(); r != nil {
			r.EndRow, r.EndCol = row, h.MaxCol
		} else {
			state.Ranges = []SelectionRange{newRange}
		}
	default:
		state.Ranges = []SelectionRange{newRange}
	}
	state.ActiveCell = cellmodel.Coord{Row: row, Col: state.ActiveCell.Col}
	return Result{State: state}
}

func (h *Handler) selectColumn(state SelectionState, col int, extend, additive bool) Result {
	col = h.clampCol(col)
	newRange := SelectionRange{StartRow: 0, StartCol: col, EndRow: h.MaxRow, EndCol: col}
	switch {
	case additive:
		state = h.appendRange(state, newRange)
	case extend:
		if r := state.lastRange(); r != nil {
			r.EndRow, r.EndCol = h.MaxRow, col
		} else {
			state.Ranges = []SelectionRange{newRange}
		}
	default:
		state.Ranges = []SelectionRange{newRange}
	}
	state.ActiveCell = cellmodel.Coord{Row: state.ActiveCell.Row, Col: col}
	return Result{State: state}
}

// selectAll implements the 3-press dwell cycle: region,
// then used range, then entire grid. The counter resets once the dwell
// window elapses.
func (h *Handler) selectAll(state SelectionState, atNanos int64) Result {
	if state.selectAll.Stage == 0 || atNanos-state.selectAll.LastAtNanos > h.SelectAllDwell.Nanoseconds() {
		state.selectAll.Stage = 1
	} else if state.selectAll.Stage < 3 {
		state.selectAll.Stage++
	}
	state.selectAll.LastAtNanos = atNanos

	var target cellmodel.Range
	switch state.selectAll.Stage {
	case 1:
		target = h.regionAround(state.ActiveCell)
	case 2:
		if r, ok := h.Cells.GetUsedRange(); ok {
			target = r
		} else {
			target = h.regionAround(state.ActiveCell)
		}
	default:
		target = cellmodel.Range{StartRow: 0, StartCol: 0, EndRow: h.MaxRow, EndCol: h.MaxCol}
	}
	state.Ranges = []SelectionRange{{StartRow: target.StartRow, StartCol: target.StartCol, EndRow: target.EndRow, EndCol: target.EndCol}}
	return Result{State: state}
}

func (h *Handler) selectEntireGrid(state SelectionState) Result {
	state.Ranges = []SelectionRange{{StartRow: 0, StartCol: 0, EndRow: h.MaxRow, EndCol: h.MaxCol}}
	return Result{State: state}
}

// regionAround finds the contiguous non-empty block surrounding c, or a
// single-cell range if c itself is empty.
func (h *Handler) regionAround(c cellmodel.Coord) cellmodel.Range {
	if !h.Cells.HasContent(c.Row, c.Col) {
		return cellmodel.Range{StartRow: c.Row, StartCol: c.Col, EndRow: c.Row, EndCol: c.Col}
	}
	top, bottom := c.Row, c.Row
	for top > 0 && h.Cells.HasContent(top-1, c.Col) {
		top--
	}
	for bottom < h.MaxRow && h.Cells.HasContent(bottom+1, c.Col) {
		bottom++
	}
	left, right := c.Col, c.Col
	for left > 0 && h.Cells.HasContent(c.Row, left-1) {
		left--
	}
	for right < h.MaxCol && h.Cells.HasContent(c.Row, right+1) {
		right++
	}
	// Expand rows/cols outward while any cell in the expanded band has
	// content, approximating a contiguous non-empty block rather than a
	// single cross through the active cell.
	grew := true
	for grew {
		grew = false
		if top > 0 && rowHasContentInRange(h.Cells, top-1, left, right) {
			top--
			grew = true
		}
		if bottom < h.MaxRow && rowHasContentInRange(h.Cells, bottom+1, left, right) {
			bottom++
			grew = true
		}
		if left > 0 && colHasContentInRange(h.Cells, left-1, top, bottom) {
			left--
			grew = true
		}
		if right < h.MaxCol && colHasContentInRange(h.Cells, right+1, top, bottom) {
			right++
			grew = true
		}
	}
	return cellmodel.Range{StartRow: top, StartCol: left, EndRow: bottom, EndCol: right}
}

func rowHasContentInRange(cells cellmodel.CellDataSource, row, colStart, colEnd int) bool {
	for c := colStart; c <= colEnd; c++ {
		if cells.HasContent(row, c) {
			return true
		}
	}
	return false
}

func colHasContentInRange(cells cellmodel.CellDataSource, col, rowStart, rowEnd int) bool {
	for r := rowStart; r <= rowEnd; r++ {
		if cells.HasContent(r, col) {
			return true
		}
	}
	return false
}

func (h *Handler) escapePressed(state SelectionState, ctx Context) Result {
	if ctx.IsEditing {
		return Result{State: state, Effects: Effects{CancelEdit: true}}
	}
	if state.drag.Active {
		return Result{State: state.drag.PreDragSnap}
	}
	if state.fill.Active {
		return Result{State: state.fill.PreDragSnap}
	}
	if len(state.Ranges) == 0 {
		return Result{State: state, Effects: Effects{CancelEdit: true}}
	}
	state.Ranges = nil
	state.drag = dragState{}
	state.fill = fillDragState{}
	return Result{State: state}
}
