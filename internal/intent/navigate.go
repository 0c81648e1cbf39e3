// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package intent

import (
	"sort"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

func deltaFor(dir Direction) (dr, dc int) {
	switch dir {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default: // DirRight
		return 0, 1
	}
}

// navigateCell implements NavigateCell: plain movement by
// one cell, Ctrl-jump to the edge of a contiguous data run, and the
// extend/anchor-fixed contract.
func (h *Handler) navigateCell(state SelectionState, dir Direction, jump, extend bool) Result {
	row, col := state.currentPosition()
	if jump {
		row, col = h.jump(row, col, dir)
	} else {
		dr, dc := deltaFor(dir)
		row, col = row+dr, col+dc
	}
	row, col = h.clampRow(row), h.clampCol(col)

	if extend {
		return h.extendStep(state, row, col)
	}
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	state.Ranges = nil
	return Result{State: state}
}

// extendStep moves the last range's End to (row, col) without touching
// activeCell, creating a range from activeCell if none exists yet.
func (h *Handler) extendStep(state SelectionState, row, col int) Result {
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

// jump implements the Ctrl+Arrow jump-to-edge contract using the sorted
// row/column indexes CellDataSource already exposes.
func (h *Handler) jump(row, col int, dir Direction) (int, int) {
	switch dir {
	case DirUp, DirDown:
		list := h.Cells.GetRowsInColumn(col)
		return jumpAlongAxis(row, list, dir == DirDown, 0, h.MaxRow), col
	default:
		list := h.Cells.GetColumnsInRow(row)
		return row, jumpAlongAxis(col, list, dir == DirRight, 0, h.MaxCol)
	}
}

// jumpAlongAxis computes the Ctrl+Arrow target along one axis: sortedIdx
// is the ascending list of occupied positions on that axis.
func jumpAlongAxis(pos int, sortedIdx []int, forward bool, minPos, maxPos int) int {
	i, present := search(sortedIdx, pos)
	if present {
		if forward {
			if i+1 < len(sortedIdx) && sortedIdx[i+1] == pos+1 {
				for i+1 < len(sortedIdx) && sortedIdx[i+1] == sortedIdx[i]+1 {
					i++
				}
				return sortedIdx[i]
			}
			if n, ok := nextAfter(sortedIdx, pos); ok {
				return n
			}
			return maxPos
		}
		if i-1 >= 0 && sortedIdx[i-1] == pos-1 {
			for i-1 >= 0 && sortedIdx[i-1] == sortedIdx[i]-1 {
				i--
			}
			return sortedIdx[i]
		}
		if p, ok := prevBefore(sortedIdx, pos); ok {
			return p
		}
		return minPos
	}
	if forward {
		if n, ok := nextAfter(sortedIdx, pos); ok {
			return n
		}
		return maxPos
	}
	if p, ok := prevBefore(sortedIdx, pos); ok {
		return p
	}
	return minPos
}

// search reports the index of pos in the ascending sortedIdx, if present.
func search(sortedIdx []int, pos int) (int, bool) {
	i := sort.SearchInts(sortedIdx, pos)
	if i < len(sortedIdx) && sortedIdx[i] == pos {
		return i, true
	}
	return i, false
}

func nextAfter(sortedIdx []int, pos int) (int, bool) {
	i := sort.SearchInts(sortedIdx, pos+1)
	if i < len(sortedIdx) {
		return sortedIdx[i], true
	}
	return 0, false
}

func prevBefore(sortedIdx []int, pos int) (int, bool) {
	i := sort.SearchInts(sortedIdx, pos)
	if i-1 >= 0 {
		return sortedIdx[i-1], true
	}
	return 0, false
}

// navigatePage moves by pageSize rows (vertical paging; NavigatePage is
// vertical-only per the keybinding table's PageUp/Down).
func (h *Handler) navigatePage(state SelectionState, dir Direction, extend bool, pageSize int) Result {
	row, col := state.currentPosition()
	if pageSize <= 0 {
		pageSize = 1
	}
	switch dir {
	case DirUp:
		row -= pageSize
	case DirDown:
		row += pageSize
	}
	row, col = h.clampRow(row), h.clampCol(col)
	if extend {
		return h.extendStep(state, row, col)
	}
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	state.Ranges = nil
	return Result{State: state}
}

// navigateHomeEnd implements Home/End and Ctrl+Home/End (Ctrl+End on an
// empty sheet clamps to (0,0) rather than falling back to maxRow/maxCol).
func (h *Handler) navigateHomeEnd(state SelectionState, target HomeEndTarget, documentLevel bool, extend bool) Result {
	row, col := state.currentPosition()
	switch {
	case target == TargetHome && !documentLevel:
		col = 0
	case target == TargetHome && documentLevel:
		row, col = 0, 0
	case target == TargetEnd && !documentLevel:
		if cols := h.Cells.GetColumnsInRow(row); len(cols) > 0 {
			col = cols[len(cols)-1]
		}
	default: // TargetEnd && documentLevel
		if used, ok := h.Cells.GetUsedRange(); ok {
			row, col = used.EndRow, used.EndCol
		} else {
			row, col = 0, 0
		}
	}
	row, col = h.clampRow(row), h.clampCol(col)
	if extend {
		return h.extendStep(state, row, col)
	}
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	state.Ranges = nil
	return Result{State: state}
}

// tabEnterNavigate implements the Tab/Enter cycling contract:
// within a non-degenerate selection, Tab advances column (wrapping row)
// and Enter advances row (wrapping column), Shift reverses; the range is
// preserved. A degenerate selection instead moves activeCell by one cell
// and clears the range ( open question (c)).
func (h *Handler) tabEnterNavigate(state SelectionState, key TabEnterKey, reverse bool) Result {
	r := state.lastRange()
	if r == nil || r.IsDegenerate() {
		dir := DirRight
		if key == KeyEnter {
			dir = DirDown
		}
		if reverse {
			dir = opposite(dir)
		}
		return h.navigateCell(state, dir, false, false)
	}

	n := r.Normalized()
	row, col := state.ActiveCell.Row, state.ActiveCell.Col
	if key == KeyTab {
		if !reverse {
			col++
			if col > n.EndCol {
				col = n.StartCol
				row++
				if row > n.EndRow {
					row = n.StartRow
				}
			}
		} else {
			col--
			if col < n.StartCol {
				col = n.EndCol
				row--
				if row < n.StartRow {
					row = n.EndRow
				}
			}
		}
	} else { // KeyEnter
		if !reverse {
			row++
			if row > n.EndRow {
				row = n.StartRow
				col++
				if col > n.EndCol {
					col = n.StartCol
				}
			}
		} else {
			row--
			if row < n.StartRow {
				row = n.EndRow
				col--
				if col < n.StartCol {
					col = n.EndCol
				}
			}
		}
	}
	state.ActiveCell = cellmodel.Coord{Row: row, Col: col}
	return Result{State: state}
}

func opposite(dir Direction) Direction {
	switch dir {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}
