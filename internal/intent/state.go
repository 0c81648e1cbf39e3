// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package intent

import "github.com/latticesheet/sheetcore/internal/cellmodel"

// SelectionRange is the anchor/extend-aware range the reducer operates
// on: Start is the fixed corner (the anchor, by convention), End is
// the moving corner. Unlike cellmodel.Range, the
// pair is not normalized -- End can be above/left of Start.
type SelectionRange struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Normalized returns the equivalent cellmodel.Range with Start<=End on
// both axes, for callers (rendering, fill, merge) that don't care about
// anchor direction.
func (r SelectionRange) Normalized() cellmodel.Range {
	return cellmodel.Range{StartRow: r.StartRow, StartCol: r.StartCol, EndRow: r.EndRow, EndCol: r.EndCol}.Normalized()
}

// IsDegenerate reports whether the range covers exactly one cell.
func (r SelectionRange) IsDegenerate() bool {
	return r.StartRow == r.EndRow && r.StartCol == r.EndCol
}

// fillDragState tracks an in-progress fill drag (the axis-lock
// contract). Active is false when no fill drag is underway.
type fillDragState struct {
	Active      bool
	Source      cellmodel.Range // normalized source extent, frozen for the whole drag
	Preview     cellmodel.Range // current preview extent
	PreDragSnap SelectionState  // restored on a no-op EndFillDrag or cancellation
}

// dragState tracks an in-progress pointer drag selection, for cancellation
// ( "Cancellation semantics").
type dragState struct {
	Active      bool
	Additive    bool // true if the drag started with a modifier (appended via AddRange)
	StartRow    int
	StartCol    int
	PreDragSnap SelectionState
}

// SelectAllState tracks the 3-press dwell cycle ( SelectAll).
type selectAllState struct {
	Stage       int // 0 = none yet; 1 = region; 2 = used range; 3 = entire grid
	LastAtNanos int64
}

// SelectionState is the entire state the reducer owns and mutates.
type SelectionState struct {
	ActiveCell cellmodel.Coord
	Ranges     []SelectionRange

	fill      fillDragState
	drag      dragState
	selectAll selectAllState
}

// NewSelectionState returns the initial state: activeCell at the origin,
// no ranges.
func NewSelectionState() SelectionState {
	return SelectionState{ActiveCell: cellmodel.Coord{Row: 0, Col: 0}}
}

// lastRange returns a pointer to the active (last) range, or nil.
func (s *SelectionState) lastRange() *SelectionRange {
	if len(s.Ranges) == 0 {
		return nil
	}
	return &s.Ranges[len(s.Ranges)-1]
}

// currentPosition is "the position navigation starts from": the last
// range's End if a range exists (navigation moves from the range end,
// not the anchor), else activeCell.
func (s SelectionState) currentPosition() (row, col int) {
	if r := len(s.Ranges); r > 0 {
		last := s.Ranges[r-1]
		return last.EndRow, last.EndCol
	}
	return s.ActiveCell.Row, s.ActiveCell.Col
}
