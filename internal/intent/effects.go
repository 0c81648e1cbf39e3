// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package intent

import "github.com/latticesheet/sheetcore/internal/cellmodel"

// FillEffect describes a requested fill-handle mutation.
type FillEffect struct {
	From cellmodel.Range
	To   cellmodel.Range
}

// RowsEffect/ColsEffect describe a requested structural mutation. The
// reducer resolves sentinel row/col values against activeCell before emitting
// these; the host never sees a sentinel.
type RowsEffect struct{ Row, Count int }
type ColsEffect struct{ Col, Count int }

// DeleteRangeEffect describes a requested row/column deletion.
type DeleteRangeEffect struct{ Start, End int }

// Effects holds every optional side effect the reducer may request
// alongside a new SelectionState ( "Produced: effect stream").
// Every field is a no-op when at its zero value / nil.
type Effects struct {
	ScrollTo            *cellmodel.Coord
	BeginEditCell       *cellmodel.Coord
	BeginEditSeed       rune
	BeginEditHasSeed    bool
	ConfirmEdit         bool
	CancelEdit          bool
	Clipboard           *ClipboardOp
	DeleteContents      bool
	Fill                *FillEffect
	ApplyFormat         *cellmodel.Format
	UndoRedo            *UndoRedoOp
	InsertRows          *RowsEffect
	DeleteRows          *DeleteRangeEffect
	InsertColumns       *ColsEffect
	DeleteColumns       *DeleteRangeEffect
	MergeCells          bool
	UnmergeCells        bool
	ShowFormatDialog    bool
	OpenFindReplace     *FindReplaceMode
	OpenSortDialog      bool
	OpenFilterDropdown  *OpenFilterDropdown
	OpenDataValidation  bool
	ShowContextMenu     *cellmodel.Coord
}

// Result is IntentResult: the new state plus requested
// effects.
type Result struct {
	State   SelectionState
	Effects Effects
}
