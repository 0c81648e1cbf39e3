// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package intent implements IntentHandler: the sole
// mutator of SelectionState. It consumes one Intent at a time and
// returns an IntentResult holding the new state plus any side effects
// the host must carry out.
package intent

import (
	"reflect"

	"github.com/iancoleman/strcase"
	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

// Intent is the tagged-variant vocabulary the reducer enumerates.
// Implementations are plain structs; Kind derives its wire/debug name
// from the Go type name so call sites never hand-maintain a parallel
// string table.
type Intent interface {
	Kind() string
}

func kindOf(v any) string {
	return strcase.ToSnake(reflect.TypeOf(v).Name())
}

// Direction is a cardinal navigation direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// HomeEndTarget distinguishes Home from End.
type HomeEndTarget int

const (
	TargetHome HomeEndTarget = iota
	TargetEnd
)

// TabEnterKey distinguishes which key drove a TabEnterNavigate intent.
type TabEnterKey int

const (
	KeyTab TabEnterKey = iota
	KeyEnter
)

// ClipboardOp names a clipboard action.
type ClipboardOp int

const (
	ClipboardCopy ClipboardOp = iota
	ClipboardCut
	ClipboardPaste
)

// UndoRedoOp names which history direction to apply.
type UndoRedoOp int

const (
	OpUndo UndoRedoOp = iota
	OpRedo
)

// FindReplaceMode distinguishes Find from Find&Replace.
type FindReplaceMode int

const (
	ModeFind FindReplaceMode = iota
	ModeFindReplace
)

// --- Pointer-originated intents ---

type SetActiveCell struct{ Row, Col int }
type ExtendSelection struct{ Row, Col int }
type AddRange struct{ Row, Col int }
type BeginDragSelection struct{ Row, Col int }
type UpdateDragSelection struct{ Row, Col int }
type EndDragSelection struct{}
type BeginFillDrag struct{ Row, Col int }
type UpdateFillDrag struct{ Row, Col int }
type EndFillDrag struct{ Row, Col int }
type SelectRow struct {
	Row              int
	Extend, Additive bool
}
type SelectColumn struct {
	Col              int
	Extend, Additive bool
}

// SelectAll implements the 3-press dwell cycle (dwell window defaults
// to 1s, carried as config.EngineConfig.SelectAllDwell). AtUnixNano is the
// event's timestamp in caller-supplied form so the reducer stays pure;
// hosts normally pass time.Now().UnixNano().
type SelectAll struct{ AtUnixNano int64 }

type BeginEdit struct{}
type ShowContextMenu struct{ Row, Col int }

// InsertRows: Row >= 0 is a literal row index; Row == SentinelAbove means
// "above active cell", Row == SentinelBelow means "below active cell".
type InsertRows struct {
	Row   int
	Count int
}

const (
	SentinelAbove = -1
	SentinelBelow = -2
)

type DeleteRows struct{ StartRow, EndRow int }
type InsertColumns struct {
	Col   int
	Count int
}
type DeleteColumns struct{ StartCol, EndCol int }
type MergeCells struct{}
type UnmergeCells struct{}
type ShowFormatDialog struct{}
type OpenFindReplace struct{ Mode FindReplaceMode }
type OpenSortDialog struct{}
type OpenFilterDropdown struct {
	Col        int
	AnchorRect Rect
}
type OpenDataValidation struct{}

// Rect mirrors internal/render.Rect's shape without importing that
// package, since the reducer must not depend on the renderer: a plain
// pixel rectangle the host positions a dropdown against.
type Rect struct{ X, Y, Width, Height float64 }

// --- Keyboard-originated intents ---

type NavigateCell struct {
	Direction Direction
	Jump      bool
	Extend    bool
}
type NavigatePage struct {
	Direction Direction
	Extend    bool
	PageSize  int
}
type NavigateHomeEnd struct {
	Target        HomeEndTarget
	DocumentLevel bool
	Extend        bool
}
type TabEnterNavigate struct {
	Key     TabEnterKey
	Reverse bool
}
type StartEdit struct {
	Seed    rune
	HasSeed bool
}
type ConfirmEdit struct{}
type CancelEdit struct{}
type EscapePressed struct{}
type SelectAllCells struct{}
type DeleteContents struct{}
type ClipboardAction struct{ Action ClipboardOp }
type ApplyFormat struct{ Format cellmodel.Format }
type UndoRedo struct{ Op UndoRedoOp }

func (SetActiveCell) Kind() string       { return kindOf(SetActiveCell{}) }
func (ExtendSelection) Kind() string     { return kindOf(ExtendSelection{}) }
func (AddRange) Kind() string            { return kindOf(AddRange{}) }
func (BeginDragSelection) Kind() string  { return kindOf(BeginDragSelection{}) }
func (UpdateDragSelection) Kind() string { return kindOf(UpdateDragSelection{}) }
func (EndDragSelection) Kind() string    { return kindOf(EndDragSelection{}) }
func (BeginFillDrag) Kind() string       { return kindOf(BeginFillDrag{}) }
func (UpdateFillDrag) Kind() string      { return kindOf(UpdateFillDrag{}) }
func (EndFillDrag) Kind() string         { return kindOf(EndFillDrag{}) }
func (SelectRow) Kind() string           { return kindOf(SelectRow{}) }
func (SelectColumn) Kind() string        { return kindOf(SelectColumn{}) }
func (SelectAll) Kind() string           { return kindOf(SelectAll{}) }
func (BeginEdit) Kind() string           { return kindOf(BeginEdit{}) }
func (ShowContextMenu) Kind() string     { return kindOf(ShowContextMenu{}) }
func (InsertRows) Kind() string          { return kindOf(InsertRows{}) }
func (DeleteRows) Kind() string          { return kindOf(DeleteRows{}) }
func (InsertColumns) Kind() string       { return kindOf(InsertColumns{}) }
func (DeleteColumns) Kind() string       { return kindOf(DeleteColumns{}) }
func (MergeCells) Kind() string          { return kindOf(MergeCells{}) }
func (UnmergeCells) Kind() string        { return kindOf(UnmergeCells{}) }
func (ShowFormatDialog) Kind() string    { return kindOf(ShowFormatDialog{}) }
func (OpenFindReplace) Kind() string     { return kindOf(OpenFindReplace{}) }
func (OpenSortDialog) Kind() string      { return kindOf(OpenSortDialog{}) }
func (OpenFilterDropdown) Kind() string  { return kindOf(OpenFilterDropdown{}) }
func (OpenDataValidation) Kind() string  { return kindOf(OpenDataValidation{}) }
func (NavigateCell) Kind() string        { return kindOf(NavigateCell{}) }
func (NavigatePage) Kind() string        { return kindOf(NavigatePage{}) }
func (NavigateHomeEnd) Kind() string     { return kindOf(NavigateHomeEnd{}) }
func (TabEnterNavigate) Kind() string    { return kindOf(TabEnterNavigate{}) }
func (StartEdit) Kind() string           { return kindOf(StartEdit{}) }
func (ConfirmEdit) Kind() string         { return kindOf(ConfirmEdit{}) }
func (CancelEdit) Kind() string          { return kindOf(CancelEdit{}) }
func (EscapePressed) Kind() string       { return kindOf(EscapePressed{}) }
func (SelectAllCells) Kind() string      { return kindOf(SelectAllCells{}) }
func (DeleteContents) Kind() string      { return kindOf(DeleteContents{}) }
func (ClipboardAction) Kind() string     { return kindOf(ClipboardAction{}) }
func (ApplyFormat) Kind() string         { return kindOf(ApplyFormat{}) }
func (UndoRedo) Kind() string            { return kindOf(UndoRedo{}) }
