// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package editmode

import (
	"testing"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEditNoSeedEntersEnterModeWithEmptyBuffer(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{Row: 1, Col: 1}, 0, false)
	assert.Equal(t, ModeEnter, m.Mode())
	assert.Equal(t, "", m.Buffer())
}

func TestStartEditWithSeedSeedsBuffer(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{Row: 0, Col: 0}, 'x', true)
	assert.Equal(t, ModeEnter, m.Mode())
	assert.Equal(t, "x", m.Buffer())
	assert.Equal(t, 1, m.Caret())
}

func TestBeginEditEntersEditModeWithExistingContent(t *testing.T) {
	m := NewManager()
	m.BeginEdit(cellmodel.Coord{Row: 2, Col: 2}, "hello")
	assert.Equal(t, ModeEdit, m.Mode())
	assert.Equal(t, "hello", m.Buffer())
	assert.Equal(t, 5, m.Caret())
}

func TestTypeRuneAfterEqualsEntersPointMode(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	assert.Equal(t, ModePoint, m.Mode())
	assert.True(t, m.IsFormula())
}

func TestTypeRuneAfterOperatorReentersPointMode(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	m.InsertReference(0, 0) // returns to Edit implicitly via InsertReference? no -- stays Point until typed
	m.TypeRune('+')
	assert.Equal(t, ModePoint, m.Mode())
}

func TestTypeRuneOfNonTriggerCharReturnsToEditFromPoint(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	require.Equal(t, ModePoint, m.Mode())
	m.TypeRune('1')
	assert.Equal(t, ModeEdit, m.Mode())
	assert.Equal(t, "=1", m.Buffer())
}

func TestInsertReferenceInsertsA1AndMovesPointCell(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	m.InsertReference(0, 0)
	assert.Equal(t, "=A1", m.Buffer())
	cell, ok := m.PointCell()
	assert.True(t, ok)
	assert.Equal(t, cellmodel.Coord{Row: 0, Col: 0}, cell)
}

func TestInsertReferenceTwiceReplacesPriorReference(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	m.InsertReference(0, 0)  // "=A1"
	m.InsertReference(9, 27) // replace with "AB10"
	assert.Equal(t, "=AB10", m.Buffer())
}

func TestEscapeFromPointReturnsToEditWithoutClearingBuffer(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	m.TypeRune('=')
	m.InsertReference(0, 0)
	m.EscapeFromPoint()
	assert.Equal(t, ModeEdit, m.Mode())
	assert.Equal(t, "=A1", m.Buffer())
}

func TestConfirmEditReturnsBufferAndResetsToNavigate(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{Row: 3, Col: 4}, 'h', true)
	m.TypeRune('i')
	cell, buf, ok := m.ConfirmEdit()
	assert.True(t, ok)
	assert.Equal(t, cellmodel.Coord{Row: 3, Col: 4}, cell)
	assert.Equal(t, "hi", buf)
	assert.Equal(t, ModeNavigate, m.Mode())
}

func TestConfirmEditWithNoActiveEditIsNoop(t *testing.T) {
	m := NewManager()
	_, _, ok := m.ConfirmEdit()
	assert.False(t, ok)
}

func TestCancelEditDiscardsBuffer(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 'x', true)
	m.CancelEdit()
	assert.Equal(t, ModeNavigate, m.Mode())
	assert.Equal(t, "", m.Buffer())
}

func TestBackspaceAndMoveCaret(t *testing.T) {
	m := NewManager()
	m.BeginEdit(cellmodel.Coord{}, "abc")
	m.MoveCaret(-1) // caret now before 'c'
	m.Backspace()   // removes 'b'
	assert.Equal(t, "ac", m.Buffer())
	assert.Equal(t, 1, m.Caret())
}

func TestNavigationAbsorbedOnlyInEnterMode(t *testing.T) {
	m := NewManager()
	m.StartEdit(cellmodel.Coord{}, 0, false)
	assert.True(t, m.NavigationAbsorbed())
	m.BeginEdit(cellmodel.Coord{}, "x")
	assert.False(t, m.NavigationAbsorbed())
}

func TestIsEditingTracksAnyNonNavigateMode(t *testing.T) {
	m := NewManager()
	assert.False(t, m.IsEditing())
	m.StartEdit(cellmodel.Coord{}, 0, false)
	assert.True(t, m.IsEditing())
}

func TestTokensNilWhenNotFormula(t *testing.T) {
	m := NewManager()
	m.BeginEdit(cellmodel.Coord{}, "hello")
	assert.Nil(t, m.Tokens())
}

func TestTokensNonNilForFormula(t *testing.T) {
	m := NewManager()
	m.BeginEdit(cellmodel.Coord{}, "=SUM(A1,B2)")
	toks := m.Tokens()
	assert.NotEmpty(t, toks)
}
