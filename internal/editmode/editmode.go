// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package editmode implements EditModeManager: the
// Navigate/Enter/Edit/Point state machine governing in-cell editing and
// formula reference insertion.
package editmode

import (
	"github.com/latticesheet/sheetcore/internal/a1"
	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

// Mode is one of the four editing states.
type Mode int

const (
	ModeNavigate Mode = iota
	ModeEnter
	ModeEdit
	ModePoint
)

func (m Mode) String() string {
	switch m {
	case ModeNavigate:
		return "navigate"
	case ModeEnter:
		return "enter"
	case ModeEdit:
		return "edit"
	case ModePoint:
		return "point"
	default:
		return "unknown"
	}
}

// Manager owns the Navigate/Enter/Edit/Point state machine;
// it never mutates the cell store itself -- ConfirmEdit returns the
// buffer for the host to commit.
type Manager struct {
	mode   Mode
	cell   cellmodel.Coord
	buffer []rune
	caret  int

	// prevMode is where Point mode returns to on Escape/non-ref input
	// ( "Point -> typed digit/letter, Escape -> Edit").
	prevMode Mode

	// pointCell is the temporary reference-insertion cursor Point mode
	// moves via InsertReference, distinct from the sheet's activeCell
	// ( contract: point-mode clicks never move activeCell).
	pointCell    cellmodel.Coord
	hasPointCell bool

	// refStart/refEnd delimit the in-buffer span of the reference most
	// recently inserted by InsertReference, so a further point-mode click
	// replaces it instead of appending another reference.
	refStart, refEnd int
	hasActiveRef     bool
}

// NewManager returns a Manager in the default Navigate state.
func NewManager() *Manager {
	return &Manager{mode: ModeNavigate}
}

// Mode reports the current state.
func (m *Manager) Mode() Mode { return m.mode }

// Buffer returns the current edit buffer text.
func (m *Manager) Buffer() string { return string(m.buffer) }

// Cell returns the cell currently being edited.
func (m *Manager) Cell() cellmodel.Coord { return m.cell }

// Caret returns the caret's rune offset into Buffer().
func (m *Manager) Caret() int { return m.caret }

// IsFormula reports whether the buffer is formula source (starts with
// '=').
func (m *Manager) IsFormula() bool {
	return len(m.buffer) > 0 && m.buffer[0] == '='
}

// IsEditing reports whether any edit state (Enter, Edit, or Point) is
// active -- the bit IntentHandler's EscapePressed contract needs from
// the host (internal/intent.Context.IsEditing).
func (m *Manager) IsEditing() bool { return m.mode != ModeNavigate }

// PointCell returns the temporary point-mode reference cursor and
// whether one is active.
func (m *Manager) PointCell() (cellmodel.Coord, bool) { return m.pointCell, m.hasPointCell }

// StartEdit transitions Navigate -> Enter, optionally seeding the buffer
// with a single printable character.
func (m *Manager) StartEdit(cell cellmodel.Coord, seed rune, hasSeed bool) {
	m.reset()
	m.mode = ModeEnter
	m.cell = cell
	if hasSeed {
		m.buffer = []rune{seed}
		m.caret = 1
	}
}

// BeginEdit transitions Navigate -> Edit with the caret positioned inside
// existing content (double-click or single-click-to-edit, a
// BeginEdit effect routed here by the host).
func (m *Manager) BeginEdit(cell cellmodel.Coord, initialValue string) {
	m.reset()
	m.mode = ModeEdit
	m.cell = cell
	m.buffer = []rune(initialValue)
	m.caret = len(m.buffer)
}

func (m *Manager) reset() {
	m.mode = ModeNavigate
	m.buffer = nil
	m.caret = 0
	m.hasPointCell = false
	m.hasActiveRef = false
}

// TypeRune inserts r at the caret. While in Point mode, typing any
// digit/letter (i.e. anything that isn't building a reference) returns
// to Edit mode first: `Point --typed digit/letter--> Edit`.
func (m *Manager) TypeRune(r rune) {
	if m.mode == ModePoint {
		m.mode = ModeEdit
		m.hasPointCell = false
	}
	m.insertAtCaret([]rune{r})
	m.hasActiveRef = false
	if m.IsFormula() && isRefTriggerPosition(m.buffer, m.caret) {
		m.mode = ModePoint
	}
}

// isRefTriggerPosition reports whether the caret sits right after an
// operator/open-paren in a formula, the "ref slot" 
// describes entering Point mode from.
func isRefTriggerPosition(buf []rune, caret int) bool {
	if caret == 0 || caret > len(buf) {
		return false
	}
	prev := buf[caret-1]
	switch prev {
	case '=', '+', '-', '*', '/', '(', ',', ':':
		return true
	default:
		return false
	}
}

func (m *Manager) insertAtCaret(s []rune) {
	buf := make([]rune, 0, len(m.buffer)+len(s))
	buf = append(buf, m.buffer[:m.caret]...)
	buf = append(buf, s...)
	buf = append(buf, m.buffer[m.caret:]...)
	m.buffer = buf
	m.caret += len(s)
}

// Backspace deletes the rune before the caret, if any.
func (m *Manager) Backspace() {
	if m.caret == 0 {
		return
	}
	m.buffer = append(m.buffer[:m.caret-1], m.buffer[m.caret:]...)
	m.caret--
	m.hasActiveRef = false
}

// MoveCaret shifts the caret by delta runes, clamped to the buffer.
func (m *Manager) MoveCaret(delta int) {
	m.caret += delta
	if m.caret < 0 {
		m.caret = 0
	}
	if m.caret > len(m.buffer) {
		m.caret = len(m.buffer)
	}
}

// InsertReference is Point mode's sole mutation: it inserts (or, if one
// was just inserted, replaces) the A1 reference for (row, col) at the
// caret, and moves the point cell -- without touching activeCell.
func (m *Manager) InsertReference(row, col int) {
	ref := []rune(a1.Format(row, col))
	if m.hasActiveRef {
		buf := make([]rune, 0, len(m.buffer)-(m.refEnd-m.refStart)+len(ref))
		buf = append(buf, m.buffer[:m.refStart]...)
		buf = append(buf, ref...)
		buf = append(buf, m.buffer[m.refEnd:]...)
		m.buffer = buf
		m.refEnd = m.refStart + len(ref)
		m.caret = m.refEnd
	} else {
		m.refStart = m.caret
		m.insertAtCaret(ref)
		m.refEnd = m.caret
	}
	m.hasActiveRef = true
	m.pointCell = cellmodel.Coord{Row: row, Col: col}
	m.hasPointCell = true
}

// ConfirmEdit commits the buffer and returns to Navigate. ok is false if
// no edit was active (a no-op commit).
func (m *Manager) ConfirmEdit() (cell cellmodel.Coord, buffer string, ok bool) {
	if m.mode == ModeNavigate {
		return cellmodel.Coord{}, "", false
	}
	cell, buffer = m.cell, string(m.buffer)
	m.reset()
	return cell, buffer, true
}

// CancelEdit discards the buffer and returns to Navigate without
// reporting a commit.
func (m *Manager) CancelEdit() {
	m.reset()
}

// EscapeFromPoint handles Point mode's Escape transition back to Edit
// ( `Point --Escape--> Edit (or Cancel)`). The buffer, including any
// reference inserted while pointing, is left unchanged.
func (m *Manager) EscapeFromPoint() {
	if m.mode != ModePoint {
		return
	}
	m.mode = ModeEdit
	m.hasPointCell = false
}

// NavigationAbsorbed reports whether a navigation intent should be
// absorbed by the edit state rather than moving the sheet selection
// ( "Navigation intents are absorbed if Enter state").
func (m *Manager) NavigationAbsorbed() bool {
	return m.mode == ModeEnter
}
