// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package keyboard implements KeyboardTranslator: a
// stateless (KeyEvent, mode) -> Intent function backed by a keybinding
// table, so shortcut semantics live in one place instead of scattered
// across key-handling call sites.
package keyboard

import (
	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/intent"
)

// Mode narrows the starter table's "when" column to the two states the
// translator needs to distinguish; EditModeManager's finer Enter/Edit/Point
// states both count as "editing" here.
type Mode int

const (
	ModeNavigation Mode = iota
	ModeEditing
)

// when is the starter table's "when" column.
type when int

const (
	whenAlways when = iota
	whenNav
	whenEditing
)

func (w when) matches(m Mode) bool {
	switch w {
	case whenAlways:
		return true
	case whenNav:
		return m == ModeNavigation
	case whenEditing:
		return m == ModeEditing
	default:
		return false
	}
}

// KeyEvent is the host's normalized description of a single keydown.
// Named keys (arrows, Tab, Escape, ...) are carried in Key; printable
// characters are carried in Rune with HasRune set. IsComposing and
// KeyCode 229 both signal an in-progress IME composition, which the
// translator never translates.
type KeyEvent struct {
	Key         string
	Rune        rune
	HasRune     bool
	Ctrl        bool
	Shift       bool
	Alt         bool
	Meta        bool
	IsComposing bool
	KeyCode     int
}

// Config carries the host-supplied knobs the table is
// overridable by: whether Cmd counts as Ctrl on Apple platforms, and the
// page size NavigatePage needs.
type Config struct {
	MetaAsCtrl bool
	PageSize   int
}

// Named key identifiers. Hosts normalize their platform's raw key names
// to these before calling Translate.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyTab        = "Tab"
	KeyEnter      = "Enter"
	KeyF2         = "F2"
	KeyEscape     = "Escape"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
)

// translation is one row of the starter keybinding table.
type translation struct {
	key   string
	ctrl  boolMatch
	shift boolMatch
	when  when
	build func(ev KeyEvent, effectiveCtrl bool, cfg Config) intent.Intent
}

// boolMatch is a tri-state matcher: nil means "don't care".
type boolMatch *bool

var (
	yes boolMatch = boolPtr(true)
	no  boolMatch = boolPtr(false)
	any boolMatch = nil
)

func boolPtr(b bool) *bool { return &b }

func (bm boolMatch) matches(v bool) bool {
	return bm == nil || *bm == v
}

func arrowDirection(key string) (intent.Direction, bool) {
	switch key {
	case KeyArrowUp:
		return intent.DirUp, true
	case KeyArrowDown:
		return intent.DirDown, true
	case KeyArrowLeft:
		return intent.DirLeft, true
	case KeyArrowRight:
		return intent.DirRight, true
	default:
		return 0, false
	}
}

// arrowRows holds the arrow-key bindings. Each row has no key of its own:
// Translate matches them for any of the four arrow keys, rather than one
// row per direction, since all four share identical modifier semantics.
var arrowRows = []translation{
	{ctrl: no, shift: no, when: whenNav, build: func(ev KeyEvent, _ bool, _ Config) intent.Intent {
		dir, _ := arrowDirection(ev.Key)
		return intent.NavigateCell{Direction: dir}
	}},
	{ctrl: yes, shift: no, when: whenNav, build: func(ev KeyEvent, _ bool, _ Config) intent.Intent {
		dir, _ := arrowDirection(ev.Key)
		return intent.NavigateCell{Direction: dir, Jump: true}
	}},
	{ctrl: no, shift: yes, when: whenNav, build: func(ev KeyEvent, _ bool, _ Config) intent.Intent {
		dir, _ := arrowDirection(ev.Key)
		return intent.NavigateCell{Direction: dir, Extend: true}
	}},
	{ctrl: yes, shift: yes, when: whenNav, build: func(ev KeyEvent, _ bool, _ Config) intent.Intent {
		dir, _ := arrowDirection(ev.Key)
		return intent.NavigateCell{Direction: dir, Jump: true, Extend: true}
	}},
}

var table = []translation{
	{key: KeyPageUp, ctrl: any, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, cfg Config) intent.Intent {
		return intent.NavigatePage{Direction: intent.DirUp, PageSize: cfg.PageSize}
	}},
	{key: KeyPageUp, ctrl: any, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, cfg Config) intent.Intent {
		return intent.NavigatePage{Direction: intent.DirUp, Extend: true, PageSize: cfg.PageSize}
	}},
	{key: KeyPageDown, ctrl: any, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, cfg Config) intent.Intent {
		return intent.NavigatePage{Direction: intent.DirDown, PageSize: cfg.PageSize}
	}},
	{key: KeyPageDown, ctrl: any, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, cfg Config) intent.Intent {
		return intent.NavigatePage{Direction: intent.DirDown, Extend: true, PageSize: cfg.PageSize}
	}},

	{key: KeyHome, ctrl: no, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetHome}
	}},
	{key: KeyHome, ctrl: no, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetHome, Extend: true}
	}},
	{key: KeyHome, ctrl: yes, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetHome, DocumentLevel: true}
	}},
	{key: KeyHome, ctrl: yes, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetHome, DocumentLevel: true, Extend: true}
	}},
	{key: KeyEnd, ctrl: no, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetEnd}
	}},
	{key: KeyEnd, ctrl: no, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetEnd, Extend: true}
	}},
	{key: KeyEnd, ctrl: yes, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetEnd, DocumentLevel: true}
	}},
	{key: KeyEnd, ctrl: yes, shift: yes, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.NavigateHomeEnd{Target: intent.TargetEnd, DocumentLevel: true, Extend: true}
	}},

	{key: KeyTab, ctrl: any, shift: no, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.TabEnterNavigate{Key: intent.KeyTab}
	}},
	{key: KeyTab, ctrl: any, shift: yes, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.TabEnterNavigate{Key: intent.KeyTab, Reverse: true}
	}},
	{key: KeyEnter, ctrl: any, shift: no, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.TabEnterNavigate{Key: intent.KeyEnter}
	}},
	{key: KeyEnter, ctrl: any, shift: yes, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.TabEnterNavigate{Key: intent.KeyEnter, Reverse: true}
	}},

	{key: KeyF2, ctrl: no, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.StartEdit{}
	}},
	{key: KeyEscape, ctrl: any, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.EscapePressed{}
	}},
	{key: KeyDelete, ctrl: no, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.DeleteContents{}
	}},
	{key: KeyBackspace, ctrl: no, shift: no, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.DeleteContents{}
	}},

	{key: "c", ctrl: yes, shift: any, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ClipboardAction{Action: intent.ClipboardCopy}
	}},
	{key: "x", ctrl: yes, shift: any, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ClipboardAction{Action: intent.ClipboardCut}
	}},
	{key: "v", ctrl: yes, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ClipboardAction{Action: intent.ClipboardPaste}
	}},

	{key: "z", ctrl: yes, shift: no, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.UndoRedo{Op: intent.OpUndo}
	}},
	{key: "z", ctrl: yes, shift: yes, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.UndoRedo{Op: intent.OpRedo}
	}},
	{key: "y", ctrl: yes, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.UndoRedo{Op: intent.OpRedo}
	}},

	{key: "a", ctrl: yes, shift: any, when: whenNav, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.SelectAllCells{}
	}},

	{key: "b", ctrl: yes, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ApplyFormat{Format: cellFormatBold()}
	}},
	{key: "i", ctrl: yes, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ApplyFormat{Format: cellFormatItalic()}
	}},
	{key: "u", ctrl: yes, shift: any, when: whenAlways, build: func(_ KeyEvent, _ bool, _ Config) intent.Intent {
		return intent.ApplyFormat{Format: cellFormatUnderline()}
	}},
}

// cellFormatBold/Italic/Underline build the ApplyFormat patch for
// Ctrl+B/I/U. The patch only sets the one field each binds; the host
// reads the active cell's current format and flips that field before
// committing, since neither the translator nor the reducer ever see
// stored cell content -- IntentHandler only touches SelectionState.
func cellFormatBold() cellmodel.Format      { return cellmodel.Format{Bold: true} }
func cellFormatItalic() cellmodel.Format    { return cellmodel.Format{Italic: true} }
func cellFormatUnderline() cellmodel.Format { return cellmodel.Format{Underline: true} }

// Translate maps one key event to at most one Intent, per 
// It returns (nil, false) for IME composition events, unmatched keys, or
// bindings whose "when" clause excludes the current mode.
func Translate(ev KeyEvent, mode Mode, cfg Config) (intent.Intent, bool) {
	if ev.IsComposing || ev.KeyCode == 229 {
		return nil, false
	}

	effectiveCtrl := ev.Ctrl || (ev.Meta && cfg.MetaAsCtrl)

	if _, isArrow := arrowDirection(ev.Key); isArrow {
		for _, row := range arrowRows {
			if row.ctrl.matches(effectiveCtrl) && row.shift.matches(ev.Shift) && row.when.matches(mode) {
				return row.build(ev, effectiveCtrl, cfg), true
			}
		}
		return nil, false
	}

	for _, row := range table {
		if row.key != ev.Key {
			continue
		}
		if !row.ctrl.matches(effectiveCtrl) || !row.shift.matches(ev.Shift) {
			continue
		}
		if !row.when.matches(mode) {
			continue
		}
		return row.build(ev, effectiveCtrl, cfg), true
	}

	// Printable char, no Ctrl/Alt: StartEdit(seed = char).
	if mode == ModeNavigation && ev.HasRune && !effectiveCtrl && !ev.Alt {
		return intent.StartEdit{Seed: ev.Rune, HasSeed: true}, true
	}

	return nil, false
}
