// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/config"
	"github.com/latticesheet/sheetcore/internal/diag"
	"github.com/latticesheet/sheetcore/internal/editmode"
	"github.com/latticesheet/sheetcore/internal/geom"
	"github.com/latticesheet/sheetcore/internal/intent"
	"github.com/latticesheet/sheetcore/internal/journal"
	"github.com/latticesheet/sheetcore/internal/keyboard"
	"github.com/latticesheet/sheetcore/internal/merge"
	"github.com/latticesheet/sheetcore/internal/pointer"
	"github.com/latticesheet/sheetcore/internal/render"
	"github.com/latticesheet/sheetcore/internal/store"
)

// model is cmd/sheetdemo's tea.Model: the demo host wiring every engine
// package together the way a bubbletea application model wires its
// own screens, scaled down to one grid screen.
type model struct {
	cfg config.Config
	log *diag.Log

	rows  *geom.DimensionIndex
	cols  *geom.DimensionIndex
	merges *merge.Index
	cells *store.Store
	jrnl  *journal.Journal

	handler *intent.Handler
	edit    *editmode.Manager
	ptr     *pointer.Translator
	rnd     *render.Renderer

	sel intent.SelectionState

	width, height int
	scrollX       float64
	scrollY       float64

	keys     keymap
	styles   styles
	showHelp bool
	helpR    *helpRenderer
	dialog   formatDialog
	status   string
}

func newModel(cfg config.Config, log *diag.Log, cells *store.Store) model {
	rows := geom.New(cellmodel.MaxRow+1, 22)
	cols := geom.New(cellmodel.MaxCol+1, 90)
	merges := merge.New()
	jrnl := journal.New(journal.Config{
		MaxBytes:       cfg.Engine.JournalMemoryBudget.Bytes(),
		MaxCommands:    cfg.Engine.JournalMaxCommands,
		CoalesceWindow: cfg.Engine.JournalCoalesceWindow.Duration,
	}, log)

	handler := intent.NewHandler(cells, int(cfg.Engine.MaxRow), int(cfg.Engine.MaxCol), cfg.Engine.MaxRanges, cfg.Engine.SelectAllDwell.Duration)
	rnd := &render.Renderer{Rows: rows, Cols: cols, Cells: cells, Merges: merges}

	return model{
		cfg:     cfg,
		log:     log,
		rows:    rows,
		cols:    cols,
		merges:  merges,
		cells:   cells,
		jrnl:    jrnl,
		handler: handler,
		edit:    editmode.NewManager(),
		ptr:     pointer.New(pointer.Config{DragThresholdPx: float64(cfg.Engine.DragThresholdPx), LongPressNanos: cfg.Engine.LongPress.Duration.Nanoseconds(), LongPressPx: 10}),
		rnd:     rnd,
		sel:     intent.NewSelectionState(),
		keys:    defaultKeymap(),
		styles:  defaultStyles(),
		helpR:   &helpRenderer{},
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// editKeyboardMode collapses the four-state edit mode onto the keyboard
// translator's coarser navigation/editing split.
func (m model) editKeyboardMode() keyboard.Mode {
	if m.edit.IsEditing() {
		return keyboard.ModeEditing
	}
	return keyboard.ModeNavigation
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := msg.String(); key == "ctrl+c" {
		return m, tea.Quit
	}
	if matchesKey(m.keys.Help, msg) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.dialog.visible {
		return m.handleDialogKey(msg), nil
	}
	if !m.edit.IsEditing() && matchesKey(m.keys.GotoTop, msg) {
		return m.applyIntent(intent.SetActiveCell{Row: 0, Col: 0}), nil
	}
	if !m.edit.IsEditing() && matchesKey(m.keys.GotoEnd, msg) {
		if rng, ok := m.cells.GetUsedRange(); ok {
			return m.applyIntent(intent.SetActiveCell{Row: rng.EndRow, Col: rng.EndCol}), nil
		}
		return m, nil
	}
	if !m.edit.IsEditing() && matchesKey(m.keys.Seed, msg) {
		if err := m.cells.SeedDemoData(1, 200); err != nil {
			m.status = fmt.Sprintf("seed failed: %v", err)
		} else {
			m.status = "seeded demo data"
		}
		return m, nil
	}

	// While actively editing a formula buffer, printable input and caret
	// movement go straight to the edit-mode manager and never reach the intent layer --
	// NavigationAbsorbed/IsEditing only gate whether *navigation* intents
	// are absorbed, not raw text entry.
	if m.edit.Mode() == editmode.ModeEdit || m.edit.Mode() == editmode.ModeEnter || m.edit.Mode() == editmode.ModePoint {
		if handled, next := m.handleEditBufferKey(msg); handled {
			return next, nil
		}
	}

	ev := keyEventFromTea(msg)
	in, ok := keyboard.Translate(ev, m.editKeyboardMode(), keyboard.Config{MetaAsCtrl: m.cfg.Engine.MetaAsCtrl, PageSize: m.cfg.Engine.PageSize})
	if !ok {
		return m, nil
	}
	return m.applyIntent(in), nil
}

// handleEditBufferKey deals with the raw keystrokes the edit-mode manager
// owns once editing has begun: printable runes, Backspace, arrow-key caret
// movement. It returns handled=false for keys that should still reach the
// intent layer (Escape, Tab, Enter) so the reducer's state machine can
// react to them.
func (m model) handleEditBufferKey(msg tea.KeyMsg) (bool, model) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.edit.TypeRune(r)
		}
		return true, m
	case tea.KeySpace:
		m.edit.TypeRune(' ')
		return true, m
	case tea.KeyBackspace:
		m.edit.Backspace()
		return true, m
	case tea.KeyLeft:
		m.edit.MoveCaret(-1)
		return true, m
	case tea.KeyRight:
		m.edit.MoveCaret(1)
		return true, m
	}
	return false, m
}

// handleDialogKey drives the format dialog opened by the ShowFormatDialog
// effect: up/down moves the cursor, enter toggles and applies, escape
// closes without applying further changes.
func (m model) handleDialogKey(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyUp:
		if m.dialog.cursor > 0 {
			m.dialog.cursor--
		}
	case tea.KeyDown:
		if m.dialog.cursor < len(formatDialogOptions)-1 {
			m.dialog.cursor++
		}
	case tea.KeyEnter:
		m.dialog.patch = m.dialog.toggleOption()
		m.applyFormatToActiveRange(m.dialog.patch)
	case tea.KeyEsc:
		m.dialog = formatDialog{}
	}
	return m
}

func matchesKey(b interface{ Keys() []string }, msg tea.KeyMsg) bool {
	s := msg.String()
	for _, k := range b.Keys() {
		if k == s {
			return true
		}
	}
	return false
}

func keyEventFromTea(msg tea.KeyMsg) keyboard.KeyEvent {
	ev := keyboard.KeyEvent{Ctrl: isCtrlKey(msg), Alt: msg.Alt}
	switch msg.Type {
	case tea.KeyUp:
		ev.Key = keyboard.KeyArrowUp
	case tea.KeyDown:
		ev.Key = keyboard.KeyArrowDown
	case tea.KeyLeft:
		ev.Key = keyboard.KeyArrowLeft
	case tea.KeyRight:
		ev.Key = keyboard.KeyArrowRight
	case tea.KeyPgUp:
		ev.Key = keyboard.KeyPageUp
	case tea.KeyPgDown:
		ev.Key = keyboard.KeyPageDown
	case tea.KeyHome, tea.KeyCtrlHome:
		ev.Key = keyboard.KeyHome
	case tea.KeyEnd, tea.KeyCtrlEnd:
		ev.Key = keyboard.KeyEnd
	case tea.KeyTab:
		ev.Key = keyboard.KeyTab
	case tea.KeyShiftTab:
		ev.Key = keyboard.KeyTab
		ev.Shift = true
	case tea.KeyEnter:
		ev.Key = keyboard.KeyEnter
	case tea.KeyF2:
		ev.Key = keyboard.KeyF2
	case tea.KeyEsc:
		ev.Key = keyboard.KeyEscape
	case tea.KeyDelete:
		ev.Key = keyboard.KeyDelete
	case tea.KeyBackspace:
		ev.Key = keyboard.KeyBackspace
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			ev.Rune = msg.Runes[0]
			ev.HasRune = true
		}
	case tea.KeySpace:
		ev.Rune = ' '
		ev.HasRune = true
	default:
		if letter, ok := ctrlLetter(msg.Type); ok {
			ev.Key = letter
			ev.Ctrl = true
		}
	}
	if msg.Alt {
		ev.Alt = true
	}
	return ev
}

// ctrlLetter maps bubbletea's dedicated Ctrl+letter KeyTypes (it encodes
// modifier+letter as distinct KeyType values rather than a separate
// modifier bit) back onto the lowercase letter the translator's table keys on.
func ctrlLetter(t tea.KeyType) (string, bool) {
	switch t {
	case tea.KeyCtrlA:
		return "a", true
	case tea.KeyCtrlB:
		return "b", true
	case tea.KeyCtrlC:
		return "c", true
	case tea.KeyCtrlI:
		return "i", true
	case tea.KeyCtrlU:
		return "u", true
	case tea.KeyCtrlV:
		return "v", true
	case tea.KeyCtrlX:
		return "x", true
	case tea.KeyCtrlY:
		return "y", true
	case tea.KeyCtrlZ:
		return "z", true
	default:
		return "", false
	}
}

// isCtrlKey reports whether msg is a bubbletea ctrl-combo, used for
// named keys (Home/End) whose ctrl variant is a distinct KeyType.
func isCtrlKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyCtrlHome, tea.KeyCtrlEnd:
		return true
	default:
		_, ok := ctrlLetter(msg.Type)
		return ok
	}
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row, col := m.rnd.PointToCell(m.viewport(), float64(msg.X), float64(msg.Y-2))
	now := time.Now().UnixNano()

	// While building a formula, a click on the grid inserts a cell
	// reference at the caret instead of moving the sheet's selection.
	if msg.Action == tea.MouseActionPress && m.edit.Mode() == editmode.ModePoint && row >= 0 && col >= 0 {
		m.edit.InsertReference(row, col)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ins := m.ptr.Down(pointer.DownEvent{X: float64(msg.X), Y: float64(msg.Y), Row: row, Col: col, Shift: msg.Shift, Ctrl: msg.Ctrl, Kind: pointer.KindMouse, AtUnixNano: now})
		return m.applyIntents(ins), nil
	case tea.MouseActionMotion:
		ins := m.ptr.Move(pointer.MoveEvent{X: float64(msg.X), Y: float64(msg.Y), Row: row, Col: col, AtUnixNano: now})
		return m.applyIntents(ins), nil
	case tea.MouseActionRelease:
		ins := m.ptr.Up(pointer.UpEvent{X: float64(msg.X), Y: float64(msg.Y), Row: row, Col: col, AtUnixNano: now})
		return m.applyIntents(ins), nil
	}
	return m, nil
}

func (m model) applyIntents(ins []intent.Intent) model {
	cur := m
	for _, in := range ins {
		cur = cur.applyIntent(in)
	}
	return cur
}

func (m model) applyIntent(in intent.Intent) model {
	res := m.handler.Reduce(m.sel, in, intent.Context{IsEditing: m.edit.IsEditing()})
	m.sel = res.State
	return m.applyEffects(res.Effects)
}

// applyEffects interprets every non-zero field of an intent.Effects
// value, the central dispatch this host exists to implement: the
// reducer decides *what* should happen, the host decides how to carry
// it out against the edit-mode manager, journal, store, merge index,
// and geometry index.
func (m model) applyEffects(eff intent.Effects) model {
	if eff.ScrollTo != nil {
		m.scrollToCell(*eff.ScrollTo)
	}
	if eff.BeginEditCell != nil {
		if existing, ok := m.cells.GetCell(eff.BeginEditCell.Row, eff.BeginEditCell.Col); ok && !eff.BeginEditHasSeed {
			m.edit.BeginEdit(*eff.BeginEditCell, cellSourceText(existing))
		} else {
			m.edit.StartEdit(*eff.BeginEditCell, eff.BeginEditSeed, eff.BeginEditHasSeed)
		}
	}
	if eff.ConfirmEdit {
		m.confirmEdit()
	}
	if eff.CancelEdit {
		m.edit.CancelEdit()
	}
	if eff.Clipboard != nil {
		m.status = fmt.Sprintf("clipboard: %v", *eff.Clipboard)
	}
	if eff.DeleteContents {
		m.deleteActiveRange()
	}
	if eff.ApplyFormat != nil {
		m.applyFormatToActiveRange(*eff.ApplyFormat)
	}
	if eff.UndoRedo != nil {
		m.runUndoRedo(*eff.UndoRedo)
	}
	if eff.MergeCells {
		m.mergeActiveRange()
	}
	if eff.UnmergeCells {
		if r, ok := m.activeRange(); ok {
			m.merges.Unmerge(r.StartRow, r.StartCol)
		}
	}
	if eff.InsertRows != nil {
		// rows/cols are allocated up to cellmodel.MaxRow/MaxCol at
		// construction (see newModel), so no capacity growth is needed;
		// shifting existing row sizes/content down is out of this demo's
		// scope (no formula-reference rewriting is wired in either).
		m.status = fmt.Sprintf("insert %d row(s) at %d", eff.InsertRows.Count, eff.InsertRows.Row)
	}
	if eff.InsertColumns != nil {
		m.status = fmt.Sprintf("insert %d column(s) at %d", eff.InsertColumns.Count, eff.InsertColumns.Col)
	}
	if eff.ShowFormatDialog {
		m.dialog = formatDialog{visible: true}
	}
	if eff.OpenFindReplace != nil {
		m.status = "find/replace requested"
	}
	if eff.OpenSortDialog {
		m.status = "sort dialog requested"
	}
	if eff.OpenDataValidation {
		m.status = "data validation requested"
	}
	if eff.OpenFilterDropdown != nil {
		m.status = fmt.Sprintf("filter dropdown requested for column %d", eff.OpenFilterDropdown.Col)
	}
	if eff.ShowContextMenu != nil {
		m.status = fmt.Sprintf("context menu requested at row %d col %d", eff.ShowContextMenu.Row, eff.ShowContextMenu.Col)
	}
	return m
}

func (m *model) scrollToCell(c cellmodel.Coord) {
	rowTop := m.rows.OffsetOf(c.Row)
	rowBot := rowTop + m.rows.EffectiveSize(c.Row)
	if rowTop < m.scrollY {
		m.scrollY = rowTop
	} else if rowBot > m.scrollY+float64(m.height-3)*22 {
		m.scrollY = rowBot - float64(m.height-3)*22
	}
	colLeft := m.cols.OffsetOf(c.Col)
	colRight := colLeft + m.cols.EffectiveSize(c.Col)
	if colLeft < m.scrollX {
		m.scrollX = colLeft
	} else if colRight > m.scrollX+float64(m.width)*9 {
		m.scrollX = colRight - float64(m.width)*9
	}
}

func (m *model) confirmEdit() {
	cell, buffer, ok := m.edit.ConfirmEdit()
	if !ok {
		return
	}
	next := cellFromSourceText(buffer)
	cmd := &setCellCommand{Store: m.cells, Row: cell.Row, Col: cell.Col, Next: next}
	if err := m.jrnl.Push(cmd); err != nil {
		m.status = fmt.Sprintf("edit failed: %v", err)
	}
}

func (m *model) activeRange() (cellmodel.Range, bool) {
	if len(m.sel.Ranges) == 0 {
		return cellmodel.Range{}, false
	}
	r := m.sel.Ranges[len(m.sel.Ranges)-1]
	return r.Normalized(), true
}

func (m *model) deleteActiveRange() {
	r, ok := m.activeRange()
	if !ok {
		r = cellmodel.Range{StartRow: m.sel.ActiveCell.Row, StartCol: m.sel.ActiveCell.Col, EndRow: m.sel.ActiveCell.Row, EndCol: m.sel.ActiveCell.Col}
	}
	if err := m.jrnl.Push(&deleteRangeCommand{Store: m.cells, Range: r}); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
	}
}

func (m *model) applyFormatToActiveRange(f cellmodel.Format) {
	r, ok := m.activeRange()
	if !ok {
		r = cellmodel.Range{StartRow: m.sel.ActiveCell.Row, StartCol: m.sel.ActiveCell.Col, EndRow: m.sel.ActiveCell.Row, EndCol: m.sel.ActiveCell.Col}
	}
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			cur, _ := m.cells.GetCell(row, col)
			merged := mergeFormatInto(cur.Format, f)
			cur.Format = &merged
			if err := m.cells.SetCell(row, col, cur); err != nil {
				m.status = fmt.Sprintf("format failed: %v", err)
				return
			}
		}
	}
}

// mergeFormatInto overlays patch's non-zero fields onto base (or onto a
// fresh Format if base is nil), the same overlay shape the renderer's
// mergeFormat helper uses for conditional formatting.
func mergeFormatInto(base *cellmodel.Format, patch cellmodel.Format) cellmodel.Format {
	var out cellmodel.Format
	if base != nil {
		out = *base
	}
	if patch.Bold {
		out.Bold = true
	}
	if patch.Italic {
		out.Italic = true
	}
	if patch.Underline {
		out.Underline = true
	}
	if patch.Color != "" {
		out.Color = patch.Color
	}
	if patch.Background != "" {
		out.Background = patch.Background
	}
	if patch.Align != cellmodel.AlignAuto {
		out.Align = patch.Align
	}
	return out
}

func (m *model) mergeActiveRange() {
	r, ok := m.activeRange()
	if !ok {
		return
	}
	_ = m.merges.Merge(r.StartRow, r.StartCol, r.EndRow-r.StartRow+1, r.EndCol-r.StartCol+1)
}

func (m *model) runUndoRedo(op intent.UndoRedoOp) {
	var cmd journal.Command
	var err error
	if op == intent.OpUndo {
		cmd, err = m.jrnl.Undo()
	} else {
		cmd, err = m.jrnl.Redo()
	}
	if err != nil {
		m.status = fmt.Sprintf("%v", err)
		return
	}
	m.status = cmd.Description()
}

func (m model) viewport() render.Viewport {
	return render.Viewport{
		Width: float64(m.width), Height: float64(m.height - 3),
		ScrollX: m.scrollX, ScrollY: m.scrollY,
		FrozenRows: 1, FrozenCols: 0,
		OverscanRows: m.cfg.Engine.OverscanRows, OverscanCols: m.cfg.Engine.OverscanCols,
		MaxRow: int(m.cfg.Engine.MaxRow), MaxCol: int(m.cfg.Engine.MaxCol),
	}
}

// cellSourceText returns what the edit buffer should be seeded with when
// reopening an existing cell: the formula source if present, else the
// raw (unformatted) value.
func cellSourceText(c cellmodel.Cell) string {
	if c.IsFormula() {
		return c.Formula
	}
	switch c.Value.Kind {
	case cellmodel.ValueNumber:
		return trimFloat(c.Value.Number)
	case cellmodel.ValueBool:
		if c.Value.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return c.Value.Text
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// cellFromSourceText turns a confirmed edit buffer back into a Cell.
// Number/formula parsing beyond this is out of the demo host's scope --
// there is no evaluator wired in, so a formula's DisplayValue is left
// blank until SeedDemoData-style precomputation fills it in.
func cellFromSourceText(s string) cellmodel.Cell {
	if len(s) > 0 && s[0] == '=' {
		return cellmodel.Cell{
			Value:      cellmodel.Value{Kind: cellmodel.ValueString, Text: s},
			Formula:    s,
			HasFormula: true,
		}
	}
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err == nil && fmt.Sprintf("%g", f) == s {
		return cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: f}}
	}
	return cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueString, Text: s}}
}
