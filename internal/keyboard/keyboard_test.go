// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package keyboard

import (
	"testing"

	"github.com/latticesheet/sheetcore/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = Config{PageSize: 20}

func TestArrowPlainNavigatesNoExtendNoJump(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowRight}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirRight}, in)
}

func TestArrowCtrlJumps(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowDown, Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirDown, Jump: true}, in)
}

func TestArrowShiftExtends(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowUp, Shift: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirUp, Extend: true}, in)
}

func TestArrowCtrlShiftJumpsAndExtends(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowLeft, Ctrl: true, Shift: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirLeft, Jump: true, Extend: true}, in)
}

func TestArrowIgnoredOutsideNavigationMode(t *testing.T) {
	_, ok := Translate(KeyEvent{Key: KeyArrowRight}, ModeEditing, cfg)
	assert.False(t, ok)
}

func TestMetaTreatedAsCtrlWhenConfigured(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowDown, Meta: true}, ModeNavigation, Config{MetaAsCtrl: true, PageSize: 20})
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirDown, Jump: true}, in)
}

func TestMetaIgnoredWhenNotConfigured(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyArrowDown, Meta: true}, ModeNavigation, Config{MetaAsCtrl: false, PageSize: 20})
	require.True(t, ok)
	assert.Equal(t, intent.NavigateCell{Direction: intent.DirDown}, in)
}

func TestPageDownCarriesConfiguredPageSize(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyPageDown}, ModeNavigation, Config{PageSize: 37})
	require.True(t, ok)
	assert.Equal(t, intent.NavigatePage{Direction: intent.DirDown, PageSize: 37}, in)
}

func TestCtrlHomeIsDocumentLevel(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyHome, Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.NavigateHomeEnd{Target: intent.TargetHome, DocumentLevel: true}, in)
}

func TestTabWorksInEditingMode(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyTab}, ModeEditing, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.TabEnterNavigate{Key: intent.KeyTab}, in)
}

func TestShiftTabReverses(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyTab, Shift: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.TabEnterNavigate{Key: intent.KeyTab, Reverse: true}, in)
}

func TestF2StartsEditWithNoSeed(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyF2}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.StartEdit{}, in)
}

func TestEscapeAlwaysFires(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyEscape}, ModeEditing, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.EscapePressed{}, in)
}

func TestDeleteInvokesDeleteContents(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: KeyDelete}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.DeleteContents{}, in)
}

func TestCtrlCCopiesOnlyInNav(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: "c", Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.ClipboardAction{Action: intent.ClipboardCopy}, in)

	_, ok = Translate(KeyEvent{Key: "c", Ctrl: true}, ModeEditing, cfg)
	assert.False(t, ok)
}

func TestCtrlVPastesEvenWhileEditing(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: "v", Ctrl: true}, ModeEditing, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.ClipboardAction{Action: intent.ClipboardPaste}, in)
}

func TestCtrlZUndoesCtrlShiftZRedoes(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: "z", Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.UndoRedo{Op: intent.OpUndo}, in)

	in, ok = Translate(KeyEvent{Key: "z", Ctrl: true, Shift: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.UndoRedo{Op: intent.OpRedo}, in)
}

func TestCtrlAIsSelectAllCellsOnlyInNav(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: "a", Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.SelectAllCells{}, in)

	_, ok = Translate(KeyEvent{Key: "a", Ctrl: true}, ModeEditing, cfg)
	assert.False(t, ok)
}

func TestCtrlBAppliesBoldPatch(t *testing.T) {
	in, ok := Translate(KeyEvent{Key: "b", Ctrl: true}, ModeNavigation, cfg)
	require.True(t, ok)
	af, ok := in.(intent.ApplyFormat)
	require.True(t, ok)
	assert.True(t, af.Format.Bold)
}

func TestPrintableCharStartsEditWithSeedInNavOnly(t *testing.T) {
	in, ok := Translate(KeyEvent{Rune: 'x', HasRune: true}, ModeNavigation, cfg)
	require.True(t, ok)
	assert.Equal(t, intent.StartEdit{Seed: 'x', HasSeed: true}, in)

	_, ok = Translate(KeyEvent{Rune: 'x', HasRune: true}, ModeEditing, cfg)
	assert.False(t, ok)
}

func TestCtrlPrintableCharDoesNotStartEdit(t *testing.T) {
	_, ok := Translate(KeyEvent{Rune: 'q', HasRune: true, Ctrl: true}, ModeNavigation, cfg)
	assert.False(t, ok)
}

func TestComposingEventNeverTranslated(t *testing.T) {
	_, ok := Translate(KeyEvent{Rune: 'a', HasRune: true, IsComposing: true}, ModeNavigation, cfg)
	assert.False(t, ok)

	_, ok = Translate(KeyEvent{Rune: 'a', HasRune: true, KeyCode: 229}, ModeNavigation, cfg)
	assert.False(t, ok)
}

func TestUnmatchedKeyReturnsFalse(t *testing.T) {
	_, ok := Translate(KeyEvent{Key: "F13"}, ModeNavigation, cfg)
	assert.False(t, ok)
}
