// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

func TestCellSourceTextPrefersFormulaOverValue(t *testing.T) {
	c := cellmodel.Cell{
		Value:      cellmodel.Value{Kind: cellmodel.ValueNumber, Number: 99},
		Formula:    "=A1+A2",
		HasFormula: true,
	}
	assert.Equal(t, "=A1+A2", cellSourceText(c))
}

func TestCellSourceTextByValueKind(t *testing.T) {
	assert.Equal(t, "3.5", cellSourceText(cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: 3.5}}))
	assert.Equal(t, "TRUE", cellSourceText(cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueBool, Bool: true}}))
	assert.Equal(t, "FALSE", cellSourceText(cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueBool, Bool: false}}))
	assert.Equal(t, "hi", cellSourceText(cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueString, Text: "hi"}}))
}

func TestCellFromSourceTextParsesFormula(t *testing.T) {
	c := cellFromSourceText("=A1+1")
	assert.True(t, c.HasFormula)
	assert.Equal(t, "=A1+1", c.Formula)
}

func TestCellFromSourceTextParsesNumber(t *testing.T) {
	c := cellFromSourceText("42")
	assert.False(t, c.HasFormula)
	assert.Equal(t, cellmodel.ValueNumber, c.Value.Kind)
	assert.Equal(t, 42.0, c.Value.Number)
}

func TestCellFromSourceTextFallsBackToString(t *testing.T) {
	c := cellFromSourceText("hello world")
	assert.Equal(t, cellmodel.ValueString, c.Value.Kind)
	assert.Equal(t, "hello world", c.Value.Text)
}

func TestCellFromSourceTextRoundTripsThroughCellSourceText(t *testing.T) {
	for _, s := range []string{"=SUM(A1:A2)", "3.14", "plain text"} {
		got := cellSourceText(cellFromSourceText(s))
		assert.Equal(t, s, got)
	}
}

func TestCtrlLetterKnownKeys(t *testing.T) {
	letter, ok := ctrlLetter(tea.KeyCtrlZ)
	assert.True(t, ok)
	assert.Equal(t, "z", letter)
}

func TestCtrlLetterUnknownKeyType(t *testing.T) {
	_, ok := ctrlLetter(tea.KeyRunes)
	assert.False(t, ok)
}

func TestIsCtrlKeyRecognizesNamedAndLetterCombos(t *testing.T) {
	assert.True(t, isCtrlKey(tea.KeyMsg{Type: tea.KeyCtrlHome}))
	assert.True(t, isCtrlKey(tea.KeyMsg{Type: tea.KeyCtrlA}))
	assert.False(t, isCtrlKey(tea.KeyMsg{Type: tea.KeyRunes}))
}
