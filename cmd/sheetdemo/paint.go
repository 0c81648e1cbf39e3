// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/editmode"
	"github.com/latticesheet/sheetcore/internal/intent"
	"github.com/latticesheet/sheetcore/internal/render"
)

const colWidth = 12

func (m model) View() string {
	if m.showHelp {
		return m.helpR.render(m.width)
	}

	frame := m.rnd.Render(m.viewport())
	grid := m.paintGrid(frame)

	var b strings.Builder
	b.WriteString(m.paintStatusBar())
	b.WriteByte('\n')
	b.WriteString(m.paintFormulaBar())
	b.WriteByte('\n')
	b.WriteString(grid)
	return composeFormatDialog(b.String(), m.dialog, m.styles)
}

// paintGrid renders frame's cells onto a fixed-width character grid: one
// column per visible sheet column, text truncated display-width-aware via
// ansi.Truncate the same way a bubbletea table view truncates cell text.
func (m model) paintGrid(frame render.Frame) string {
	byRow := make(map[int][]render.ViewportCell)
	rowsSeen := map[int]bool{}
	for _, c := range frame.Cells {
		byRow[c.Row] = append(byRow[c.Row], c)
		rowsSeen[c.Row] = true
	}

	rows := sortedKeys(rowsSeen)
	var lines []string
	for _, row := range rows {
		lines = append(lines, m.paintRow(row, byRow[row]))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (m model) paintRow(row int, cells []render.ViewportCell) string {
	byCol := make(map[int]render.ViewportCell, len(cells))
	maxCol := 0
	for _, c := range cells {
		byCol[c.Col] = c
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	var b strings.Builder
	for col := 0; col <= maxCol; col++ {
		c, ok := byCol[col]
		if !ok {
			b.WriteString(strings.Repeat(" ", colWidth))
			continue
		}
		b.WriteString(m.paintCell(row, col, c))
	}
	return b.String()
}

func (m model) paintCell(row, col int, c render.ViewportCell) string {
	text := displayText(c.Value)
	if cell, ok := m.cells.GetCell(row, col); ok && cell.HasDisplay {
		text = cell.DisplayValue
	}
	truncated := ansi.Truncate(text, colWidth-1, "…")
	style := m.styleForCell(row, col, c)
	aligned := alignText(truncated, colWidth, c.Align)
	return style.Render(aligned)
}

func displayText(v cellmodel.Value) string {
	switch v.Kind {
	case cellmodel.ValueEmpty:
		return ""
	case cellmodel.ValueNumber:
		return fmt.Sprintf("%g", v.Number)
	case cellmodel.ValueBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case cellmodel.ValueError:
		return v.Error
	default:
		return v.Text
	}
}

func alignText(s string, width int, align cellmodel.Alignment) string {
	w := lipgloss.Width(s)
	pad := width - w
	if pad < 0 {
		pad = 0
	}
	switch align {
	case cellmodel.AlignRight:
		return strings.Repeat(" ", pad) + s
	case cellmodel.AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

func (m model) styleForCell(row, col int, c render.ViewportCell) lipgloss.Style {
	style := m.styles.CellDefault
	if c.Format.Bold {
		style = style.Bold(true)
	}
	if c.Format.Italic {
		style = style.Italic(true)
	}
	if c.Format.Underline {
		style = style.Underline(true)
	}
	if c.Format.Color != "" {
		style = style.Foreground(lipgloss.Color(c.Format.Color))
	}
	if c.Format.Background != "" {
		style = style.Background(lipgloss.Color(c.Format.Background))
	}
	if c.Frozen {
		style = style.Inherit(m.styles.CellFrozen)
	}
	if m.sel.ActiveCell.Row == row && m.sel.ActiveCell.Col == col {
		style = m.styles.CellActive
	} else if inAnySelectionRange(m.sel.Ranges, row, col) {
		style = style.Inherit(m.styles.CellRange)
	}
	return style
}

func inAnySelectionRange(ranges []intent.SelectionRange, row, col int) bool {
	for _, r := range ranges {
		n := r.Normalized()
		if n.Contains(row, col) {
			return true
		}
	}
	return false
}

func (m model) paintStatusBar() string {
	mode := "NAV"
	modeStyle := m.styles.ModeNav
	switch m.edit.Mode() {
	case editmode.ModeEnter:
		mode = "ENTER"
		modeStyle = m.styles.ModeEdit
	case editmode.ModeEdit:
		mode = "EDIT"
		modeStyle = m.styles.ModeEdit
	case editmode.ModePoint:
		mode = "POINT"
		modeStyle = m.styles.ModeEdit
	}
	left := fmt.Sprintf("%s  %s", modeStyle.Render(mode), coordLabel(m.sel.ActiveCell.Row, m.sel.ActiveCell.Col))
	right := m.status
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	return m.styles.StatusBar.Render(left + strings.Repeat(" ", pad) + right)
}

func (m model) paintFormulaBar() string {
	if m.edit.IsEditing() {
		return m.styles.FormulaBar.Render(fmt.Sprintf("fx  %s", m.edit.Buffer()))
	}
	cell, _ := m.cells.GetCell(m.sel.ActiveCell.Row, m.sel.ActiveCell.Col)
	text := cellSourceText(cell)
	return m.styles.FormulaBar.Render(fmt.Sprintf("fx  %s", text))
}

func coordLabel(row, col int) string {
	return fmt.Sprintf("R%dC%d", row+1, col+1)
}
