// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

// formatDialog is the small modal the ShowFormatDialog effect opens: a
// checklist of the format toggles Ctrl+B/I/U already apply individually,
// composed over the grid with bubbletea-overlay rather than redrawing the
// whole screen around it.
type formatDialog struct {
	visible bool
	cursor  int
	patch   cellmodel.Format
}

var formatDialogOptions = []string{"Bold", "Italic", "Underline", "Center"}

func (d formatDialog) toggleOption() cellmodel.Format {
	p := d.patch
	switch formatDialogOptions[d.cursor] {
	case "Bold":
		p.Bold = !p.Bold
	case "Italic":
		p.Italic = !p.Italic
	case "Underline":
		p.Underline = !p.Underline
	case "Center":
		if p.Align == cellmodel.AlignCenter {
			p.Align = cellmodel.AlignAuto
		} else {
			p.Align = cellmodel.AlignCenter
		}
	}
	return p
}

// dialogContent renders the format dialog's body, a tea.Model wrapping a
// static view so it satisfies overlay.New's tea.Model foreground argument.
type dialogContent struct {
	dialog formatDialog
	styles styles
}

func (c dialogContent) Init() tea.Cmd                           { return nil }
func (c dialogContent) Update(tea.Msg) (tea.Model, tea.Cmd)      { return c, nil }
func (c dialogContent) View() string {
	var b strings.Builder
	b.WriteString(c.styles.HelpTitle.Render(" Format ") + "\n\n")
	for i, opt := range formatDialogOptions {
		marker := "[ ]"
		switch opt {
		case "Bold":
			if c.dialog.patch.Bold {
				marker = "[x]"
			}
		case "Italic":
			if c.dialog.patch.Italic {
				marker = "[x]"
			}
		case "Underline":
			if c.dialog.patch.Underline {
				marker = "[x]"
			}
		case "Center":
			if c.dialog.patch.Align == cellmodel.AlignCenter {
				marker = "[x]"
			}
		}
		line := fmt.Sprintf("%s %s", marker, opt)
		if i == c.dialog.cursor {
			line = c.styles.CellActive.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nenter: toggle  esc: close")
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(b.String())
}

// backgroundModel wraps a pre-rendered string as the overlay's background
// argument, which must itself be a tea.Model.
type backgroundModel struct{ view string }

func (b backgroundModel) Init() tea.Cmd                      { return nil }
func (b backgroundModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return b, nil }
func (b backgroundModel) View() string                       { return b.view }

// composeFormatDialog overlays the format dialog centered over grid,
// using bubbletea-overlay so the dialog never needs to know the grid's
// exact dimensions.
func composeFormatDialog(grid string, d formatDialog, st styles) string {
	if !d.visible {
		return grid
	}
	fg := dialogContent{dialog: d, styles: st}
	bg := backgroundModel{view: grid}
	ov := overlay.New(fg, bg, overlay.Center, overlay.Center, 0, 0)
	return ov.View()
}
