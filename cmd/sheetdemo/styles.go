// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import "github.com/charmbracelet/lipgloss"

// Colorblind-safe palette (Wong). Dark/Light variants so the grid reads the same
// on both terminal backgrounds.
var (
	accent   = lipgloss.AdaptiveColor{Light: "#0072B2", Dark: "#56B4E9"}
	success  = lipgloss.AdaptiveColor{Light: "#007A5A", Dark: "#009E73"}
	danger   = lipgloss.AdaptiveColor{Light: "#CC3311", Dark: "#D55E00"}
	textDim  = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#6B7280"}
	surface  = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	onAccent = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"}
	border   = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

type styles struct {
	StatusBar   lipgloss.Style
	FormulaBar  lipgloss.Style
	CellDefault lipgloss.Style
	CellActive  lipgloss.Style
	CellRange   lipgloss.Style
	CellFrozen  lipgloss.Style
	CellBold    lipgloss.Style
	ModeNav     lipgloss.Style
	ModeEdit    lipgloss.Style
	HelpTitle   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		StatusBar: lipgloss.NewStyle().
			Foreground(onAccent).Background(accent).Padding(0, 1),
		FormulaBar: lipgloss.NewStyle().
			Foreground(textDim).Background(surface).Padding(0, 1),
		CellDefault: lipgloss.NewStyle(),
		CellActive: lipgloss.NewStyle().
			Foreground(onAccent).Background(accent).Bold(true),
		CellRange: lipgloss.NewStyle().Background(surface),
		CellFrozen: lipgloss.NewStyle().
			Foreground(textDim).BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).BorderRight(true),
		CellBold: lipgloss.NewStyle().Bold(true),
		ModeNav:  lipgloss.NewStyle().Foreground(success).Bold(true),
		ModeEdit: lipgloss.NewStyle().Foreground(danger).Bold(true),
		HelpTitle: lipgloss.NewStyle().
			Foreground(onAccent).Background(accent).Bold(true).Padding(0, 1),
	}
}
