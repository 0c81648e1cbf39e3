// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package store

import "github.com/latticesheet/sheetcore/internal/cellmodel"

// cellRecord is the persisted row for one non-empty cell. A spreadsheet's
// used range is typically sparse and tall (a few thousand populated rows
// out of 2^20), so each cell gets its own row keyed by (row, col) rather
// than one row per sheet -- the same modeling choice a normalized
// per-entity table makes (one row per Project, Vendor, ...), just
// keyed by coordinate instead of an identity column.
type cellRecord struct {
	ID  uint `gorm:"primaryKey"`
	Row int  `gorm:"uniqueIndex:idx_cell_coord"`
	Col int  `gorm:"uniqueIndex:idx_cell_coord"`

	ValueKind int
	Number    float64
	Bool      bool
	Text      string
	ErrorCode string

	Formula      string
	HasFormula   bool
	DisplayValue string
	HasDisplay   bool

	HasFormat    bool
	FontFamily   string
	FontSize     float64
	Bold         bool
	Italic       bool
	Underline    bool
	Color        string
	Background   string
	Align        int
	Wrap         bool
	NumberFormat string

	HasBorderTop bool
	BorderTopW   int
	BorderTopCol string
	BorderTopSty string

	HasBorderRgt bool
	BorderRgtW   int
	BorderRgtCol string
	BorderRgtSty string

	HasBorderBtm bool
	BorderBtmW   int
	BorderBtmCol string
	BorderBtmSty string

	HasBorderLft bool
	BorderLftW   int
	BorderLftCol string
	BorderLftSty string

	MergeRole int
	RowSpan   int
	ColSpan   int
	AnchorRow int
	AnchorCol int
}

func (cellRecord) TableName() string { return "cells" }

// toCell converts the flat persisted row back into a cellmodel.Cell.
func (r cellRecord) toCell() cellmodel.Cell {
	c := cellmodel.Cell{
		Value: cellmodel.Value{
			Kind:   cellmodel.ValueKind(r.ValueKind),
			Number: r.Number,
			Bool:   r.Bool,
			Text:   r.Text,
			Error:  r.ErrorCode,
		},
		Formula:      r.Formula,
		HasFormula:   r.HasFormula,
		DisplayValue: r.DisplayValue,
		HasDisplay:   r.HasDisplay,
		MergeRole:    cellmodel.MergeRole(r.MergeRole),
		RowSpan:      r.RowSpan,
		ColSpan:      r.ColSpan,
		AnchorRow:    r.AnchorRow,
		AnchorCol:    r.AnchorCol,
	}
	if r.HasFormat {
		c.Format = &cellmodel.Format{
			FontFamily:   r.FontFamily,
			FontSize:     r.FontSize,
			Bold:         r.Bold,
			Italic:       r.Italic,
			Underline:    r.Underline,
			Color:        r.Color,
			Background:   r.Background,
			Align:        cellmodel.Alignment(r.Align),
			Wrap:         r.Wrap,
			NumberFormat: r.NumberFormat,
			HasBorderTop: r.HasBorderTop,
			HasBorderRgt: r.HasBorderRgt,
			HasBorderBtm: r.HasBorderBtm,
			HasBorderLft: r.HasBorderLft,
			BorderTop:    cellmodel.BorderStyle{Width: r.BorderTopW, Color: r.BorderTopCol, Style: r.BorderTopSty},
			BorderRight:  cellmodel.BorderStyle{Width: r.BorderRgtW, Color: r.BorderRgtCol, Style: r.BorderRgtSty},
			BorderBottom: cellmodel.BorderStyle{Width: r.BorderBtmW, Color: r.BorderBtmCol, Style: r.BorderBtmSty},
			BorderLeft:   cellmodel.BorderStyle{Width: r.BorderLftW, Color: r.BorderLftCol, Style: r.BorderLftSty},
		}
	}
	return c
}

// recordFor flattens c into a cellRecord for (row, col), leaving ID unset
// (the caller fills it in on update).
func recordFor(row, col int, c cellmodel.Cell) cellRecord {
	r := cellRecord{
		Row: row, Col: col,
		ValueKind: int(c.Value.Kind),
		Number:    c.Value.Number,
		Bool:      c.Value.Bool,
		Text:      c.Value.Text,
		ErrorCode: c.Value.Error,

		Formula:      c.Formula,
		HasFormula:   c.HasFormula,
		DisplayValue: c.DisplayValue,
		HasDisplay:   c.HasDisplay,

		MergeRole: int(c.MergeRole),
		RowSpan:   c.RowSpan,
		ColSpan:   c.ColSpan,
		AnchorRow: c.AnchorRow,
		AnchorCol: c.AnchorCol,
	}
	if c.Format != nil {
		f := c.Format
		r.HasFormat = true
		r.FontFamily = f.FontFamily
		r.FontSize = f.FontSize
		r.Bold = f.Bold
		r.Italic = f.Italic
		r.Underline = f.Underline
		r.Color = f.Color
		r.Background = f.Background
		r.Align = int(f.Align)
		r.Wrap = f.Wrap
		r.NumberFormat = f.NumberFormat
		r.HasBorderTop = f.HasBorderTop
		r.BorderTopW, r.BorderTopCol, r.BorderTopSty = f.BorderTop.Width, f.BorderTop.Color, f.BorderTop.Style
		r.HasBorderRgt = f.HasBorderRgt
		r.BorderRgtW, r.BorderRgtCol, r.BorderRgtSty = f.BorderRight.Width, f.BorderRight.Color, f.BorderRight.Style
		r.HasBorderBtm = f.HasBorderBtm
		r.BorderBtmW, r.BorderBtmCol, r.BorderBtmSty = f.BorderBottom.Width, f.BorderBottom.Color, f.BorderBottom.Style
		r.HasBorderLft = f.HasBorderLft
		r.BorderLftW, r.BorderLftCol, r.BorderLftSty = f.BorderLeft.Width, f.BorderLeft.Color, f.BorderLeft.Style
	}
	return r
}

// isBlank reports whether c carries no content worth persisting a row
// for, mirroring cellmodel.MemStore.Set's sparse-delete rule.
func isBlank(c cellmodel.Cell) bool {
	return c.Value.IsEmpty() && !c.HasFormula && c.Format == nil && c.MergeRole == cellmodel.MergeNone
}
