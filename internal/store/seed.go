// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package store

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
)

// sheetFaker wraps gofakeit with generators for plausible inventory-sheet
// rows: same "wrap *gofakeit.Faker, expose New(seed)" shape as a
// domain-specific faker, different output vocabulary.
type sheetFaker struct {
	f *gofakeit.Faker
}

func newSheetFaker(seed uint64) *sheetFaker {
	return &sheetFaker{f: gofakeit.New(seed)}
}

func (sf *sheetFaker) pick(items []string) string {
	return items[sf.f.IntN(len(items))]
}

var demoCategories = []string{
	"Fasteners", "Lumber", "Electrical", "Plumbing", "Paint", "Hardware",
	"Tools", "Adhesives", "Lighting", "Flooring",
}

// productName builds a plausible inventory SKU name from a category.
func (sf *sheetFaker) productName(category string) string {
	adjectives := []string{"Heavy-Duty", "Standard", "Premium", "Compact", "Industrial"}
	return fmt.Sprintf("%s %s %s", sf.pick(adjectives), category, sf.f.NounConcrete())
}

// demoRow is one generated inventory row before it's written as cells.
type demoRow struct {
	Name     string
	Category string
	Qty      int
	UnitCost float64
	Vendor   string
}

func (sf *sheetFaker) row() demoRow {
	category := sf.pick(demoCategories)
	return demoRow{
		Name:     sf.productName(category),
		Category: category,
		Qty:      sf.f.IntRange(0, 500),
		UnitCost: sf.f.Price(0.25, 400),
		Vendor:   sf.f.Company(),
	}
}

var headerLabels = []string{"Product", "Category", "Qty", "Unit Cost", "Total", "Vendor"}

const headerBackground = "#2d2d44"

func headerFormat() *cellmodel.Format {
	return &cellmodel.Format{
		Bold:       true,
		Color:      "#ffffff",
		Background: headerBackground,
		Align:      cellmodel.AlignCenter,
	}
}

// SeedDemoData populates an empty sheet with generated inventory data:
// a bold header row plus rowCount generated rows, with a formula cell
// for each row's Total column (Qty * Unit Cost). It is idempotent --
// if GetUsedRange already reports content, it returns immediately,
// guarding against reseeding an already-populated sheet.
func (s *Store) SeedDemoData(seed uint64, rowCount int) error {
	if _, ok := s.GetUsedRange(); ok {
		return nil
	}

	for col, label := range headerLabels {
		cell := cellmodel.Cell{
			Value:  cellmodel.Value{Kind: cellmodel.ValueString, Text: label},
			Format: headerFormat(),
		}
		if err := s.SetCell(0, col, cell); err != nil {
			return fmt.Errorf("seed header: %w", err)
		}
	}

	sf := newSheetFaker(seed)
	for i := 0; i < rowCount; i++ {
		row := i + 1
		r := sf.row()
		total := float64(r.Qty) * r.UnitCost

		cells := []cellmodel.Cell{
			{Value: cellmodel.Value{Kind: cellmodel.ValueString, Text: r.Name}},
			{Value: cellmodel.Value{Kind: cellmodel.ValueString, Text: r.Category}},
			{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: float64(r.Qty)}},
			{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: r.UnitCost}, HasDisplay: true, DisplayValue: fmt.Sprintf("$%.2f", r.UnitCost)},
			{
				Value:        cellmodel.Value{Kind: cellmodel.ValueNumber, Number: total},
				Formula:      fmt.Sprintf("=C%d*D%d", row+1, row+1),
				HasFormula:   true,
				HasDisplay:   true,
				DisplayValue: fmt.Sprintf("$%.2f", total),
			},
			{Value: cellmodel.Value{Kind: cellmodel.ValueString, Text: r.Vendor}},
		}
		for col, cell := range cells {
			if err := s.SetCell(row, col, cell); err != nil {
				return fmt.Errorf("seed row %d: %w", row, err)
			}
		}
	}
	return nil
}
