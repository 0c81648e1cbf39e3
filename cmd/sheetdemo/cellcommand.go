// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"fmt"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/store"
)

// setCellCommand is a journal.Command wrapping one cell write, grounded
// on journal.ApplyFilterCommand's shape: snapshot whatever was there
// before Apply so Revert can restore it exactly.
type setCellCommand struct {
	Store    *store.Store
	Row, Col int
	Next     cellmodel.Cell

	prior    cellmodel.Cell
	hadPrior bool
}

func (c *setCellCommand) Description() string {
	return fmt.Sprintf("edit cell row %d col %d", c.Row, c.Col)
}

func (c *setCellCommand) Apply() error {
	c.prior, c.hadPrior = c.Store.GetCell(c.Row, c.Col)
	return c.Store.SetCell(c.Row, c.Col, c.Next)
}

func (c *setCellCommand) Revert() error {
	if c.hadPrior {
		return c.Store.SetCell(c.Row, c.Col, c.prior)
	}
	return c.Store.DeleteCell(c.Row, c.Col)
}

func (c *setCellCommand) MemorySize() int64 {
	return int64(64 + len(c.Next.Value.Text) + len(c.Next.Formula) + len(c.prior.Value.Text) + len(c.prior.Formula))
}

func (c *setCellCommand) CoalesceKey() (string, bool) {
	return fmt.Sprintf("edit-cell-%d-%d", c.Row, c.Col), true
}

// deleteRangeCommand clears every cell in a rectangular range, snapshotting
// the whole range so Revert restores it in one shot -- the bulk-operation
// analogue of setCellCommand, needed for DeleteContents/clipboard-cut
// effects that span more than one cell.
type deleteRangeCommand struct {
	Store *store.Store
	Range cellmodel.Range

	prior map[[2]int]cellmodel.Cell
}

func (c *deleteRangeCommand) Description() string { return "clear contents" }

func (c *deleteRangeCommand) Apply() error {
	c.prior = make(map[[2]int]cellmodel.Cell)
	for row := c.Range.StartRow; row <= c.Range.EndRow; row++ {
		for col := c.Range.StartCol; col <= c.Range.EndCol; col++ {
			if cell, ok := c.Store.GetCell(row, col); ok {
				c.prior[[2]int{row, col}] = cell
			}
			if err := c.Store.DeleteCell(row, col); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *deleteRangeCommand) Revert() error {
	for k, cell := range c.prior {
		if err := c.Store.SetCell(k[0], k[1], cell); err != nil {
			return err
		}
	}
	return nil
}

func (c *deleteRangeCommand) MemorySize() int64 {
	return int64(64 + 48*len(c.prior))
}

func (c *deleteRangeCommand) CoalesceKey() (string, bool) { return "", false }
