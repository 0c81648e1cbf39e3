// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package cellmodel

import "sort"

// MemStore is a sparse, in-memory CellDataSource and mutation API. It
// exists for the engine's own tests -- the engine treats the real CellDataSource as an external collaborator,
// but the engine needs *some* concrete implementation to test against.
type MemStore struct {
	cells   map[[2]int]Cell
	version uint64
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{cells: make(map[[2]int]Cell)}
}

// Set stores (or overwrites) the cell at (row, col). Setting a zero Cell
// with an empty Value removes it, keeping the store truly sparse.
func (s *MemStore) Set(row, col int, c Cell) {
	key := [2]int{row, col}
	s.version++
	if c.Value.IsEmpty() && !c.HasFormula && c.Format == nil && c.MergeRole == MergeNone {
		delete(s.cells, key)
		return
	}
	s.cells[key] = c
}

// Version returns a counter bumped on every Set/Restore, letting a
// VirtualRenderer holding this store detect data changes that leave the
// viewport itself unchanged.
func (s *MemStore) Version() uint64 { return s.version }

// GetCell implements CellDataSource.
func (s *MemStore) GetCell(row, col int) (Cell, bool) {
	c, ok := s.cells[[2]int{row, col}]
	return c, ok
}

// HasContent implements CellDataSource.
func (s *MemStore) HasContent(row, col int) bool {
	c, ok := s.cells[[2]int{row, col}]
	return ok && !c.Value.IsEmpty()
}

// GetUsedRange implements CellDataSource: the smallest rectangle
// containing every stored coordinate.
func (s *MemStore) GetUsedRange() (Range, bool) {
	if len(s.cells) == 0 {
		return Range{}, false
	}
	first := true
	var r Range
	for k := range s.cells {
		if first {
			r = Range{StartRow: k[0], StartCol: k[1], EndRow: k[0], EndCol: k[1]}
			first = false
			continue
		}
		if k[0] < r.StartRow {
			r.StartRow = k[0]
		}
		if k[0] > r.EndRow {
			r.EndRow = k[0]
		}
		if k[1] < r.StartCol {
			r.StartCol = k[1]
		}
		if k[1] > r.EndCol {
			r.EndCol = k[1]
		}
	}
	return r, true
}

// GetRowsInColumn implements CellDataSource.
func (s *MemStore) GetRowsInColumn(col int) []int {
	var rows []int
	for k := range s.cells {
		if k[1] == col {
			rows = append(rows, k[0])
		}
	}
	sort.Ints(rows)
	return rows
}

// GetColumnsInRow implements CellDataSource.
func (s *MemStore) GetColumnsInRow(row int) []int {
	var cols []int
	for k := range s.cells {
		if k[0] == row {
			cols = append(cols, k[1])
		}
	}
	sort.Ints(cols)
	return cols
}

// Snapshot returns a deep-enough copy for command-reversibility tests: a
// new map with the same (coord -> Cell) entries.
func (s *MemStore) Snapshot() map[[2]int]Cell {
	out := make(map[[2]int]Cell, len(s.cells))
	for k, v := range s.cells {
		out[k] = v
	}
	return out
}

// Restore replaces the store's contents with a prior Snapshot.
func (s *MemStore) Restore(snap map[[2]int]Cell) {
	s.cells = make(map[[2]int]Cell, len(snap))
	for k, v := range snap {
		s.cells[k] = v
	}
	s.version++
}
