// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package store is cmd/sheetdemo's concrete, persisted CellDataSource:
// a SQLite-backed sheet, following a Store/Open/AutoMigrate/SeedDefaults/
// SeedDemoData shape generalized from a
// fixed set of house-inventory tables to one cells table keyed by
// coordinate. The engine itself (internal/cellmodel and everything built
// on it) never imports this package -- it consumes the CellDataSource
// interface, and cmd/sheetdemo is the only caller that knows a SQLite
// file is involved.
package store

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/diag"
	"github.com/latticesheet/sheetcore/internal/sqlitedialect"
)

// Store is a SQLite-backed cellmodel.CellDataSource plus the mutation API
// cmd/sheetdemo's intent/journal wiring needs to actually change cells.
// Reads are served from an in-memory cache kept in lockstep with the
// database, since VirtualRenderer calls GetCell/HasContent once per
// visible cell every frame and a round trip per call would make
// scrolling unusable -- a screen that pages through a handful of rows
// via GORM queries directly has no need for such a cache, but a
// renderer repainting a full viewport every frame is a different
// access pattern.
type Store struct {
	db  *gorm.DB
	log *diag.Log

	mu      sync.RWMutex
	cells   map[[2]int]cellRecord
	version uint64
}

// Version returns a counter bumped on every SetCell/DeleteCell/Restore,
// letting a render.Renderer wrapping this store invalidate its memoized
// frame on writes that leave the viewport itself unchanged.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Open opens (creating if necessary) a SQLite database at path and
// returns a Store ready for AutoMigrate. log may be nil.
func Open(path string, log *diag.Log) (*Store, error) {
	db, err := gorm.Open(
		sqlitedialect.Open(path, "PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, fmt.Errorf("open sheet db: %w", err)
	}
	return &Store{db: db, log: log, cells: make(map[[2]int]cellRecord)}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the cells table, then loads its
// contents into the in-memory cache.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&cellRecord{}); err != nil {
		return fmt.Errorf("migrate cells table: %w", err)
	}
	return s.reload()
}

func (s *Store) reload() error {
	var rows []cellRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return fmt.Errorf("load cells: %w", err)
	}
	s.mu.Lock()
	s.cells = make(map[[2]int]cellRecord, len(rows))
	for _, r := range rows {
		s.cells[[2]int{r.Row, r.Col}] = r
	}
	s.version++
	s.mu.Unlock()
	s.log.Append(diag.LevelDebug, "store: loaded %d cells from disk", len(rows))
	return nil
}

// GetCell implements cellmodel.CellDataSource.
func (s *Store) GetCell(row, col int) (cellmodel.Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.cells[[2]int{row, col}]
	if !ok {
		return cellmodel.Cell{}, false
	}
	return r.toCell(), true
}

// HasContent implements cellmodel.CellDataSource.
func (s *Store) HasContent(row, col int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.cells[[2]int{row, col}]
	return ok && cellmodel.ValueKind(r.ValueKind) != cellmodel.ValueEmpty
}

// GetUsedRange implements cellmodel.CellDataSource: the smallest
// rectangle containing every persisted coordinate.
func (s *Store) GetUsedRange() (cellmodel.Range, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.cells) == 0 {
		return cellmodel.Range{}, false
	}
	first := true
	var rng cellmodel.Range
	for k := range s.cells {
		if first {
			rng = cellmodel.Range{StartRow: k[0], StartCol: k[1], EndRow: k[0], EndCol: k[1]}
			first = false
			continue
		}
		if k[0] < rng.StartRow {
			rng.StartRow = k[0]
		}
		if k[0] > rng.EndRow {
			rng.EndRow = k[0]
		}
		if k[1] < rng.StartCol {
			rng.StartCol = k[1]
		}
		if k[1] > rng.EndCol {
			rng.EndCol = k[1]
		}
	}
	return rng, true
}

// GetRowsInColumn implements cellmodel.CellDataSource.
func (s *Store) GetRowsInColumn(col int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []int
	for k := range s.cells {
		if k[1] == col {
			rows = append(rows, k[0])
		}
	}
	sort.Ints(rows)
	return rows
}

// GetColumnsInRow implements cellmodel.CellDataSource.
func (s *Store) GetColumnsInRow(row int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cols []int
	for k := range s.cells {
		if k[0] == row {
			cols = append(cols, k[1])
		}
	}
	sort.Ints(cols)
	return cols
}

// SetCell persists c at (row, col), replacing whatever was there.
// Writing a blank cell (the empty-value sentinel) deletes the row,
// keeping the table as sparse as cellmodel.MemStore keeps its map.
func (s *Store) SetCell(row, col int, c cellmodel.Cell) error {
	if isBlank(c) {
		return s.DeleteCell(row, col)
	}

	rec := recordFor(row, col, c)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing cellRecord
		found := tx.Where("row = ? AND col = ?", row, col).First(&existing).Error == nil
		if found {
			rec.ID = existing.ID
			return tx.Save(&rec).Error
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("set cell (%d,%d): %w", row, col, err)
	}

	s.mu.Lock()
	s.cells[[2]int{row, col}] = rec
	s.version++
	s.mu.Unlock()
	s.log.Append(diag.LevelDebug, "store: set cell (%d,%d)", row, col)
	return nil
}

// DeleteCell removes any persisted row at (row, col). Deleting a cell
// with no row is a no-op, not an error.
func (s *Store) DeleteCell(row, col int) error {
	if err := s.db.Where("row = ? AND col = ?", row, col).Delete(&cellRecord{}).Error; err != nil {
		return fmt.Errorf("delete cell (%d,%d): %w", row, col, err)
	}
	s.mu.Lock()
	delete(s.cells, [2]int{row, col})
	s.version++
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep-enough copy of the whole sheet for
// CommandJournal-style reversible bulk operations (e.g. paste, clear
// range): a coordinate -> Cell map independent of the live cache.
func (s *Store) Snapshot() map[[2]int]cellmodel.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[[2]int]cellmodel.Cell, len(s.cells))
	for k, r := range s.cells {
		out[k] = r.toCell()
	}
	return out
}

// Restore replaces the entire sheet's contents with a prior Snapshot,
// writing through to SQLite inside one transaction, then refreshes the
// in-memory cache from the result.
func (s *Store) Restore(snap map[[2]int]cellmodel.Cell) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&cellRecord{}).Error; err != nil {
			return fmt.Errorf("clear cells: %w", err)
		}
		for k, c := range snap {
			if isBlank(c) {
				continue
			}
			rec := recordFor(k[0], k[1], c)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("restore cell (%d,%d): %w", k[0], k[1], err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.reload()
}
