// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package merge implements MergeIndex: lookup of merged
// cell regions by anchor or membership, with the invariant that no two
// merge regions overlap.
package merge

import (
	"fmt"
	"sort"

	"github.com/latticesheet/sheetcore/internal/sheeterr"
)

// Role classifies how a cell participates in a merge region.
type Role int

const (
	RoleNone Role = iota
	RoleAnchor
	RoleHidden
)

// Lookup is the result of querying a cell's merge participation.
type Lookup struct {
	Role     Role
	Row, Col int // the anchor's coordinates; equal to the query for RoleAnchor/RoleNone
	RowSpan  int // only meaningful for RoleAnchor
	ColSpan  int
}

// region is an anchor's span, stored once per merged range.
type region struct {
	row, col         int
	rowSpan, colSpan int
}

// interval is a half-open column range [start, end) belonging to one
// region, used for the per-row membership structure below
// ("per-row list of active column intervals").
type interval struct {
	start, end int // columns, half-open
	anchorRow  int
	anchorCol  int
}

// Index is the MergeIndex: an anchor map plus a per-row sorted interval
// list for O(log regions-per-row) membership queries, exactly the
// representation a merge index needs.
type Index struct {
	anchors map[[2]int]region
	rows    map[int][]interval // kept sorted by start; one entry per row spanned by some region
	version uint64
}

// Version returns a counter bumped on every Merge/Unmerge, letting a
// VirtualRenderer holding this index detect membership changes that
// leave the viewport itself unchanged.
func (idx *Index) Version() uint64 { return idx.version }

// New returns an empty MergeIndex.
func New() *Index {
	return &Index{
		anchors: make(map[[2]int]region),
		rows:    make(map[int][]interval),
	}
}

// Query reports row/col's merge participation.
func (idx *Index) Query(row, col int) Lookup {
	if r, ok := idx.anchors[[2]int{row, col}]; ok {
		return Lookup{Role: RoleAnchor, Row: row, Col: col, RowSpan: r.rowSpan, ColSpan: r.colSpan}
	}
	ivs := idx.rows[row]
	if i, ok := findInterval(ivs, col); ok {
		iv := ivs[i]
		return Lookup{Role: RoleHidden, Row: iv.anchorRow, Col: iv.anchorCol}
	}
	return Lookup{Role: RoleNone, Row: row, Col: col}
}

// findInterval binary-searches ivs (sorted by start) for the interval
// containing col, returning its index.
func findInterval(ivs []interval, col int) (int, bool) {
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].start > col })
	if i == 0 {
		return 0, false
	}
	i--
	if col < ivs[i].end {
		return i, true
	}
	return 0, false
}

// Merge creates a new merged region anchored at (row, col) spanning
// rowSpan x colSpan cells. Fails with sheeterr.ErrInvalidMerge if the
// region overlaps any existing region, or if the span is degenerate
// (<=1 in both dimensions -- nothing to merge).
func (idx *Index) Merge(row, col, rowSpan, colSpan int) error {
	if rowSpan < 1 || colSpan < 1 {
		return fmt.Errorf("%w: non-positive span (%d, %d)", sheeterr.ErrInvalidMerge, rowSpan, colSpan)
	}
	if rowSpan == 1 && colSpan == 1 {
		return fmt.Errorf("%w: 1x1 span is not a merge", sheeterr.ErrInvalidMerge)
	}
	if idx.overlaps(row, col, rowSpan, colSpan) {
		return fmt.Errorf("%w: region at (%d,%d)+(%d,%d) overlaps an existing merge", sheeterr.ErrInvalidMerge, row, col, rowSpan, colSpan)
	}
	idx.anchors[[2]int{row, col}] = region{row: row, col: col, rowSpan: rowSpan, colSpan: colSpan}
	for r := row; r < row+rowSpan; r++ {
		idx.insertInterval(r, interval{start: col, end: col + colSpan, anchorRow: row, anchorCol: col})
	}
	idx.version++
	return nil
}

func (idx *Index) insertInterval(row int, iv interval) {
	ivs := idx.rows[row]
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].start >= iv.start })
	ivs = append(ivs, interval{})
	copy(ivs[i+1:], ivs[i:])
	ivs[i] = iv
	idx.rows[row] = ivs
}

func (idx *Index) overlaps(row, col, rowSpan, colSpan int) bool {
	for r := row; r < row+rowSpan; r++ {
		ivs := idx.rows[r]
		// Any existing interval in this row that intersects [col, col+colSpan)?
		i := sort.Search(len(ivs), func(i int) bool { return ivs[i].end > col })
		if i < len(ivs) && ivs[i].start < col+colSpan {
			return true
		}
	}
	return false
}

// Unmerge removes the region anchored at (row, col). No-op if there is
// no such anchor.
func (idx *Index) Unmerge(row, col int) {
	r, ok := idx.anchors[[2]int{row, col}]
	if !ok {
		return
	}
	delete(idx.anchors, [2]int{row, col})
	for rr := r.row; rr < r.row+r.rowSpan; rr++ {
		ivs := idx.rows[rr]
		for i, iv := range ivs {
			if iv.anchorRow == row && iv.anchorCol == col {
				idx.rows[rr] = append(ivs[:i], ivs[i+1:]...)
				break
			}
		}
		if len(idx.rows[rr]) == 0 {
			delete(idx.rows, rr)
		}
	}
	idx.version++
}

// AnchorAt reports whether (row, col) is an anchor and, if so, its span.
func (idx *Index) AnchorAt(row, col int) (rowSpan, colSpan int, ok bool) {
	r, ok := idx.anchors[[2]int{row, col}]
	if !ok {
		return 0, 0, false
	}
	return r.rowSpan, r.colSpan, true
}

// Anchors returns every anchor currently registered, for snapshotting.
func (idx *Index) Anchors() []Lookup {
	out := make([]Lookup, 0, len(idx.anchors))
	for _, r := range idx.anchors {
		out = append(out, Lookup{Role: RoleAnchor, Row: r.row, Col: r.col, RowSpan: r.rowSpan, ColSpan: r.colSpan})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
