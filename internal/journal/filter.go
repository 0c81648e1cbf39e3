// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

// Predicate is a column filter predicate: the set of raw cell values that
// pass, mirroring a UI pin model's filterPin shape, generalized from
// a UI-owned struct to a plain reversible
// value the journal can snapshot by copying.
type Predicate struct {
	Values []string
	Invert bool
}

func (p Predicate) clone() Predicate {
	if p.Values == nil {
		return Predicate{Invert: p.Invert}
	}
	v := make([]string, len(p.Values))
	copy(v, p.Values)
	return Predicate{Values: v, Invert: p.Invert}
}

// memorySize estimates the predicate's footprint for the journal's memory
// budget: each value string plus a constant per-entry map/slice overhead.
func (p Predicate) memorySize() int64 {
	var n int64 = 32
	for _, v := range p.Values {
		n += int64(len(v)) + 16
	}
	return n
}

// FilterMap holds the active per-column filter predicate set that
// ApplyFilterCommand and ClearAllFiltersCommand mutate. It has no
// concept of undo itself -- that's the journal's job -- it is
// only the domain object the two concrete commands snapshot and restore.
type FilterMap struct {
	byCol map[int]Predicate
}

// NewFilterMap returns an empty filter map.
func NewFilterMap() *FilterMap {
	return &FilterMap{byCol: make(map[int]Predicate)}
}

// Get returns the predicate for col, if any.
func (f *FilterMap) Get(col int) (Predicate, bool) {
	p, ok := f.byCol[col]
	return p, ok
}

// Set installs (or replaces) col's predicate.
func (f *FilterMap) Set(col int, p Predicate) {
	f.byCol[col] = p.clone()
}

// Clear removes col's predicate entirely.
func (f *FilterMap) Clear(col int) {
	delete(f.byCol, col)
}

// ClearAll removes every predicate.
func (f *FilterMap) ClearAll() {
	f.byCol = make(map[int]Predicate)
}

// Snapshot returns a deep copy of the current filter set, suitable for
// later restoring via Restore.
func (f *FilterMap) Snapshot() map[int]Predicate {
	snap := make(map[int]Predicate, len(f.byCol))
	for col, p := range f.byCol {
		snap[col] = p.clone()
	}
	return snap
}

// Restore replaces the current filter set with snap.
func (f *FilterMap) Restore(snap map[int]Predicate) {
	restored := make(map[int]Predicate, len(snap))
	for col, p := range snap {
		restored[col] = p.clone()
	}
	f.byCol = restored
}

// Active reports whether any column currently has a filter predicate.
func (f *FilterMap) Active() bool { return len(f.byCol) > 0 }

// Match reports whether value passes col's predicate (or passes
// vacuously if col has none), generalizing an OR-within-column /
// XOR-invert matchesAllPins semantics to a single column.
func (f *FilterMap) Match(col int, value string) bool {
	p, ok := f.byCol[col]
	if !ok {
		return true
	}
	matched := false
	for _, v := range p.Values {
		if v == value {
			matched = true
			break
		}
	}
	return matched != p.Invert
}
