// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package geom implements DimensionIndex: a prefix-sum
// index mapping logical row/column indices to pixel offsets, with
// per-index overrides for custom sizes and hiding. One DimensionIndex
// instance covers a single axis (rows or columns); VirtualRenderer holds
// one for each.
package geom

import (
	"fmt"
	"sort"

	"github.com/latticesheet/sheetcore/internal/sheeterr"
)

// DimensionIndex answers the four core row/column layout questions in
// amortized O(log N): pixel offset of index i, index at pixel y, whether
// index i is hidden, and the effective size of index i.
//
// Representation: effectiveHeight(i) = hidden(i) ? 0 : (override[i] ??
// defaultSize). Rather than storing effectiveHeight directly and
// rebuilding the whole prefix sum whenever defaultSize changes, this
// keeps a Fenwick tree of *deltas* from
// defaultSize -- zero everywhere but the overridden/hidden indices -- so
// OffsetOf(i) = i*defaultSize + delta.prefixSum(i). Changing defaultSize
// moves every index whose size was never overridden for free; only the
// deltas of overridden/hidden indices are recomputed, so the cost of a
// default change grows with the number of such indices, not with N.
type DimensionIndex struct {
	defaultSize float64
	capacity    int // current Fenwick tree capacity; grown lazily
	delta       *fenwick
	overrides   map[int]float64
	hidden      map[int]bool
	hideOrder   []int // supplemented feature: UnhideLast stack (most-recent last)
}

// New returns a DimensionIndex over indices [0, capacity) with the given
// default size for any index without an override.
func New(capacity int, defaultSize float64) *DimensionIndex {
	if capacity < 0 {
		capacity = 0
	}
	return &DimensionIndex{
		defaultSize: defaultSize,
		capacity:    capacity,
		delta:       newFenwick(capacity),
		overrides:   make(map[int]float64),
		hidden:      make(map[int]bool),
	}
}

func (d *DimensionIndex) ensureCapacity(i int) {
	if i < d.capacity {
		return
	}
	newCap := d.capacity
	if newCap == 0 {
		newCap = 1
	}
	for newCap <= i {
		newCap *= 2
	}
	d.delta.grow(newCap)
	d.capacity = newCap
}

// deltaFor computes the delta that should be stored at i given its
// current override/hidden state.
func (d *DimensionIndex) deltaFor(i int) float64 {
	if d.hidden[i] {
		return -d.defaultSize
	}
	if size, ok := d.overrides[i]; ok {
		return size - d.defaultSize
	}
	return 0
}

func (d *DimensionIndex) setDelta(i int) {
	d.ensureCapacity(i)
	current := d.delta.prefixSum(i+1) - d.delta.prefixSum(i)
	want := d.deltaFor(i)
	if diff := want - current; diff != 0 {
		d.delta.add(i, diff)
	}
}

// SetSize sets index i's explicit size. Negative sizes fail; clearing
// an override is done via ClearSize, not SetSize(i, default).
func (d *DimensionIndex) SetSize(i int, size float64) error {
	if i < 0 {
		i = 0
	}
	if size < 0 {
		return fmt.Errorf("%w: negative size %v at index %d", sheeterr.ErrInvalidArgument, size, i)
	}
	d.overrides[i] = size
	d.setDelta(i)
	return nil
}

// ClearSize removes index i's override, reverting it to defaultSize.
func (d *DimensionIndex) ClearSize(i int) {
	if i < 0 {
		i = 0
	}
	delete(d.overrides, i)
	d.setDelta(i)
}

// SetDefaultSize changes the size used by every index without an
// explicit override. O(k log N) for k overridden/hidden indices: see the
// type doc comment.
func (d *DimensionIndex) SetDefaultSize(size float64) error {
	if size < 0 {
		return fmt.Errorf("%w: negative default size %v", sheeterr.ErrInvalidArgument, size)
	}
	d.defaultSize = size
	for i := range d.overrides {
		d.setDelta(i)
	}
	for i := range d.hidden {
		d.setDelta(i)
	}
	return nil
}

// SetHidden toggles whether index i is hidden (effective size 0).
// Hiding preserves any explicit override so unhiding restores it.
func (d *DimensionIndex) SetHidden(i int, hide bool) {
	if i < 0 {
		i = 0
	}
	wasHidden := d.hidden[i]
	if hide == wasHidden {
		return
	}
	if hide {
		d.hidden[i] = true
		d.hideOrder = append(d.hideOrder, i)
	} else {
		delete(d.hidden, i)
		d.removeFromHideOrder(i)
	}
	d.setDelta(i)
}

func (d *DimensionIndex) removeFromHideOrder(i int) {
	for idx, v := range d.hideOrder {
		if v == i {
			d.hideOrder = append(d.hideOrder[:idx], d.hideOrder[idx+1:]...)
			return
		}
	}
}

// UnhideLast unhides the most recently hidden index, grounded on a
// columnSpec.HideOrder-style stack. Returns the unhidden index, or
// (-1, false) if nothing is hidden.
func (d *DimensionIndex) UnhideLast() (int, bool) {
	if len(d.hideOrder) == 0 {
		return -1, false
	}
	i := d.hideOrder[len(d.hideOrder)-1]
	d.hideOrder = d.hideOrder[:len(d.hideOrder)-1]
	delete(d.hidden, i)
	d.setDelta(i)
	return i, true
}

// IsHidden reports whether index i is hidden.
func (d *DimensionIndex) IsHidden(i int) bool { return d.hidden[i] }

// EffectiveSize returns the pixel size used for index i: 0 if hidden,
// else its override if set, else defaultSize.
func (d *DimensionIndex) EffectiveSize(i int) float64 {
	if d.hidden[i] {
		return 0
	}
	if size, ok := d.overrides[i]; ok {
		return size
	}
	return d.defaultSize
}

// OffsetOf returns the pixel offset where index i begins: the sum of
// effective sizes of every index before it.
func (d *DimensionIndex) OffsetOf(i int) float64 {
	if i < 0 {
		i = 0
	}
	base := float64(i) * d.defaultSize
	if i <= d.capacity {
		return base + d.delta.prefixSum(i)
	}
	// Beyond the Fenwick tree's current capacity, nothing has ever been
	// overridden out there, so the delta contribution is the tree's total.
	return base + d.delta.total()
}

// IndexAtPixel returns the index whose [OffsetOf(i), OffsetOf(i+1)) span
// contains pixel y, via binary search on the prefix sum. Returns -1 if y
// is negative.
func (d *DimensionIndex) IndexAtPixel(y float64) int {
	if y < 0 {
		return -1
	}
	lo, hi := 0, d.upperSearchBound()
	for lo < hi {
		mid := (lo + hi) / 2
		if d.OffsetOf(mid+1) <= y {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperSearchBound returns an index guaranteed to be at or beyond any
// pixel offset a caller could plausibly query, growing geometrically with
// capacity so IndexAtPixel stays correct as the index is used further out
// than anything yet overridden.
func (d *DimensionIndex) upperSearchBound() int {
	bound := d.capacity
	if bound < 1<<20 {
		bound = 1 << 20
	}
	return bound
}

// TotalSize returns the total pixel extent of indices [0, count).
func (d *DimensionIndex) TotalSize(count int) float64 {
	return d.OffsetOf(count)
}

// HiddenIndexes returns the currently-hidden indices, sorted ascending.
func (d *DimensionIndex) HiddenIndexes() []int {
	out := make([]int, 0, len(d.hidden))
	for i := range d.hidden {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
