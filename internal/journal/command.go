// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

// Command is one reversible action on the journal's domain. Apply
// and Revert together must be a fixed point: applying then
// reverting leaves every field Command touches exactly as it found it.
type Command interface {
	Description() string
	Apply() error
	Revert() error
	MemorySize() int64

	// CoalesceKey identifies the conceptual action for merge-on-push
	// (e.g. "edit cell R2C3"); ok is false for commands that never
	// coalesce (the starter commands here don't name a key, so
	// they return false).
	CoalesceKey() (key string, ok bool)
}

// ApplyFilterCommand sets column's predicate, snapshotting whatever was
// there before so Revert can restore it exactly.
type ApplyFilterCommand struct {
	Filters   *FilterMap
	Column    int
	Predicate Predicate

	prior    Predicate
	hadPrior bool
}

func (c *ApplyFilterCommand) Description() string {
	return "apply filter"
}

func (c *ApplyFilterCommand) Apply() error {
	c.prior, c.hadPrior = c.Filters.Get(c.Column)
	c.Filters.Set(c.Column, c.Predicate)
	return nil
}

func (c *ApplyFilterCommand) Revert() error {
	if c.hadPrior {
		c.Filters.Set(c.Column, c.prior)
	} else {
		c.Filters.Clear(c.Column)
	}
	return nil
}

func (c *ApplyFilterCommand) MemorySize() int64 {
	return 48 + c.Predicate.memorySize() + c.prior.memorySize()
}

func (c *ApplyFilterCommand) CoalesceKey() (string, bool) { return "", false }

// ClearAllFiltersCommand snapshots the full filter map, then clears it.
type ClearAllFiltersCommand struct {
	Filters *FilterMap

	prior map[int]Predicate
}

func (c *ClearAllFiltersCommand) Description() string {
	return "clear all filters"
}

func (c *ClearAllFiltersCommand) Apply() error {
	c.prior = c.Filters.Snapshot()
	c.Filters.ClearAll()
	return nil
}

func (c *ClearAllFiltersCommand) Revert() error {
	c.Filters.Restore(c.prior)
	return nil
}

func (c *ClearAllFiltersCommand) MemorySize() int64 {
	var n int64 = 32
	for _, p := range c.prior {
		n += 8 + p.memorySize()
	}
	return n
}

func (c *ClearAllFiltersCommand) CoalesceKey() (string, bool) { return "", false }
