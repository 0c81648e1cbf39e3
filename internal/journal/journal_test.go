// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterCommand is a minimal reversible command used to exercise
// coalescing and the generic apply/revert fixed-point property, since
// only the filter commands are named elsewhere but the mechanism must
// work for any Command.
type counterCommand struct {
	counter  *int
	delta    int
	prior    int
	key      string
	coalesce bool
}

func (c *counterCommand) Description() string { return "increment" }
func (c *counterCommand) Apply() error {
	c.prior = *c.counter
	*c.counter += c.delta
	return nil
}
func (c *counterCommand) Revert() error {
	*c.counter = c.prior
	return nil
}
func (c *counterCommand) MemorySize() int64 { return 16 }
func (c *counterCommand) CoalesceKey() (string, bool) {
	return c.key, c.coalesce
}

func withClock(t *testing.T, at time.Time) func() {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return at }
	return func() { nowFunc = old }
}

func TestPushAppliesAndUndoReverts(t *testing.T) {
	n := 0
	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 5}))
	assert.Equal(t, 5, n)

	_, err := j.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRedoReappliesAfterUndo(t *testing.T) {
	n := 0
	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 3}))
	j.Undo()
	_, err := j.Redo()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNewPushTruncatesRedoTail(t *testing.T) {
	n := 0
	j := New(DefaultConfig(), nil)
	j.Push(&counterCommand{counter: &n, delta: 1})
	j.Undo()
	require.Equal(t, 1, j.RedoDepth())
	j.Push(&counterCommand{counter: &n, delta: 10})
	assert.Equal(t, 0, j.RedoDepth())
}

func TestUndoOnEmptyStackIsIllegalState(t *testing.T) {
	j := New(DefaultConfig(), nil)
	_, err := j.Undo()
	assert.Error(t, err)
}

func TestRedoOnEmptyStackIsIllegalState(t *testing.T) {
	j := New(DefaultConfig(), nil)
	_, err := j.Redo()
	assert.Error(t, err)
}

func TestCoalescingMergesWithinWindow(t *testing.T) {
	defer withClock(t, time.Unix(100, 0))()
	n := 0
	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:0,0", coalesce: true}))

	defer withClock(t, time.Unix(100, int64(200*time.Millisecond)))()
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:0,0", coalesce: true}))

	assert.Equal(t, 1, j.UndoDepth()) // merged into one entry
	assert.Equal(t, 2, n)

	_, err := j.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, n) // reverts to before the FIRST keystroke, not just the second
}

func TestCoalescingDoesNotMergeAcrossWindow(t *testing.T) {
	defer withClock(t, time.Unix(100, 0))()
	n := 0
	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:0,0", coalesce: true}))

	defer withClock(t, time.Unix(101, 0))() // 1s later, window is 500ms
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:0,0", coalesce: true}))

	assert.Equal(t, 2, j.UndoDepth())
}

func TestCoalescingDoesNotMergeDifferentKeys(t *testing.T) {
	n := 0
	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:0,0", coalesce: true}))
	require.NoError(t, j.Push(&counterCommand{counter: &n, delta: 1, key: "cell:1,1", coalesce: true}))
	assert.Equal(t, 2, j.UndoDepth())
}

func TestEvictionDropsOldestWhenCommandCountExceeded(t *testing.T) {
	n := 0
	j := New(Config{MaxBytes: 1 << 30, MaxCommands: 2, CoalesceWindow: time.Millisecond}, nil)
	j.Push(&counterCommand{counter: &n, delta: 1})
	j.Push(&counterCommand{counter: &n, delta: 2})
	j.Push(&counterCommand{counter: &n, delta: 3})
	assert.Equal(t, 2, j.UndoDepth())

	// Undoing now only reaches back to the second push, not the first
	// (it was evicted) -- n started effectively at 1 once history began.
	j.Undo()
	j.Undo()
	assert.Equal(t, 1, n)
}

func TestEvictionDropsOldestWhenByteBudgetExceeded(t *testing.T) {
	n := 0
	j := New(Config{MaxBytes: 20, MaxCommands: 1000, CoalesceWindow: time.Millisecond}, nil)
	j.Push(&counterCommand{counter: &n, delta: 1}) // 16 bytes
	j.Push(&counterCommand{counter: &n, delta: 1}) // 16 bytes, total 32 > 20
	assert.Equal(t, 1, j.UndoDepth())
}

func TestApplyFilterCommandIsFixedPointUnderApplyRevert(t *testing.T) {
	fm := NewFilterMap()
	fm.Set(0, Predicate{Values: []string{"open"}})
	before := fm.Snapshot()

	j := New(DefaultConfig(), nil)
	cmd := &ApplyFilterCommand{Filters: fm, Column: 0, Predicate: Predicate{Values: []string{"closed"}}}
	require.NoError(t, j.Push(cmd))
	p, ok := fm.Get(0)
	require.True(t, ok)
	assert.Equal(t, []string{"closed"}, p.Values)

	_, err := j.Undo()
	require.NoError(t, err)
	after := fm.Snapshot()
	assert.Equal(t, before, after)
}

func TestClearAllFiltersCommandIsFixedPointUnderApplyRevert(t *testing.T) {
	fm := NewFilterMap()
	fm.Set(0, Predicate{Values: []string{"a"}})
	fm.Set(1, Predicate{Values: []string{"b"}, Invert: true})
	before := fm.Snapshot()

	j := New(DefaultConfig(), nil)
	require.NoError(t, j.Push(&ClearAllFiltersCommand{Filters: fm}))
	assert.False(t, fm.Active())

	_, err := j.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, fm.Snapshot())
}

func TestInterleavedApplyUndoRedoSequence(t *testing.T) {
	fm := NewFilterMap()
	j := New(DefaultConfig(), nil)

	j.Push(&ApplyFilterCommand{Filters: fm, Column: 2, Predicate: Predicate{Values: []string{"x"}}})
	j.Push(&ClearAllFiltersCommand{Filters: fm})
	assert.False(t, fm.Active())

	j.Undo() // undoes ClearAll -> column 2 filter back
	p, ok := fm.Get(2)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, p.Values)

	j.Undo() // undoes ApplyFilter -> empty again
	assert.False(t, fm.Active())

	j.Redo() // reapplies ApplyFilter
	p, ok = fm.Get(2)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, p.Values)

	j.Redo() // reapplies ClearAll
	assert.False(t, fm.Active())
}
