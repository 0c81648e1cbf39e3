// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package journal implements CommandJournal: a
// bounded, coalescing LIFO undo/redo stack of reversible commands.
package journal

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/latticesheet/sheetcore/internal/diag"
	"github.com/latticesheet/sheetcore/internal/sheeterr"
)

// Config bounds the journal's history (default policy: 64
// MiB or 500 commands, whichever binds first) and the coalescing window.
type Config struct {
	MaxBytes       int64
	MaxCommands    int
	CoalesceWindow time.Duration
}

// DefaultConfig returns the journal's documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxBytes:       64 * 1024 * 1024,
		MaxCommands:    500,
		CoalesceWindow: 500 * time.Millisecond,
	}
}

type entry struct {
	cmd      Command
	pushedAt time.Time
}

// Journal is the LIFO undo stack plus its redo tail, grounded on a
// pushUndo/popUndo/pushRedo/popRedo shape, generalized from
// entity-snapshot undoEntry values to the Command
// interface and given a real memory budget instead of a fixed 50-entry
// cap.
type Journal struct {
	cfg   Config
	undo  []entry
	redo  []entry
	bytes int64
	log   *diag.Log
}

// New returns an empty Journal. log may be nil; when present, eviction
// and undo/redo activity are recorded at diag.LevelDebug.
func New(cfg Config, log *diag.Log) *Journal {
	return &Journal{cfg: cfg, log: log}
}

// UndoDepth and RedoDepth report the current stack sizes.
func (j *Journal) UndoDepth() int { return len(j.undo) }
func (j *Journal) RedoDepth() int { return len(j.redo) }

// Push applies cmd and pushes it onto the undo stack, truncating the
// redo tail ( "a new mutation truncates the redo tail").
// If cmd's coalesce key matches the current top-of-stack entry's and the
// two were pushed within the configured window, they merge into one
// entry instead of growing the stack.
func (j *Journal) Push(cmd Command) error {
	if err := cmd.Apply(); err != nil {
		return err
	}
	j.redo = nil
	now := j.clock()

	if key, ok := cmd.CoalesceKey(); ok && len(j.undo) > 0 {
		top := j.undo[len(j.undo)-1]
		if topKey, topOk := top.cmd.CoalesceKey(); topOk && topKey == key && now.Sub(top.pushedAt) <= j.cfg.CoalesceWindow {
			j.bytes -= top.cmd.MemorySize()
			merged := &coalescedCommand{older: top.cmd, newer: cmd}
			j.undo[len(j.undo)-1] = entry{cmd: merged, pushedAt: top.pushedAt}
			j.bytes += merged.MemorySize()
			j.evict()
			if j.log != nil {
				j.log.Append(diag.LevelDebug, "journal: coalesced %q (key %q)", cmd.Description(), key)
			}
			return nil
		}
	}

	j.undo = append(j.undo, entry{cmd: cmd, pushedAt: now})
	j.bytes += cmd.MemorySize()
	j.evict()
	if j.log != nil {
		j.log.Append(diag.LevelDebug, "journal: pushed %q (%s used)", cmd.Description(), humanize.Bytes(uint64(j.bytes)))
	}
	return nil
}

// clock is overridden by tests that need deterministic coalescing windows.
var nowFunc = time.Now

func (j *Journal) clock() time.Time { return nowFunc() }

// Undo pops the top undo entry, reverts it, and pushes it onto the redo
// stack. It returns sheeterr.ErrIllegalState if the undo stack is empty.
func (j *Journal) Undo() (Command, error) {
	if len(j.undo) == 0 {
		return nil, sheeterr.ErrIllegalState
	}
	e := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]
	j.bytes -= e.cmd.MemorySize()
	if err := e.cmd.Revert(); err != nil {
		return nil, err
	}
	j.redo = append(j.redo, e)
	if j.log != nil {
		j.log.Append(diag.LevelDebug, "journal: undid %q", e.cmd.Description())
	}
	return e.cmd, nil
}

// Redo pops the top redo entry, re-applies it, and pushes it back onto
// the undo stack. It returns sheeterr.ErrIllegalState if the redo stack
// is empty.
func (j *Journal) Redo() (Command, error) {
	if len(j.redo) == 0 {
		return nil, sheeterr.ErrIllegalState
	}
	e := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]
	if err := e.cmd.Apply(); err != nil {
		return nil, err
	}
	j.undo = append(j.undo, entry{cmd: e.cmd, pushedAt: j.clock()})
	j.bytes += e.cmd.MemorySize()
	j.evict()
	if j.log != nil {
		j.log.Append(diag.LevelDebug, "journal: redid %q", e.cmd.Description())
	}
	return e.cmd, nil
}

// evict drops the oldest undo entries until the journal fits within its
// configured memory and command-count budget (whichever binds first).
// Evicted commands are simply forgotten, not reverted --
// they remain applied to the domain; only the ability to undo past that
// point is lost, exactly as a bounded history implies.
func (j *Journal) evict() {
	for (j.bytes > j.cfg.MaxBytes || len(j.undo) > j.cfg.MaxCommands) && len(j.undo) > 0 {
		oldest := j.undo[0]
		j.undo = j.undo[1:]
		j.bytes -= oldest.cmd.MemorySize()
		if j.log != nil {
			j.log.Append(diag.LevelDebug, "journal: evicted %q (budget %s)", oldest.cmd.Description(), humanize.Bytes(uint64(j.cfg.MaxBytes)))
		}
	}
}

// coalescedCommand merges two adjacent pushes sharing a coalesce key
// within the window into one undo entry. Revert restores to the state
// before the OLDER command (the start of the coalesced run, not just the
// most recent keystroke), since older.Revert() unconditionally restores
// its own pre-Apply snapshot regardless of what's mutated the domain
// since. Apply is only called on Redo (Push has already applied both
// commands before merging them): it replays older.Apply() and then
// newer.Apply(), so the whole coalesced run is redone.
type coalescedCommand struct {
	older, newer Command
}

func (c *coalescedCommand) Description() string        { return c.newer.Description() }
func (c *coalescedCommand) Apply() error {
	if err := c.older.Apply(); err != nil {
		return err
	}
	return c.newer.Apply()
}
func (c *coalescedCommand) Revert() error               { return c.older.Revert() }
func (c *coalescedCommand) MemorySize() int64          { return c.newer.MemorySize() }
func (c *coalescedCommand) CoalesceKey() (string, bool) { return c.newer.CoalesceKey() }
