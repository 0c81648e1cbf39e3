// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func TestDefaultEngineConfigMatchesSpecDefaults(t *testing.T) {
	d := DefaultEngineConfig()
	assert.Equal(t, int64(1<<20-1), d.MaxRow)
	assert.Equal(t, int64(1<<14-1), d.MaxCol)
	assert.Equal(t, 20, d.PageSize)
	assert.Equal(t, 2, d.OverscanRows)
	assert.Equal(t, 2, d.OverscanCols)
	assert.Equal(t, "right", d.TabDirection)
	assert.Equal(t, "down", d.EnterDirection)
	assert.InDelta(t, 0.5, d.ZoomMin, 1e-9)
	assert.InDelta(t, 2.0, d.ZoomMax, 1e-9)
	assert.InDelta(t, 0.1, d.ZoomStep, 1e-9)
	assert.Equal(t, 2048, d.MaxRanges)
	assert.Equal(t, 3, d.DragThresholdPx)
	assert.Equal(t, 40, d.AutoscrollEdge)
	assert.Equal(t, ByteSize(64*1024*1024), d.JournalMemoryBudget)
	assert.Equal(t, 500, d.JournalMaxCommands)
}

func TestFillZeroDefaultsRestoresUnsetFields(t *testing.T) {
	partial := EngineConfig{PageSize: 99}
	fillZeroDefaults(&partial)
	assert.Equal(t, 99, partial.PageSize)
	assert.Equal(t, DefaultEngineConfig().MaxRow, partial.MaxRow)
	assert.Equal(t, DefaultEngineConfig().MaxRanges, partial.MaxRanges)
	assert.Equal(t, DefaultEngineConfig().JournalMemoryBudget, partial.JournalMemoryBudget)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir() + "/does-not-exist.toml")
	assert.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), cfg.Engine)
}

func TestLoadFromPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.toml"
	assert.NoError(t, writeFile(path, "[engine]\npage_size = 50\n"))
	cfg, err := LoadFrom(path)
	assert.NoError(t, err)
	assert.Equal(t, 50, cfg.Engine.PageSize)
	assert.Equal(t, DefaultEngineConfig().MaxRanges, cfg.Engine.MaxRanges)
}
