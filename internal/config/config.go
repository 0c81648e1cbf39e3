// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package config loads the engine and demo-host configuration from a TOML
// file (BurntSushi/toml for parsing, adrg/xdg for locating the config
// directory). It covers the grid engine's tunable knobs plus
// demo-host-only settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// AppName is used to derive the XDG config path and the demo database name.
const AppName = "sheetcore"

// EngineConfig mirrors the engine's enumerated configuration options.
type EngineConfig struct {
	MaxRow          int64    `toml:"max_row"`
	MaxCol          int64    `toml:"max_col"`
	PageSize        int      `toml:"page_size"`
	OverscanRows    int      `toml:"overscan_rows"`
	OverscanCols    int      `toml:"overscan_cols"`
	TabDirection    string   `toml:"tab_direction"`   // "right" or "left"
	EnterDirection  string   `toml:"enter_direction"` // "down" or "up"
	ZoomMin         float64  `toml:"zoom_min"`
	ZoomMax         float64  `toml:"zoom_max"`
	ZoomStep        float64  `toml:"zoom_step"`
	MetaAsCtrl      bool     `toml:"meta_as_ctrl"`
	MaxRanges       int      `toml:"max_ranges"`
	LongPress       Duration `toml:"long_press"`
	DragThresholdPx int      `toml:"drag_threshold_px"`
	AutoscrollEdge  int      `toml:"autoscroll_edge_px"`
	SelectAllDwell  Duration `toml:"select_all_dwell"` // Open Question (a); see DESIGN.md

	// JournalMemoryBudget and JournalMaxCommands bound the command
	// journal's history (whichever binds first); JournalCoalesceWindow is
	// how close in time two edits to the same cell must land to merge
	// into one undo step.
	JournalMemoryBudget   ByteSize `toml:"journal_memory_budget"`
	JournalMaxCommands    int      `toml:"journal_max_commands"`
	JournalCoalesceWindow Duration `toml:"journal_coalesce_window"`
}

// DefaultEngineConfig returns the engine's documented defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxRow:          1<<20 - 1,
		MaxCol:          1<<14 - 1,
		PageSize:        20,
		OverscanRows:    2,
		OverscanCols:    2,
		TabDirection:    "right",
		EnterDirection:  "down",
		ZoomMin:         0.5,
		ZoomMax:         2.0,
		ZoomStep:        0.1,
		MetaAsCtrl:      runtimeIsApple(),
		MaxRanges:       2048,
		LongPress:       Duration{500 * time.Millisecond},
		DragThresholdPx: 3,
		AutoscrollEdge:  40,
		SelectAllDwell:  Duration{1 * time.Second},

		JournalMemoryBudget:   ByteSize(64 * 1024 * 1024),
		JournalMaxCommands:    500,
		JournalCoalesceWindow: Duration{500 * time.Millisecond},
	}
}

// HostConfig holds settings that belong to cmd/sheetdemo, not the engine.
type HostConfig struct {
	DBPath string `toml:"db_path"`
	Theme  string `toml:"theme"`
}

// Config is the top-level TOML document.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Host   HostConfig   `toml:"host"`
}

// Path returns the resolved config file path under the XDG config home.
func Path() string {
	p, err := xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
	if err != nil {
		return filepath.Join(".", AppName+".toml")
	}
	return p
}

// Load reads and parses the config file at Path(). A missing file is not
// an error -- it yields DefaultEngineConfig() and a zero HostConfig.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and parses the config file at the given path. A missing
// file is not an error -- it yields DefaultEngineConfig() and a zero
// HostConfig.
func LoadFrom(path string) (Config, error) {
	cfg := Config{Engine: DefaultEngineConfig()}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	fillZeroDefaults(&cfg.Engine)
	return cfg, nil
}

// fillZeroDefaults restores documented defaults for any field a partial
// TOML file left at its Go zero value, since TOML has no notion of
// "unset" distinct from "zero" for these scalar types.
func fillZeroDefaults(e *EngineConfig) {
	d := DefaultEngineConfig()
	if e.MaxRow == 0 {
		e.MaxRow = d.MaxRow
	}
	if e.MaxCol == 0 {
		e.MaxCol = d.MaxCol
	}
	if e.PageSize == 0 {
		e.PageSize = d.PageSize
	}
	if e.TabDirection == "" {
		e.TabDirection = d.TabDirection
	}
	if e.EnterDirection == "" {
		e.EnterDirection = d.EnterDirection
	}
	if e.ZoomMax == 0 {
		e.ZoomMax = d.ZoomMax
	}
	if e.ZoomMin == 0 {
		e.ZoomMin = d.ZoomMin
	}
	if e.ZoomStep == 0 {
		e.ZoomStep = d.ZoomStep
	}
	if e.MaxRanges == 0 {
		e.MaxRanges = d.MaxRanges
	}
	if e.LongPress.Duration == 0 {
		e.LongPress = d.LongPress
	}
	if e.DragThresholdPx == 0 {
		e.DragThresholdPx = d.DragThresholdPx
	}
	if e.AutoscrollEdge == 0 {
		e.AutoscrollEdge = d.AutoscrollEdge
	}
	if e.SelectAllDwell.Duration == 0 {
		e.SelectAllDwell = d.SelectAllDwell
	}
	if e.JournalMemoryBudget == 0 {
		e.JournalMemoryBudget = d.JournalMemoryBudget
	}
	if e.JournalMaxCommands == 0 {
		e.JournalMaxCommands = d.JournalMaxCommands
	}
	if e.JournalCoalesceWindow.Duration == 0 {
		e.JournalCoalesceWindow = d.JournalCoalesceWindow
	}
}
