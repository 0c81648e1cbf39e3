// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/latticesheet/sheetcore/internal/config"
	"github.com/latticesheet/sheetcore/internal/diag"
	"github.com/latticesheet/sheetcore/internal/store"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

type cliArgs struct {
	Run     runCmd           `cmd:"" default:"withargs" help:"Launch the grid TUI (default)."`
	Version kong.VersionFlag `                          help:"Show version and exit."         name:"version"`
}

type runCmd struct {
	DBPath    string `arg:"" optional:"" help:"SQLite database path. Defaults to an in-memory database." env:"SHEETDEMO_DB_PATH"`
	Demo      bool   `                   help:"Seed sample inventory data on startup."`
	Rows      int    `                   help:"Number of demo rows to generate with --demo."              default:"200"`
	Seed      uint64 `                   help:"Random seed for demo data generation."                     default:"1"`
	Verbosity int     `short:"v"         help:"Diagnostic log verbosity: 0=off 1=info 2=debug."          default:"0"`
}

func main() {
	var c cliArgs
	kctx := kong.Parse(&c,
		kong.Name(config.AppName),
		kong.Description("A terminal spreadsheet grid demo."),
		kong.UsageOnError(),
		kong.Vars{"version": versionString()},
	)
	if err := kctx.Run(); err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
}

func (cmd *runCmd) Run() error {
	dbPath := cmd.DBPath
	if dbPath == "" {
		dbPath = "file::memory:?cache=shared"
	}

	log := diag.New(cmd.Verbosity)

	cells, err := store.Open(dbPath, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = cells.Close() }()
	if err := cells.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if cmd.Demo {
		if err := cells.SeedDemoData(cmd.Seed, cmd.Rows); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m := newModel(cfg, log, cells)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// versionString returns the version for display. Release builds return
// the version set via ldflags. Dev builds return the short git commit
// hash (with a -dirty suffix if the tree was modified), or "dev" as a
// last resort.
func versionString() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	if dirty {
		return revision + "-dirty"
	}
	return revision
}
