// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package sheeterr defines the sentinel error kinds used
// for the engine's public mutation APIs. The reducer (internal/intent)
// never returns these -- it is total by contract -- but the data-store
// mutators (internal/geom, internal/merge) and the A1 parser do.
package sheeterr

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", ErrX) to attach context;
// callers match with errors.Is.
var (
	// ErrInvalidReference is returned when an A1 address string does not
	// match the required syntax. The parsed row/col are not checked
	// against maxRow/maxCol.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidMerge is returned when a merge region would overlap an
	// existing one, or when its span is non-positive or a single cell.
	ErrInvalidMerge = errors.New("invalid merge")

	// ErrInvalidArgument is returned for out-of-domain arguments that are
	// not coordinates (coordinates clamp; they never error) -- chiefly
	// negative row/column sizes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState is returned by CommandJournal's Undo and Redo when
	// the respective stack is empty. The journal does not track whether a
	// command was applied before it is reverted.
	ErrIllegalState = errors.New("illegal state")
)
