// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package diag is the engine's ambient diagnostic log: a small ring buffer
// of leveled entries with a live Perl-compatible regex filter. The engine
// itself is silent by contract -- render never fails, the
// reducer never errors -- so this exists for hosts that want visibility
// into intent/effect traffic without the engine depending on any
// particular logging framework.
package diag

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexp2/syntax"
)

// Level orders log entries from most to least severe for the max-level gate.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// Entry is one recorded log line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Log is a bounded, filterable ring buffer of Entry values. The zero value
// is a disabled log (Append is a no-op); use New to enable one.
type Log struct {
	enabled    bool
	maxLevel   Level
	maxEntries int
	filter     *regexp2.Regexp
	filterErr  error
	entries    []Entry
	now        func() time.Time
}

// New creates an enabled Log with the given verbosity: 0 disables it (the
// zero value is returned), 1 allows Info and Error, 2+ also allows Debug.
func New(verbosity int) *Log {
	if verbosity <= 0 {
		return &Log{}
	}
	maxLevel := LevelInfo
	if verbosity >= 2 {
		maxLevel = LevelDebug
	}
	return &Log{
		enabled:    true,
		maxLevel:   maxLevel,
		maxEntries: 500,
		now:        time.Now,
	}
}

// SetFilter compiles pattern as a live regex filter over future Entries'
// Message field (via Matches). An empty pattern clears the filter.
func (l *Log) SetFilter(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		l.filter = nil
		l.filterErr = nil
		return
	}
	re, err := regexp2.Compile(pattern, 0)
	if err != nil {
		l.filterErr = err
		l.filter = nil
		return
	}
	l.filter = re
	l.filterErr = nil
}

// FilterError returns the last SetFilter compile error, if any.
func (l *Log) FilterError() error { return l.filterErr }

// Append records a leveled entry, dropping it if the log is disabled,
// level exceeds the configured verbosity, or the message is blank.
func (l *Log) Append(level Level, format string, args ...any) {
	if l == nil || !l.enabled || level > l.maxLevel {
		return
	}
	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	if message == "" {
		return
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.entries = append(l.entries, Entry{Time: now(), Level: level, Message: message})
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}
}

// Entries returns the entries currently matching the live filter, in
// chronological order. With no filter set, all entries match.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	if l.filter == nil || l.filterErr != nil {
		out := make([]Entry, len(l.entries))
		copy(out, l.entries)
		return out
	}
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		ok, err := l.filter.MatchString(e.Message)
		if err == nil && ok {
			out = append(out, e)
		}
	}
	return out
}

// ValidityLabel summarizes filter compile state for a host's status line.
func (l *Log) ValidityLabel() string {
	if l == nil {
		return "no filter"
	}
	if l.filterErr != nil {
		if parseErr, ok := l.filterErr.(*syntax.Error); ok {
			return fmt.Sprintf("invalid: %s", parseErr.Code.String())
		}
		message := l.filterErr.Error()
		message = strings.TrimPrefix(message, "error parsing regexp: ")
		message = strings.TrimPrefix(message, "error parsing regex: ")
		return fmt.Sprintf("invalid: %s", message)
	}
	if l.filter == nil {
		return "no filter"
	}
	return "valid"
}
