// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package diag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDisabledLogDropsEverything(t *testing.T) {
	l := New(0)
	l.Append(LevelError, "boom")
	assert.Empty(t, l.Entries())
}

func TestVerbosityGatesLevel(t *testing.T) {
	l := New(1)
	l.now = fixedClock(time.Unix(0, 0))
	l.Append(LevelDebug, "should be dropped")
	l.Append(LevelInfo, "kept")
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, "kept", l.Entries()[0].Message)
}

func TestDebugVerbosityAllowsDebug(t *testing.T) {
	l := New(2)
	l.Append(LevelDebug, "trace %d", 7)
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, "trace 7", l.Entries()[0].Message)
}

func TestRingBufferBoundsEntries(t *testing.T) {
	l := New(2)
	for i := 0; i < 600; i++ {
		l.Append(LevelInfo, "entry %d", i)
	}
	entries := l.Entries()
	require.Len(t, entries, 500)
	assert.Equal(t, "entry 100", entries[0].Message)
	assert.Equal(t, "entry 599", entries[len(entries)-1].Message)
}

func TestFilterMatchesSubsetAndReportsValidity(t *testing.T) {
	l := New(2)
	l.Append(LevelInfo, "intent SetActiveCell")
	l.Append(LevelInfo, "intent NavigateCell")
	assert.Equal(t, "no filter", l.ValidityLabel())

	l.SetFilter("Navigate")
	require.NoError(t, l.FilterError())
	assert.Equal(t, "valid", l.ValidityLabel())
	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "intent NavigateCell", entries[0].Message)

	l.SetFilter("(unterminated")
	assert.Error(t, l.FilterError())
	assert.Contains(t, l.ValidityLabel(), "invalid")

	l.SetFilter("")
	assert.NoError(t, l.FilterError())
	assert.Len(t, l.Entries(), 2)
}
