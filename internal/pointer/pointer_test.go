// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package pointer

import (
	"testing"
	"time"

	"github.com/latticesheet/sheetcore/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		DragThresholdPx: 3,
		LongPressNanos:  int64(500 * time.Millisecond),
		LongPressPx:     10,
	}
}

func TestPlainClickEmitsSetActiveCellThenBeginEditOnUp(t *testing.T) {
	tr := New(testConfig())
	ins := tr.Down(DownEvent{X: 10, Y: 10, Row: 2, Col: 3})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.SetActiveCell{Row: 2, Col: 3}, ins[0])

	ins = tr.Up(UpEvent{X: 10, Y: 10, Row: 2, Col: 3})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.BeginEdit{}, ins[0])
}

func TestShiftClickExtendsAndDoesNotEditOnUp(t *testing.T) {
	tr := New(testConfig())
	ins := tr.Down(DownEvent{X: 0, Y: 0, Row: 5, Col: 5, Shift: true})
	assert.Equal(t, intent.ExtendSelection{Row: 5, Col: 5}, ins[0])

	ins = tr.Up(UpEvent{X: 0, Y: 0, Row: 5, Col: 5})
	assert.Empty(t, ins)
}

func TestCtrlClickAddsRange(t *testing.T) {
	tr := New(testConfig())
	ins := tr.Down(DownEvent{Row: 1, Col: 1, Ctrl: true})
	assert.Equal(t, intent.AddRange{Row: 1, Col: 1}, ins[0])
}

func TestSubThresholdMoveEmitsNothing(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0})
	ins := tr.Move(MoveEvent{X: 1, Y: 1, Row: 0, Col: 0})
	assert.Empty(t, ins)
}

func TestCrossingThresholdBeginsDragThenUpdates(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0})
	ins := tr.Move(MoveEvent{X: 10, Y: 0, Row: 0, Col: 2})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.BeginDragSelection{Row: 0, Col: 0}, ins[0])

	ins = tr.Move(MoveEvent{X: 20, Y: 0, Row: 0, Col: 4})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.UpdateDragSelection{Row: 0, Col: 4}, ins[0])

	ins = tr.Up(UpEvent{X: 20, Y: 0, Row: 0, Col: 4})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.EndDragSelection{}, ins[0])
}

func TestDragSuppressesSingleClickEdit(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0})
	tr.Move(MoveEvent{X: 10, Y: 0, Row: 0, Col: 2})
	ins := tr.Up(UpEvent{X: 10, Y: 0, Row: 0, Col: 2})
	assert.Equal(t, intent.EndDragSelection{}, ins[0])
}

func TestFillHandleDragEmitsFillIntents(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 3, Col: 1, OnFillHandle: true})
	ins := tr.Move(MoveEvent{X: 0, Y: 10, Row: 5, Col: 1})
	require.Len(t, ins, 1)
	assert.Equal(t, intent.BeginFillDrag{Row: 3, Col: 1}, ins[0])

	ins = tr.Move(MoveEvent{X: 0, Y: 20, Row: 7, Col: 1})
	assert.Equal(t, intent.UpdateFillDrag{Row: 7, Col: 1}, ins[0])

	ins = tr.Up(UpEvent{X: 0, Y: 20, Row: 7, Col: 1})
	assert.Equal(t, intent.EndFillDrag{Row: 7, Col: 1}, ins[0])
}

func TestLongPressOnTouchFiresContextMenuAndAbortsDrag(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 2, Col: 2, Kind: KindTouch, AtUnixNano: 0})

	in, ok := tr.CheckLongPress(int64(400*time.Millisecond), 2, 2)
	assert.False(t, ok)
	assert.Nil(t, in)

	in, ok = tr.CheckLongPress(int64(600*time.Millisecond), 2, 2)
	require.True(t, ok)
	assert.Equal(t, intent.ShowContextMenu{Row: 2, Col: 2}, in)

	// Further movement/up produce nothing: the gesture is consumed.
	ins := tr.Move(MoveEvent{X: 50, Y: 50, Row: 9, Col: 9})
	assert.Empty(t, ins)
	ins = tr.Up(UpEvent{X: 50, Y: 50, Row: 9, Col: 9})
	assert.Empty(t, ins)
}

func TestLongPressNotFiredIfMovedTooFar(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0, Kind: KindTouch, AtUnixNano: 0})
	in, ok := tr.CheckLongPress(int64(600*time.Millisecond), 50, 50)
	assert.False(t, ok)
	assert.Nil(t, in)
}

func TestLongPressIgnoredForMouse(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0, Kind: KindMouse, AtUnixNano: 0})
	in, ok := tr.CheckLongPress(int64(600*time.Millisecond), 0, 0)
	assert.False(t, ok)
	assert.Nil(t, in)
}

func TestEdgeBandDetectsLowAndHighAndNeither(t *testing.T) {
	dx, dy := EdgeBand(5, 5, 500, 400, 40)
	assert.Equal(t, -1, dx)
	assert.Equal(t, -1, dy)

	dx, dy = EdgeBand(480, 390, 500, 400, 40)
	assert.Equal(t, 1, dx)
	assert.Equal(t, 1, dy)

	dx, dy = EdgeBand(250, 200, 500, 400, 40)
	assert.Equal(t, 0, dx)
	assert.Equal(t, 0, dy)
}

func TestDownResetsPriorGestureState(t *testing.T) {
	tr := New(testConfig())
	tr.Down(DownEvent{X: 0, Y: 0, Row: 0, Col: 0})
	tr.Move(MoveEvent{X: 10, Y: 0, Row: 0, Col: 2})
	require.True(t, tr.dragging)

	tr.Down(DownEvent{X: 100, Y: 100, Row: 9, Col: 9})
	assert.False(t, tr.dragging)
	assert.True(t, tr.Active())
}
