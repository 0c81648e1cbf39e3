// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package render

import (
	"testing"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/geom"
	"github.com/latticesheet/sheetcore/internal/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() (*Renderer, *cellmodel.MemStore) {
	store := cellmodel.NewMemStore()
	r := &Renderer{
		Rows:   geom.New(1000, 20),
		Cols:   geom.New(1000, 60),
		Cells:  store,
		Merges: merge.New(),
	}
	return r, store
}

func baseViewport() Viewport {
	return Viewport{
		Width: 595, Height: 395, // just short of an even row/col boundary
		OverscanRows: 0, OverscanCols: 0,
		MaxRow: 999, MaxCol: 999,
	}
}

func TestRenderEmitsExpectedCellCount(t *testing.T) {
	r, _ := newTestRenderer()
	frame := r.Render(baseViewport())
	// height 395 covers rows 0..19 (20 rows of 20px), width 595 covers
	// cols 0..9 (10 cols of 60px).
	assert.Len(t, frame.Cells, 20*10)
}

func TestRenderIncludesValuesFromStore(t *testing.T) {
	r, store := newTestRenderer()
	store.Set(0, 0, cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: 42}})
	frame := r.Render(baseViewport())
	var found bool
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			found = true
			assert.Equal(t, 42.0, c.Value.Number)
			assert.Equal(t, cellmodel.AlignRight, c.Align) // number defaults right
		}
	}
	assert.True(t, found)
}

func TestRenderRespectsOverscan(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	vp.OverscanRows = 2
	vp.OverscanCols = 3
	frame := r.Render(vp)
	assert.Len(t, frame.Cells, (20+2)*(10+3))
}

func TestRenderFrozenPaneAlwaysIncluded(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	vp.FrozenRows = 2
	vp.FrozenCols = 1
	vp.ScrollX = 1000 // scroll far right/down
	vp.ScrollY = 1000
	frame := r.Render(vp)
	var sawFrozenCorner bool
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			sawFrozenCorner = true
			assert.True(t, c.Frozen)
		}
	}
	assert.True(t, sawFrozenCorner)
}

func TestRenderMergeAnchorEmittedOnceWithSpan(t *testing.T) {
	r, _ := newTestRenderer()
	require.NoError(t, r.Merges.Merge(0, 0, 2, 2))
	frame := r.Render(baseViewport())

	var anchorCount int
	var hiddenSeen bool
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			anchorCount++
			assert.Equal(t, 2, c.RowSpan)
			assert.Equal(t, 2, c.ColSpan)
		}
		if c.Row == 1 && c.Col == 1 {
			hiddenSeen = true
		}
	}
	assert.Equal(t, 1, anchorCount)
	assert.False(t, hiddenSeen, "hidden cell under anchor must not be separately emitted")
}

func TestRenderContentBoundsAndFreezeLines(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	vp.FrozenRows = 2
	vp.FrozenCols = 1
	vp.MaxRow = 9
	vp.MaxCol = 9
	frame := r.Render(vp)
	assert.Equal(t, 200.0, frame.ContentBounds.Height) // 10 rows * 20
	assert.Equal(t, 600.0, frame.ContentBounds.Width)  // 10 cols * 60
	assert.Equal(t, 40.0, frame.FreezeLines.Y)          // 2 rows * 20
	assert.Equal(t, 60.0, frame.FreezeLines.X)          // 1 col * 60
}

func TestPointToCellReturnsSentinelInHeaderArea(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	row, col := r.PointToCell(vp, 10, -5)
	assert.Equal(t, -1, row)
	row, col = r.PointToCell(vp, -5, 10)
	assert.Equal(t, -1, col)
}

func TestPointToCellResolvesToMergeAnchor(t *testing.T) {
	r, _ := newTestRenderer()
	require.NoError(t, r.Merges.Merge(0, 0, 2, 2))
	vp := baseViewport()
	// Pixel inside row 1, col 1 (second cell of the merge): y in [20,40), x in [60,120).
	row, col := r.PointToCell(vp, 70, 25)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestRenderMemoizesSameViewportAndStoreVersion(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	frame1 := r.Render(vp)
	frame2 := r.Render(vp) // same viewport, same store version -> memoized
	assert.Equal(t, len(frame1.Cells), len(frame2.Cells))

	vp.ScrollX = 1 // force a fresh render
	frame3 := r.Render(vp)
	assert.NotEqual(t, 0, len(frame3.Cells))
}

func TestRenderInvalidatesOnStoreWriteEvenWithSameViewport(t *testing.T) {
	r, store := newTestRenderer()
	vp := baseViewport()
	r.Render(vp)

	store.Set(0, 0, cellmodel.Cell{Value: cellmodel.Value{Kind: cellmodel.ValueNumber, Number: 99}})
	frame := r.Render(vp) // same viewport, but the store's version moved

	var found bool
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			found = true
			assert.Equal(t, 99.0, c.Value.Number)
		}
	}
	assert.True(t, found, "edited cell must be reflected without a viewport change")
}

func TestRenderInvalidatesOnMergeWriteEvenWithSameViewport(t *testing.T) {
	r, _ := newTestRenderer()
	vp := baseViewport()
	r.Render(vp)

	require.NoError(t, r.Merges.Merge(0, 0, 2, 2))
	frame := r.Render(vp) // same viewport, but the merge index's version moved

	var anchorSpan int
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			anchorSpan = c.RowSpan
		}
	}
	assert.Equal(t, 2, anchorSpan, "merge must be reflected without a viewport change")
}

func TestConditionalFormatOverridesMergeIntoCellFormat(t *testing.T) {
	r, store := newTestRenderer()
	store.Set(0, 0, cellmodel.Cell{
		Value:  cellmodel.Value{Kind: cellmodel.ValueString, Text: "x"},
		Format: &cellmodel.Format{Color: "black"},
	})
	r.CondFormat = stubCondFormat{row: 0, col: 0, color: "red"}
	frame := r.Render(baseViewport())
	for _, c := range frame.Cells {
		if c.Row == 0 && c.Col == 0 {
			assert.Equal(t, "red", c.Format.Color)
		}
	}
}

type stubCondFormat struct {
	row, col int
	color    string
}

func (s stubCondFormat) Eval(row, col int) (cellmodel.ConditionalFormatResult, bool) {
	if row != s.row || col != s.col {
		return cellmodel.ConditionalFormatResult{}, false
	}
	return cellmodel.ConditionalFormatResult{FormatOverrides: &cellmodel.Format{Color: s.color}}, true
}
