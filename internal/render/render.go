// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package render implements VirtualRenderer: given a
// viewport and the dimension/merge/cell providers, it produces the exact
// set of cells that must be drawn, with pixel rectangles in pre-zoom
// coordinates.
package render

import (
	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/geom"
	"github.com/latticesheet/sheetcore/internal/merge"
)

// Viewport describes the current scroll/zoom/freeze state the renderer
// must satisfy.
type Viewport struct {
	Width, Height  float64
	ScrollX        float64
	ScrollY        float64
	FrozenRows     int
	FrozenCols     int
	OverscanRows   int
	OverscanCols   int
	MaxRow, MaxCol int
}

// Rect is a pixel rectangle in pre-zoom coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// ViewportCell is one cell the host must paint.
type ViewportCell struct {
	Row, Col  int
	Rect      Rect
	Value     cellmodel.Value
	Format    cellmodel.Format
	Align     cellmodel.Alignment // resolved: cell's pinned alignment, or the type-based default
	RowSpan   int                 // 1 unless this is a merge anchor
	ColSpan   int
	Frozen    bool // true if this cell is in the frozen-row or frozen-col band
}

// ContentBounds is the total logical pixel size of the sheet.
type ContentBounds struct {
	Width, Height float64
}

// FreezeLines are the pixel offsets where the frozen pane ends on each axis.
type FreezeLines struct {
	X, Y float64
}

// Frame is the result of a Render call: exactly the cells to paint.
type Frame struct {
	Cells         []ViewportCell
	ContentBounds ContentBounds
	FreezeLines   FreezeLines
}

// Versioned is implemented by a CellDataSource that tracks a
// monotonically increasing counter bumped on every mutation. Render uses
// it (when available) to invalidate its memoized frame on writes that
// leave the viewport itself unchanged -- an edited cell must repaint on
// the very next frame even if scroll position never moved.
type Versioned interface {
	Version() uint64
}

// Renderer is stateless over a fixed set of providers, holding only
// cheap memoization of the last computed frame, invalidated whenever the
// viewport changes or Cells/Merges report a new version.
type Renderer struct {
	Rows   *geom.DimensionIndex
	Cols   *geom.DimensionIndex
	Cells  cellmodel.CellDataSource
	Merges *merge.Index
	// CondFormat is optional; nil means no conditional formatting applied.
	CondFormat cellmodel.ConditionalFormatProvider

	lastViewport      Viewport
	lastFrame         *Frame
	lastCellsVersion  uint64
	lastMergesVersion uint64
}

// Render computes the RenderFrame for vp. Never errors: missing
// cells/merges/dimensions degrade to sensible empties.
func (r *Renderer) Render(vp Viewport) Frame {
	cellsVersion := r.cellsVersion()
	mergesVersion := r.Merges.Version()
	if r.lastFrame != nil && vp == r.lastViewport &&
		cellsVersion == r.lastCellsVersion && mergesVersion == r.lastMergesVersion {
		return *r.lastFrame
	}

	r0, r1 := r.visibleRowRange(vp)
	c0, c1 := r.visibleColRange(vp)

	rowSet := unionRange(0, vp.FrozenRows, r0, r1)
	colSet := unionRange(0, vp.FrozenCols, c0, c1)

	var cells []ViewportCell
	seen := make(map[[2]int]bool)
	for _, row := range rowSet {
		for _, col := range colSet {
			r.emitCell(&cells, seen, row, col, vp)
		}
	}

	frame := Frame{
		Cells: cells,
		ContentBounds: ContentBounds{
			Width:  r.Cols.TotalSize(vp.MaxCol + 1),
			Height: r.Rows.TotalSize(vp.MaxRow + 1),
		},
		FreezeLines: FreezeLines{
			X: r.Cols.OffsetOf(vp.FrozenCols),
			Y: r.Rows.OffsetOf(vp.FrozenRows),
		},
	}
	r.lastViewport = vp
	r.lastFrame = &frame
	r.lastCellsVersion = cellsVersion
	r.lastMergesVersion = mergesVersion
	return frame
}

// cellsVersion reads Cells' version if it implements Versioned, else 0 --
// a data source that doesn't track versions degrades to viewport-only
// memoization, same as before this existed.
func (r *Renderer) cellsVersion() uint64 {
	if v, ok := r.Cells.(Versioned); ok {
		return v.Version()
	}
	return 0
}

// emitCell appends the ViewportCell(s) for (row, col), resolving merge
// membership and value/alignment, and dedup against seen merge anchors
// already emitted from a different (row, col) pairing in the cross
// product.
func (r *Renderer) emitCell(cells *[]ViewportCell, seen map[[2]int]bool, row, col int, vp Viewport) {
	lookup := r.Merges.Query(row, col)
	anchorRow, anchorCol := row, col
	rowSpan, colSpan := 1, 1

	switch lookup.Role {
	case merge.RoleHidden:
		anchorRow, anchorCol = lookup.Row, lookup.Col
		if r.inVisibleBand(anchorRow, anchorCol, vp) {
			// The anchor is itself in the visible cross-product and will be
			// (or already was) emitted from its own (row, col) pairing; skip
			// this hidden cell so it isn't painted twice.
			return
		}
		if as, ac, ok := r.Merges.AnchorAt(anchorRow, anchorCol); ok {
			rowSpan, colSpan = as, ac
		}
	case merge.RoleAnchor:
		rowSpan, colSpan = lookup.RowSpan, lookup.ColSpan
	}

	key := [2]int{anchorRow, anchorCol}
	if seen[key] {
		return
	}
	seen[key] = true

	cell, _ := r.Cells.GetCell(anchorRow, anchorCol)
	format := cell.Format
	if format == nil {
		format = &cellmodel.Format{}
	}
	merged := *format
	if r.CondFormat != nil {
		if result, ok := r.CondFormat.Eval(anchorRow, anchorCol); ok && result.FormatOverrides != nil {
			merged = mergeFormat(merged, *result.FormatOverrides)
		}
	}

	x := r.Cols.OffsetOf(anchorCol)
	y := r.Rows.OffsetOf(anchorRow)
	width := spanSize(r.Cols, anchorCol, colSpan)
	height := spanSize(r.Rows, anchorRow, rowSpan)

	*cells = append(*cells, ViewportCell{
		Row: anchorRow, Col: anchorCol,
		Rect:    Rect{X: x, Y: y, Width: width, Height: height},
		Value:   cell.Value,
		Format:  merged,
		Align:   resolveAlign(cell.Value, merged),
		RowSpan: rowSpan, ColSpan: colSpan,
		Frozen: anchorRow < vp.FrozenRows || anchorCol < vp.FrozenCols,
	})
}

// inVisibleBand reports whether (row, col) falls in the frozen-or-scrolled
// visible cross product for vp -- used to decide whether a merge anchor
// outside the literal scroll window still gets its own emission elsewhere
// (the anchor also belongs in the visible set).
func (r *Renderer) inVisibleBand(row, col int, vp Viewport) bool {
	r0, r1 := r.visibleRowRange(vp)
	c0, c1 := r.visibleColRange(vp)
	rowOK := row < vp.FrozenRows || (row >= r0 && row <= r1)
	colOK := col < vp.FrozenCols || (col >= c0 && col <= c1)
	return rowOK && colOK
}

func (r *Renderer) visibleRowRange(vp Viewport) (int, int) {
	frozenHeight := r.Rows.OffsetOf(vp.FrozenRows)
	available := vp.Height - frozenHeight
	if available < 0 {
		available = 0
	}
	start := frozenHeight + vp.ScrollY
	end := start + available
	r0 := r.Rows.IndexAtPixel(start)
	r1 := r.Rows.IndexAtPixel(end)
	if r0 < vp.FrozenRows {
		r0 = vp.FrozenRows
	}
	r0 -= vp.OverscanRows
	r1 += vp.OverscanRows
	return clamp(r0, vp.FrozenRows, vp.MaxRow), clamp(r1, vp.FrozenRows, vp.MaxRow)
}

func (r *Renderer) visibleColRange(vp Viewport) (int, int) {
	frozenWidth := r.Cols.OffsetOf(vp.FrozenCols)
	available := vp.Width - frozenWidth
	if available < 0 {
		available = 0
	}
	start := frozenWidth + vp.ScrollX
	end := start + available
	c0 := r.Cols.IndexAtPixel(start)
	c1 := r.Cols.IndexAtPixel(end)
	if c0 < vp.FrozenCols {
		c0 = vp.FrozenCols
	}
	c0 -= vp.OverscanCols
	c1 += vp.OverscanCols
	return clamp(c0, vp.FrozenCols, vp.MaxCol), clamp(c1, vp.FrozenCols, vp.MaxCol)
}

// PointToCell is the inverse of Render: hit-test a pixel coordinate back
// to a (row, col), resolving merges to their anchor. Header areas (above
// the first row, or left of the first column) return the sentinel -1 on
// the corresponding axis, per 
func (r *Renderer) PointToCell(vp Viewport, x, y float64) (row, col int) {
	row, col = -1, -1
	if y >= 0 {
		row = r.rowAtScreenY(vp, y)
	}
	if x >= 0 {
		col = r.colAtScreenX(vp, x)
	}
	if row >= 0 && col >= 0 {
		if lookup := r.Merges.Query(row, col); lookup.Role == merge.RoleHidden {
			row, col = lookup.Row, lookup.Col
		}
	}
	return row, col
}

func (r *Renderer) rowAtScreenY(vp Viewport, y float64) int {
	frozenHeight := r.Rows.OffsetOf(vp.FrozenRows)
	if y < frozenHeight {
		return r.Rows.IndexAtPixel(y)
	}
	return r.Rows.IndexAtPixel(frozenHeight + vp.ScrollY + (y - frozenHeight))
}

func (r *Renderer) colAtScreenX(vp Viewport, x float64) int {
	frozenWidth := r.Cols.OffsetOf(vp.FrozenCols)
	if x < frozenWidth {
		return r.Cols.IndexAtPixel(x)
	}
	return r.Cols.IndexAtPixel(frozenWidth + vp.ScrollX + (x - frozenWidth))
}

func spanSize(d *geom.DimensionIndex, start, span int) float64 {
	return d.OffsetOf(start+span) - d.OffsetOf(start)
}

func resolveAlign(v cellmodel.Value, f cellmodel.Format) cellmodel.Alignment {
	if f.Align != cellmodel.AlignAuto {
		return f.Align
	}
	switch v.Kind {
	case cellmodel.ValueNumber:
		return cellmodel.AlignRight
	case cellmodel.ValueBool:
		return cellmodel.AlignCenter
	default:
		return cellmodel.AlignLeft
	}
}

// mergeFormat overlays override's set fields onto base. Conditional
// formatting only ever contributes color, background, alignment and
// number-format overrides -- borders and fonts stay cell-owned.
func mergeFormat(base, override cellmodel.Format) cellmodel.Format {
	out := base
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Background != "" {
		out.Background = override.Background
	}
	if override.NumberFormat != "" {
		out.NumberFormat = override.NumberFormat
	}
	if override.Align != cellmodel.AlignAuto {
		out.Align = override.Align
	}
	return out
}

func unionRange(frozenStart, frozenEnd, scrollStart, scrollEnd int) []int {
	out := make([]int, 0, (frozenEnd-frozenStart)+(scrollEnd-scrollStart+1))
	for i := frozenStart; i < frozenEnd; i++ {
		out = append(out, i)
	}
	for i := scrollStart; i <= scrollEnd; i++ {
		if i >= frozenEnd {
			out = append(out, i)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
