// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package pointer implements PointerTranslator:
// stateful per-pointer translation of raw pointer events into Intents,
// covering the drag threshold, fill-handle detection, single-click-to-edit,
// and long-press context menu contracts.
package pointer

import (
	"math"

	"github.com/latticesheet/sheetcore/internal/intent"
)

// Kind distinguishes the physical input device, since long-press-to-menu
// only applies to touch.
type Kind int

const (
	KindMouse Kind = iota
	KindTouch
	KindPen
)

// Config carries the host-tunable thresholds (sourced from
// internal/config.EngineConfig: DragThresholdPx, LongPress).
type Config struct {
	DragThresholdPx float64
	LongPressNanos  int64
	LongPressPx     float64
}

// DownEvent is a pointer-down (mousedown/touchstart) sample, already
// resolved to a sheet cell by the host's hit-testing (render.Renderer's
// PointToCell).
type DownEvent struct {
	X, Y         float64
	Row, Col     int
	Shift, Ctrl  bool
	OnFillHandle bool
	Kind         Kind
	AtUnixNano   int64
}

// MoveEvent is a pointer-move sample while the pointer is captured.
type MoveEvent struct {
	X, Y       float64
	Row, Col   int
	AtUnixNano int64
}

// UpEvent is a pointer-up sample.
type UpEvent struct {
	X, Y       float64
	Row, Col   int
	AtUnixNano int64
}

// Translator tracks one captured pointer's gesture state from down to up.
// The host owns actual OS-level pointer capture (so that move/up continue
// to arrive at the capturing element); this type only owns the
// gesture-classification state.
type Translator struct {
	cfg Config

	captured     bool
	downX, downY float64
	downRow      int
	downCol      int
	downAt       int64
	kind         Kind

	dragging         bool
	isFill           bool
	singleClickEdit  bool
	longPressFired   bool
	longPressAborted bool
}

// New returns a Translator using cfg's thresholds.
func New(cfg Config) *Translator {
	return &Translator{cfg: cfg}
}

// Active reports whether a pointer is currently captured (down but not
// yet up).
func (t *Translator) Active() bool { return t.captured }

// Down begins tracking a new gesture and returns the selection intent the
// press itself produces immediately: SetActiveCell by default, extended
// to ExtendSelection/AddRange when Shift/Ctrl are held, reusing the same
// pointer-originated vocabulary the drag/click/long-press contracts add
// on top of.
func (t *Translator) Down(ev DownEvent) []intent.Intent {
	*t = Translator{cfg: t.cfg}
	t.captured = true
	t.downX, t.downY = ev.X, ev.Y
	t.downRow, t.downCol = ev.Row, ev.Col
	t.downAt = ev.AtUnixNano
	t.kind = ev.Kind
	t.isFill = ev.OnFillHandle
	t.singleClickEdit = !ev.Shift && !ev.Ctrl && !ev.OnFillHandle

	switch {
	case ev.Shift:
		return []intent.Intent{intent.ExtendSelection{Row: ev.Row, Col: ev.Col}}
	case ev.Ctrl:
		return []intent.Intent{intent.AddRange{Row: ev.Row, Col: ev.Col}}
	default:
		return []intent.Intent{intent.SetActiveCell{Row: ev.Row, Col: ev.Col}}
	}
}

// Move advances the gesture. Below the drag threshold it emits nothing;
// at threshold crossing it emits BeginDragSelection or BeginFillDrag;
// once dragging, every call emits the matching Update*
// intent keyed by the cell currently under the pointer, which is how
// autoscroll-driven cell changes during a held drag surface as ongoing
// UpdateDragSelection/UpdateFillDrag intents even though the translator
// itself has no autoscroll logic -- it delegates to the host's external
// autoscroll controller.
func (t *Translator) Move(ev MoveEvent) []intent.Intent {
	if !t.captured || t.longPressAborted {
		return nil
	}

	if !t.dragging {
		dist := math.Hypot(ev.X-t.downX, ev.Y-t.downY)
		if dist <= t.cfg.DragThresholdPx {
			return nil
		}
		t.dragging = true
		t.singleClickEdit = false
		if t.isFill {
			return []intent.Intent{intent.BeginFillDrag{Row: t.downRow, Col: t.downCol}}
		}
		return []intent.Intent{intent.BeginDragSelection{Row: t.downRow, Col: t.downCol}}
	}

	if t.isFill {
		return []intent.Intent{intent.UpdateFillDrag{Row: ev.Row, Col: ev.Col}}
	}
	return []intent.Intent{intent.UpdateDragSelection{Row: ev.Row, Col: ev.Col}}
}

// CheckLongPress is polled by the host (e.g. every 50ms on a timer) while
// a touch pointer is down. It fires ShowContextMenu and cancels any
// pending drag the first time 500ms elapse without more than 10px of
// movement; subsequent calls are no-ops for this gesture.
func (t *Translator) CheckLongPress(nowUnixNano int64, curX, curY float64) (intent.Intent, bool) {
	if !t.captured || t.kind != KindTouch || t.longPressFired || t.dragging {
		return nil, false
	}
	if math.Hypot(curX-t.downX, curY-t.downY) > t.cfg.LongPressPx {
		return nil, false
	}
	if nowUnixNano-t.downAt < t.cfg.LongPressNanos {
		return nil, false
	}
	t.longPressFired = true
	t.longPressAborted = true
	t.singleClickEdit = false
	return intent.ShowContextMenu{Row: t.downRow, Col: t.downCol}, true
}

// Up ends the gesture. A plain click (no drag, no modifiers, not
// aborted by a long-press) emits BeginEdit -- the single-click-to-edit
// contract. A drag emits the matching End* intent.
func (t *Translator) Up(ev UpEvent) []intent.Intent {
	if !t.captured {
		return nil
	}
	defer func() { t.captured = false }()

	if t.longPressAborted {
		return nil
	}

	if t.dragging {
		if t.isFill {
			return []intent.Intent{intent.EndFillDrag{Row: ev.Row, Col: ev.Col}}
		}
		return []intent.Intent{intent.EndDragSelection{}}
	}

	if t.singleClickEdit {
		return []intent.Intent{intent.BeginEdit{}}
	}
	return nil
}

// EdgeBand reports, during an active drag, which axes sit within an
// edgePx band of the viewport's edges -- the membership test the host's
// external autoscroll controller consumes. dx/dy are -1
// (near the low edge), 0 (outside any band), or 1 (near the high edge).
func EdgeBand(x, y, width, height, edgePx float64) (dx, dy int) {
	dx = axisBand(x, width, edgePx)
	dy = axisBand(y, height, edgePx)
	return dx, dy
}

func axisBand(pos, extent, edgePx float64) int {
	switch {
	case pos < edgePx:
		return -1
	case pos > extent-edgePx:
		return 1
	default:
		return 0
	}
}
