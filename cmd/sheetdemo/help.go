// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the keybinding cheat sheet shown when keymap.Help fires,
// rendered through glamour the same way a chat view renders assistant
// markdown -- a cached *glamour.TermRenderer reused across calls
// at the same width, avoiding repeated stylesheet parsing per keypress.
const helpMarkdown = `# sheetdemo

## Navigation
- Arrow keys: move one cell; **Ctrl**+arrow: jump to the edge of data
- **Shift**+arrow: extend the selection
- **Page Up / Page Down**: move a page
- **Home / End**: start/end of row; **Ctrl**+Home/End: start/end of sheet
- **g** / **G**: jump to A1 / the last used cell
- **Tab / Enter**: confirm and move right / down

## Editing
- Type a character, or **F2**: start editing the active cell
- **Escape**: cancel the edit
- **Delete / Backspace**: clear the selection's contents

## Formatting and structure
- **Ctrl+B / Ctrl+I / Ctrl+U**: bold / italic / underline
- **Ctrl+Z / Ctrl+Shift+Z / Ctrl+Y**: undo / redo

## Clipboard
- **Ctrl+X / Ctrl+V**: cut / paste (Ctrl+C quits)

## Host
- **Ctrl+G**: seed demo inventory data
- **?**: toggle this help
- **Ctrl+C**: quit
`

type helpRenderer struct {
	r *glamour.TermRenderer
	w int
}

func (h *helpRenderer) render(width int) string {
	if width < 10 {
		width = 10
	}
	if h.r == nil || h.w != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return helpMarkdown
		}
		h.r = r
		h.w = width
	}
	out, err := h.r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
