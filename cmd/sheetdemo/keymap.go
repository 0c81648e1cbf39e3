// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package main

import "github.com/charmbracelet/bubbles/key"

// keymap holds the host-level bindings that sit outside the keyboard
// translator's navigation/editing table: quitting, toggling help, and
// vim-style jump-to-edge shortcuts, mirroring a bubbles/key
// helpGotoTop/helpGotoBottom key.NewBinding(key.WithKeys(...)) pattern.
type keymap struct {
	Quit      key.Binding
	Help      key.Binding
	GotoTop   key.Binding
	GotoEnd   key.Binding
	Seed      key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "jump to A1"),
		),
		GotoEnd: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "jump to used range's last cell"),
		),
		Seed: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "seed demo data"),
		),
	}
}
