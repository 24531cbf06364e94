package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "stop after the current repository"),
		),
	}
}
