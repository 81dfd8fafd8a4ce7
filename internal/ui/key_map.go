package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	compare  key.Binding
	wishlist key.Binding
	view     key.Binding
	saved    key.Binding
	clear    key.Binding
	refresh  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		compare:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		wishlist: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wishlist")),
		view:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view comparison")),
		saved:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "saved cars")),
		clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.compare, k.wishlist, k.view, k.saved},
		{k.clear, k.refresh, k.back, k.quit},
	}
}
