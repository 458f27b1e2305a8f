package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings of the drive TUI.
type KeyMap struct {
	ToggleSidebar key.Binding
	TogglePanel   key.Binding
	ClosePanel    key.Binding
	Expand        key.Binding
	SwitchFocus   key.Binding
	ChipLeft      key.Binding
	ChipRight     key.Binding
	ToggleChip    key.Binding
	Send          key.Binding
	NewLine       key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "files"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "assistant"),
		),
		ClosePanel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Expand: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "expand"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "files/composer"),
		),
		ChipLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev file"),
		),
		ChipRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next file"),
		),
		ToggleChip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select file"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "send"),
		),
		NewLine: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+⏎", "new line"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePanel, k.ToggleSidebar, k.SwitchFocus, k.Send, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePanel, k.ClosePanel, k.Expand, k.ToggleSidebar},
		{k.SwitchFocus, k.ChipLeft, k.ChipRight, k.ToggleChip},
		{k.Send, k.NewLine, k.Quit},
	}
}
