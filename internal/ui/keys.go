package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/spinup/internal/app"
)

// keyMap defines the keybindings for the browser
type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	Activate key.Binding
	Stop     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Activate: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "play or navigate dir"),
		),
		Stop: key.NewBinding(
			key.WithKeys("backspace", "s"),
			key.WithHelp("bksp", "stop"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Activate, k.Stop, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Activate},
		{k.Stop, k.Refresh, k.Quit},
	}
}

// command maps a key to a loop command. Unbound keys map to CmdNone,
// which still clears the last error.
func (k keyMap) command(msg tea.KeyMsg) app.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return app.CmdQuit
	case key.Matches(msg, k.Down):
		return app.CmdNext
	case key.Matches(msg, k.Up):
		return app.CmdPrevious
	case key.Matches(msg, k.Activate):
		return app.CmdActivate
	case key.Matches(msg, k.Stop):
		return app.CmdStop
	case key.Matches(msg, k.Refresh):
		return app.CmdRefresh
	default:
		return app.CmdNone
	}
}
