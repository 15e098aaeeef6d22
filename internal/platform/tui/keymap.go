package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/celebration/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Start key.Binding
	Reset key.Binding
	Claim key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reset, k.Claim, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Reset},
		{k.Claim},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s/enter", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Claim: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9/click", "pop balloon"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command translates a key message to a game command.
// Unbound keys give ActionNone.
func (k KeyMap) Command(msg tea.KeyMsg) core.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Command{Action: core.ActionQuit}
	case key.Matches(msg, k.Start):
		return core.Command{Action: core.ActionStart}
	case key.Matches(msg, k.Reset):
		return core.Command{Action: core.ActionReset}
	case key.Matches(msg, k.Help):
		return core.Command{Action: core.ActionHelp}
	case key.Matches(msg, k.Claim):
		return core.Command{Action: core.ActionClaim, Slot: int(msg.String()[0] - '0')}
	}
	return core.Command{Action: core.ActionNone}
}
