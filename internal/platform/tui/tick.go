// Package tui is the terminal front end of the celebration page: a Bubble Tea
// model that renders a mini-game session, maps keys and mouse clicks to game
// commands, and a Wish SSH server that hosts one model per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg advances the session clock and triggers a redraw.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends the next frame message
// after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
