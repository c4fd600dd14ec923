// Package tui hosts the campaign in a terminal through Bubble Tea. It
// turns key and mouse events into per-tick input frames, paints the
// game's screen buffer with lipgloss, shows the run history, and serves
// sessions over SSH with Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
