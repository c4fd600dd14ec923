package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/park-guardian/internal/core"
)

// KeyMap holds the game bindings. It doubles as the help.KeyMap for the
// footer shown under the arena.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Power1     key.Binding
	Power2     key.Binding
	Power3     key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns WASD/arrow movement with space to fire.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "down")),
		Left:       key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right:      key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Fire:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fire")),
		Power1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "common")),
		Power2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "blue")),
		Power3:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "gold")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Power1, k.Power2, k.Power3, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Power1, k.Power2, k.Power3},
		{k.Confirm, k.Back, k.Pause, k.Screenshot, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Fire):
		return core.ActionFire, false
	case key.Matches(msg, k.Power1):
		return core.ActionPower1, false
	case key.Matches(msg, k.Power2):
		return core.ActionPower2, false
	case key.Matches(msg, k.Power3):
		return core.ActionPower3, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}
