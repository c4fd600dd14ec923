package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

func newTestModel(t *testing.T) (Model, *campaign.Game) {
	t.Helper()
	game := campaign.New(campaign.Options{
		Config:  config.DefaultConfig(),
		Records: campaign.NewRecords(storage.NewMemory(), nil),
	})
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 7}, nil)
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{runes("3"), core.ActionPower3},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("p"), core.ActionPause},
		{runes("x"), core.ActionNone},
	}
	for _, tc := range tests {
		if got, quit := km.MapKey(tc.msg); got != tc.want || quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v", tc.msg.String(), got, quit, tc.want)
		}
	}
	if _, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC}); !quit {
		t.Error("ctrl+c is not a quit key")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, game := newTestModel(t)
	if err := game.StartAt(1); err != nil {
		t.Fatalf("StartAt(1) failed: %v", err)
	}
	round := game.Round()
	m = update(t, m, TickMsg{})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Round() != round || game.Current() != campaign.StatePlaying {
		t.Fatalf("resize restarted the run (state %v)", game.Current())
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelHeldMovement(t *testing.T) {
	m, game := newTestModel(t)
	game.StartAt(1)
	start := game.Round().Pos

	m = update(t, m, runes("a"))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if got := game.Round().Pos; got.X >= start.X {
		t.Fatalf("Pos = %v, want left of %v", got, start)
	}
	moved := game.Round().Pos
	m = update(t, m, TickMsg{})
	if game.Round().Pos != moved {
		t.Error("player kept moving after the hold window")
	}
}

func TestModelQuitAndView(t *testing.T) {
	m, _ := newTestModel(t)
	if view := m.View(); !strings.Contains(view, "Central Park Guardian") {
		t.Errorf("menu view missing title:\n%s", view)
	}

	m = update(t, m, runes("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q did not quit")
	}
}

func TestModelPauseDropsHeldKeys(t *testing.T) {
	m, game := newTestModel(t)
	game.StartAt(1)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("p"))
	m = update(t, m, TickMsg{})
	if game.Current() != campaign.StatePaused {
		t.Fatalf("state = %v, want paused", game.Current())
	}
	if len(m.input.held) != 0 {
		t.Errorf("held keys survived the pause: %v", m.input.held)
	}
}
