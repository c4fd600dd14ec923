package campaign

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

// State is the screen the game is on.
type State int

const (
	StateMenu State = iota
	StateBriefing
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateBriefing:
		return "briefing"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "victory"
	}
}

const bannerTime = 1500 * time.Millisecond

// RunRecorder keeps the history of completed campaigns.
type RunRecorder interface {
	SaveRun(run storage.RunEntry) (int64, error)
}

// Options configures a Game. Config and Records are required.
type Options struct {
	Config   config.GuardianConfig
	Records  *Records
	Logger   *log.Logger
	Hooks    Hooks
	Listener Listener
	Runs     RunRecorder
	Player   string // name stored with completed runs
	Round    int    // start directly in this round instead of the menu
}

type menuAction int

const (
	menuStart menuAction = iota
	menuBriefing
	menuPractice
	menuMusic
)

type menuItem struct {
	action menuAction
	round  int
}

// Game is the campaign as seen by a host: menu, rounds, game over and
// victory screens. It is driven one fixed tick at a time.
type Game struct {
	cfg      config.GuardianConfig
	records  *Records
	logger   *log.Logger
	hooks    Hooks
	listener Listener
	runs     RunRecorder
	player   string
	start    int

	runtime core.RuntimeConfig
	rng     *core.SimpleRNG
	dt      time.Duration

	state    State
	menu     []menuItem
	cursor   int
	notice   string
	round    *Round
	clock    RunClock
	practice bool // started past round 1, times are not recorded
	newBest  bool
	summary  *Summary

	flow    *sched.Scheduler // screen timers, advanced every tick
	overlay *sched.Group
	banner  string
	bannerT time.Duration

	layout layout
}

// New creates a game. Call Reset before stepping it.
func New(opts Options) *Game {
	g := &Game{
		cfg:      opts.Config,
		records:  opts.Records,
		logger:   opts.Logger,
		hooks:    opts.Hooks,
		listener: opts.Listener,
		runs:     opts.Runs,
		player:   opts.Player,
		start:    opts.Round,
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.hooks == nil {
		g.hooks = NopHooks{}
	}
	if g.records == nil {
		g.records = NewRecords(storage.NewMemory(), g.logger)
	}
	g.menu = []menuItem{{action: menuStart}, {action: menuBriefing}}
	for n := 2; n <= g.cfg.LastRound(); n++ {
		g.menu = append(g.menu, menuItem{action: menuPractice, round: n})
	}
	g.menu = append(g.menu, menuItem{action: menuMusic})
	return g
}

// ID returns the identifier used for storage and logs.
func (g *Game) ID() string { return "guardian" }

// Title returns the display name.
func (g *Game) Title() string { return "Central Park Guardian" }

// Reset initializes the game and shows the menu, or starts the configured
// round directly.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc
	g.rng = core.NewRNG(rc.Seed)
	g.dt = time.Second / time.Duration(rc.TickRate)
	g.flow = sched.New()
	g.overlay = g.flow.NewGroup()
	g.layout = newLayout(rc.ScreenW, rc.ScreenH, g.arenaBounds())
	g.abandon()
	g.state = StateMenu
	g.cursor = 0
	g.notice = ""
	g.summary = nil

	if g.start > 0 {
		if err := g.StartAt(g.start); err != nil {
			g.logger.Error("cannot start round", "round", g.start, "err", err)
		}
	}
}

func (g *Game) arenaBounds() arena.Bounds {
	return arena.Bounds{W: g.cfg.Arena.Width, H: g.cfg.Arena.Height}
}

// StartAt begins a run at round n. Rounds after the first start from the
// loadout saved when round n-1 cleared, or from the baseline. Such a
// practice run never touches the run times or the run history.
func (g *Game) StartAt(n int) error {
	if _, ok := g.cfg.Round(n); !ok {
		return fmt.Errorf("campaign: round %d is not configured", n)
	}
	snap := g.baseline()
	if n > 1 {
		if saved, ok := g.records.LoadLoadout(n - 1); ok && saved.Health > 0 {
			snap = saved
		} else {
			g.logger.Warn("no saved loadout, using defaults", "round", n-1)
		}
	}
	g.abandon()
	g.clock = RunClock{}
	g.practice = n > 1
	g.newBest = false
	g.summary = nil
	return g.enter(n, snap.Player())
}

func (g *Game) baseline() Snapshot {
	p := g.cfg.Player
	return Baseline(p.Health, p.Armor, p.Credits)
}

func (g *Game) enter(n int, p *combat.PlayerState) error {
	r, err := NewRound(n, g.cfg, p, g.rng, &gameHooks{Hooks: g.hooks, g: g})
	if err != nil {
		return err
	}
	r.OnBossDefeated = g.bossDefeated
	g.round = r
	g.state = StatePlaying
	g.overlay.Cancel()
	g.overlay = g.flow.NewGroup()
	g.logger.Info("round started",
		"round", n, "name", r.Name(),
		"health", p.Health, "armor", p.Armor, "credits", p.Credits,
		"powers", p.Powers.Strings())
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.flow.Advance(g.dt)

	switch g.state {
	case StateMenu:
		g.stepMenu(in)
	case StateBriefing:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.state = StateMenu
		}
	case StatePlaying:
		if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
			g.state = StatePaused
			g.clock.Pause()
			break
		}
		g.stepRound(in)
	case StatePaused:
		switch {
		case in.Has(core.ActionPause), in.Has(core.ActionConfirm):
			g.state = StatePlaying
		case in.Has(core.ActionBack):
			g.logger.Info("run abandoned", "round", g.round.Number())
			g.toMenu()
		}
	case StateGameOver:
		if in.Has(core.ActionConfirm) {
			g.toMenu()
		}
	case StateVictory:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.toMenu()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) stepMenu(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(g.menu) - 1) % len(g.menu)
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(g.menu)
	case in.Has(core.ActionConfirm):
		g.selectMenu(g.menu[g.cursor])
	}
}

func (g *Game) selectMenu(item menuItem) {
	g.notice = ""
	switch item.action {
	case menuStart:
		if !g.records.MessageRead() {
			g.notice = "Read the mission briefing first"
			return
		}
		if err := g.StartAt(1); err != nil {
			g.notice = err.Error()
		}
	case menuBriefing:
		//nolint:errcheck // logged by Records
		g.records.MarkMessageRead()
		g.state = StateBriefing
	case menuPractice:
		if err := g.StartAt(item.round); err != nil {
			g.notice = err.Error()
		}
	case menuMusic:
		//nolint:errcheck // logged by Records
		g.records.SetMusicMuted(!g.records.MusicMuted())
	}
}

func (g *Game) stepRound(in core.InputFrame) {
	r := g.round
	r.Step(g.dt, in, g.aim(in))

	switch r.Phase() {
	case PhaseReady:
		if r.Clearing() {
			g.clock.Pause()
		} else {
			g.clock.Start()
		}
	case PhaseCleared:
		g.clock.Pause()
		g.roundCleared()
		return
	case PhaseFailed:
		g.playerDied()
		return
	}
	g.clock.Tick(g.dt)
}

func (g *Game) aim(in core.InputFrame) *core.Vec {
	if in.Pointer == nil {
		return nil
	}
	v, ok := g.layout.toWorld(in.Pointer.X, in.Pointer.Y)
	if !ok {
		return nil
	}
	return &v
}

func (g *Game) roundCleared() {
	r := g.round
	n := r.Number()
	snap := FromPlayer(r.Player)
	if err := g.records.SaveLoadout(n, snap); err != nil {
		g.logger.Error("cannot save loadout", "round", n, "err", err)
	}
	g.logger.Info("round cleared", "round", n, "credits", snap.Credits, "elapsed", FormatClock(g.clock.Elapsed()))
	g.emit(Event{Kind: EventRoundCleared, Round: n, Snapshot: snap})

	if n >= g.cfg.LastRound() {
		g.victory(snap)
		return
	}
	if err := g.enter(n+1, snap.Player()); err != nil {
		g.logger.Error("cannot start next round", "round", n+1, "err", err)
		g.toMenu()
	}
}

func (g *Game) bossDefeated() {
	g.clock.Stop()
	best := false
	if !g.practice {
		var err error
		if best, err = g.records.RecordRunTime(g.clock.Elapsed(), true); err == nil {
			g.newBest = best
		}
	}
	g.logger.Info("boss defeated", "elapsed", FormatClock(g.clock.Elapsed()), "new_best", best, "practice", g.practice)
	g.emit(Event{Kind: EventBossDefeated, Round: g.round.Number(), Snapshot: FromPlayer(g.round.Player)})
}

func (g *Game) victory(final Snapshot) {
	g.clock.Stop()
	//nolint:errcheck // logged by Records
	g.records.MarkCompleted()
	//nolint:errcheck // logged by Records
	g.records.SaveFinalStats(final)

	best, _ := g.records.BestTime()
	g.summary = &Summary{
		Player:   g.player,
		Elapsed:  g.clock.Elapsed(),
		Best:     best,
		NewBest:  g.newBest,
		Practice: g.practice,
		Final:    final,
	}
	if g.runs != nil && !g.practice {
		_, err := g.runs.SaveRun(storage.RunEntry{
			Player:  g.player,
			Elapsed: g.summary.Elapsed,
			Credits: final.Credits,
			Health:  final.Health,
			Armor:   final.Armor,
		})
		if err != nil {
			g.logger.Error("cannot save run", "err", err)
		}
	}
	g.state = StateVictory
	g.logger.Info("campaign complete", "player", g.player, "elapsed", FormatClock(g.summary.Elapsed))
	g.emit(Event{Kind: EventCampaignComplete, Round: g.round.Number(), Snapshot: final, Summary: g.summary})
}

func (g *Game) playerDied() {
	g.clock.Stop()
	if !g.practice {
		//nolint:errcheck // logged by Records
		g.records.RecordRunTime(g.clock.Elapsed(), false)
	}
	n := g.round.Number()
	g.logger.Info("player died", "round", n, "elapsed", FormatClock(g.clock.Elapsed()))
	g.emit(Event{Kind: EventPlayerDied, Round: n, Snapshot: FromPlayer(g.round.Player)})

	g.state = StateGameOver
	g.overlay.After(config.Ms(g.cfg.Timings.GameOverMS), g.toMenu)
}

func (g *Game) toMenu() {
	g.overlay.Cancel()
	g.overlay = g.flow.NewGroup()
	g.abandon()
	g.state = StateMenu
}

func (g *Game) abandon() {
	if g.round != nil {
		g.round.Abandon()
		g.round = nil
	}
}

func (g *Game) emit(e Event) {
	if g.listener != nil {
		g.listener(e)
	}
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerT = g.flow.Now() + bannerTime
}

// State returns the host-facing summary: credits as score, whether the
// run is over, and whether it is paused.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.state == StateGameOver || g.state == StateVictory,
		Paused:   g.state == StatePaused,
	}
	switch {
	case g.round != nil:
		st.Score = g.round.Player.Credits
	case g.summary != nil:
		st.Score = g.summary.Final.Credits
	}
	return st
}

// Current returns the screen the game is on.
func (g *Game) Current() State { return g.state }

// Round returns the round in progress, if any.
func (g *Game) Round() *Round { return g.round }

// Elapsed returns the run clock.
func (g *Game) Elapsed() time.Duration { return g.clock.Elapsed() }

// Summary returns the record of the last completed campaign in this
// session.
func (g *Game) Summary() *Summary { return g.summary }

// Records exposes the persisted records.
func (g *Game) Records() *Records { return g.records }

// gameHooks forwards cues to the host and keeps banners for Render.
type gameHooks struct {
	Hooks
	g *Game
}

func (h *gameHooks) Banner(text string) {
	h.g.showBanner(text)
	h.Hooks.Banner(text)
}
