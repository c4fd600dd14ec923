package campaign

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/park-guardian/internal/ai"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

type runLog struct{ runs []storage.RunEntry }

func (l *runLog) SaveRun(r storage.RunEntry) (int64, error) {
	l.runs = append(l.runs, r)
	return int64(len(l.runs)), nil
}

type eventLog struct{ events []Event }

func (l *eventLog) listen(e Event) { l.events = append(l.events, e) }

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

type testGame struct {
	*Game
	kv     *storage.Memory
	events *eventLog
	runs   *runLog
}

// newTestGame runs at 10 ticks per second so one Step is 100ms.
func newTestGame(t *testing.T, seed int64) *testGame {
	t.Helper()
	kv := storage.NewMemory()
	tg := &testGame{kv: kv, events: &eventLog{}, runs: &runLog{}}
	tg.Game = New(Options{
		Config:   config.DefaultConfig(),
		Records:  NewRecords(kv, nil),
		Listener: tg.events.listen,
		Runs:     tg.runs,
		Player:   "tester",
	})
	tg.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: seed})
	return tg
}

func (tg *testGame) until(t *testing.T, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit && !cond(); i++ {
		tg.Step(idle())
	}
	if !cond() {
		t.Fatalf("condition not reached after %d ticks (state %v)", limit, tg.Current())
	}
}

func TestMenuStartNeedsBriefing(t *testing.T) {
	g := newTestGame(t, 1)
	if g.Current() != StateMenu {
		t.Fatalf("initial state = %v", g.Current())
	}

	g.Step(press(core.ActionConfirm))
	if g.Current() != StateMenu || g.notice == "" {
		t.Fatalf("start without briefing: state=%v notice=%q", g.Current(), g.notice)
	}

	g.Step(press(core.ActionDown))
	g.Step(press(core.ActionConfirm))
	if g.Current() != StateBriefing || !g.Records().MessageRead() {
		t.Fatalf("briefing: state=%v read=%v", g.Current(), g.Records().MessageRead())
	}
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionConfirm))
	if g.Current() != StatePlaying || g.Round().Number() != 1 {
		t.Fatalf("after start: state=%v", g.Current())
	}
}

func TestMenuMusicToggle(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(press(core.ActionUp)) // wraps to the last item
	g.Step(press(core.ActionConfirm))
	if v, _, _ := g.kv.Get(KeyMusicMuted); v != "true" {
		t.Errorf("musicMuted = %q", v)
	}
	g.Step(press(core.ActionConfirm))
	if v, _, _ := g.kv.Get(KeyMusicMuted); v != "false" {
		t.Errorf("musicMuted = %q", v)
	}
}

func TestStartAtUsesSavedLoadout(t *testing.T) {
	g := newTestGame(t, 1)

	if err := g.StartAt(2); err != nil {
		t.Fatalf("StartAt(2) failed: %v", err)
	}
	if p := g.Round().Player; p.Health != 100 || p.Armor != 50 || p.Credits != 0 {
		t.Errorf("fallback loadout = %+v", p)
	}

	snap := Snapshot{Powers: []string{"common", "blue"}, Health: 70, Credits: 120, FastCommon: true, Current: "blue"}
	g.Records().SaveLoadout(2, snap)
	if err := g.StartAt(3); err != nil {
		t.Fatalf("StartAt(3) failed: %v", err)
	}
	got := FromPlayer(g.Round().Player)
	if got.Health != 70 || got.Credits != 120 || got.Current != "blue" || !got.FastCommon {
		t.Errorf("round 3 loadout = %+v", got)
	}

	if err := g.StartAt(4); err == nil {
		t.Error("StartAt(4) succeeded")
	}
}

func TestRoundTransitionPersistsLoadout(t *testing.T) {
	g := newTestGame(t, 3)
	g.StartAt(1)
	r := g.Round()
	g.until(t, 200, r.Ready)

	for _, e := range r.Enemies() {
		killShot(r, e.Pos)
	}
	g.Step(idle())

	if g.Round() == r || g.Round().Number() != 2 {
		t.Fatalf("round after clear = %d", g.Round().Number())
	}
	if g.events.count(EventRoundCleared) != 1 {
		t.Fatalf("RoundCleared events = %d", g.events.count(EventRoundCleared))
	}
	saved, ok := g.Records().LoadLoadout(1)
	if !ok || saved.Credits != 50 {
		t.Fatalf("round1Loadout = %+v, %v", saved, ok)
	}
	next := FromPlayer(g.Round().Player)
	if next.Credits != saved.Credits || next.Health != saved.Health || next.Armor != saved.Armor {
		t.Errorf("round 2 started with %+v, saved %+v", next, saved)
	}
	if g.Elapsed() == 0 {
		t.Error("run clock did not count round 1")
	}
}

func TestDeathReturnsToMenu(t *testing.T) {
	g := newTestGame(t, 1)
	g.StartAt(1)
	r := g.Round()
	r.Player.SetArmor(0)
	r.Player.SetHealth(5)
	r.Spawn(hostileAt(r))

	g.Step(idle())
	if g.Current() != StateGameOver || !g.State().GameOver {
		t.Fatalf("state = %v", g.Current())
	}
	if g.events.count(EventPlayerDied) != 1 {
		t.Fatalf("PlayerDied events = %d", g.events.count(EventPlayerDied))
	}
	if _, ok, _ := g.kv.Get(KeyRunTimeSeconds); !ok {
		t.Error("run time not recorded on death")
	}

	for i := 0; i < 19; i++ {
		g.Step(idle())
	}
	if g.Current() != StateGameOver {
		t.Fatalf("left game over before 2s")
	}
	g.Step(idle())
	if g.Current() != StateMenu || g.Round() != nil {
		t.Errorf("state after 2s = %v", g.Current())
	}
	if g.events.count(EventPlayerDied) != 1 {
		t.Errorf("PlayerDied emitted %d times", g.events.count(EventPlayerDied))
	}
}

// killBoss waits for the round 3 boss and finishes it off.
func (tg *testGame) killBoss(t *testing.T) {
	t.Helper()
	r := tg.Round()
	tg.until(t, 200, func() bool { return r.Boss() != nil })
	r.Boss().Vitals.Health = 1
	killShot(r, r.Boss().Pos)
	tg.until(t, 100, func() bool { return tg.Current() == StateVictory })
}

func TestVictoryRecordsCompletion(t *testing.T) {
	g := newTestGame(t, 5)
	g.StartAt(1)
	r := g.Round()
	g.until(t, 200, r.Ready)
	for _, e := range r.Enemies() {
		killShot(r, e.Pos)
	}
	g.until(t, 10, func() bool { return g.Round().Number() == 2 })

	r = g.Round()
	g.until(t, 200, func() bool { return len(r.Enemies()) > 0 })
	for _, e := range r.Enemies() {
		killShot(r, e.Pos)
	}
	g.until(t, 100, func() bool { return g.Round() != nil && g.Round().Number() == 3 })
	g.killBoss(t)

	if g.events.count(EventBossDefeated) != 1 || g.events.count(EventCampaignComplete) != 1 {
		t.Errorf("events = %+v", g.events.events)
	}
	if !g.Records().Completed() {
		t.Error("gameCompleted not set")
	}
	if _, ok := g.Records().FinalStats(); !ok {
		t.Error("finalStats not saved")
	}
	s := g.Summary()
	if s == nil || s.Player != "tester" || !s.NewBest || s.Practice {
		t.Fatalf("summary = %+v", s)
	}
	if want := s.Elapsed.Truncate(time.Second); s.Best != want {
		t.Errorf("Best = %v, want %v", s.Best, want)
	}
	if len(g.runs.runs) != 1 || g.runs.runs[0].Elapsed != s.Elapsed {
		t.Errorf("runs = %+v", g.runs.runs)
	}

	g.Step(press(core.ActionConfirm))
	if g.Current() != StateMenu {
		t.Errorf("state after confirm = %v", g.Current())
	}
}

func TestPracticeVictoryKeepsRecords(t *testing.T) {
	g := newTestGame(t, 5)
	g.kv.Set(KeyBestSeconds, "300")
	g.kv.Set(KeyRunTimeSeconds, "320")
	g.StartAt(3)
	g.killBoss(t)

	if best, ok := g.Records().BestTime(); !ok || best != 300*time.Second {
		t.Errorf("BestTime = %v, %v; want 5m0s", best, ok)
	}
	if last, ok := g.Records().LastRunTime(); !ok || last != 320*time.Second {
		t.Errorf("LastRunTime = %v, %v; want 5m20s", last, ok)
	}
	if len(g.runs.runs) != 0 {
		t.Errorf("practice run saved to history: %+v", g.runs.runs)
	}
	final, ok := g.Records().FinalStats()
	if !ok || final.Credits != 100 {
		t.Errorf("finalStats = %+v, %v", final, ok)
	}
	s := g.Summary()
	if s == nil || !s.Practice || s.NewBest || s.Best != 300*time.Second {
		t.Fatalf("summary = %+v", s)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !containsText(screen, "Practice run") {
		t.Errorf("victory screen does not mark the practice run:\n%s", screen.String())
	}
}

func TestPracticeDeathKeepsRunTime(t *testing.T) {
	g := newTestGame(t, 1)
	g.kv.Set(KeyRunTimeSeconds, "95")
	g.StartAt(2)
	r := g.Round()
	r.Player.SetArmor(0)
	r.Player.SetHealth(5)
	r.Spawn(hostileAt(r))
	g.Step(idle())

	if g.Current() != StateGameOver {
		t.Fatalf("state = %v", g.Current())
	}
	if v, _, _ := g.kv.Get(KeyRunTimeSeconds); v != "95" {
		t.Errorf("currentRunTimeSeconds = %q, want 95", v)
	}
}

func TestPauseStopsRound(t *testing.T) {
	g := newTestGame(t, 1)
	g.StartAt(1)
	g.Step(idle())
	now := g.Round().Now()

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("not paused")
	}
	for i := 0; i < 10; i++ {
		g.Step(idle())
	}
	if g.Round().Now() != now {
		t.Error("round advanced while paused")
	}
	g.Step(press(core.ActionPause))
	g.Step(idle())
	if g.Round().Now() == now {
		t.Error("round did not resume")
	}
}

func TestGameDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		in := core.NewInputFrame()
		in.Set(core.ActionFire)
		switch (i / 20) % 4 {
		case 0:
			in.Set(core.ActionLeft)
		case 1:
			in.Set(core.ActionUp)
		case 2:
			in.Set(core.ActionRight)
		default:
			in.Set(core.ActionDown)
		}
		return in
	}

	run := func() (string, core.GameState) {
		g := newTestGame(t, 99)
		g.StartAt(2)
		for i := 0; i < 250; i++ {
			g.Step(script(i))
		}
		screen := core.NewScreen(80, 24)
		g.Render(screen)
		return screen.String(), g.State()
	}

	a, sa := run()
	b, sb := run()
	if a != b || sa != sb {
		t.Errorf("same seed and input diverged:\n%s\n---\n%s", a, b)
	}
}

func TestRenderScreens(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !containsText(screen, "Central Park Guardian") || !containsText(screen, "Killed Commander: No") {
		t.Errorf("menu:\n%s", screen.String())
	}

	g.StartAt(1)
	g.Render(screen)
	if !containsText(screen, "Round 1: Grass") || !containsText(screen, "Get Ready: 10") {
		t.Errorf("round:\n%s", screen.String())
	}

	small := core.NewScreen(20, 10)
	g.Render(small)
	if !containsText(small, "small") {
		t.Errorf("small screen:\n%s", small.String())
	}
}

func TestEnemyColorFadesWhenWounded(t *testing.T) {
	tests := []struct {
		behavior ai.Behavior
		health   int
		want     core.Color
	}{
		{ai.Stationary, 50, core.ColorRed},
		{ai.Stationary, 20, core.ColorYellow},
		{ai.Mobile, 50, core.ColorMagenta},
		{ai.Mobile, 10, core.ColorGray},
	}
	for _, tc := range tests {
		e := &ai.Enemy{Behavior: tc.behavior, MaxHP: 50, Vitals: combat.Vitals{Health: tc.health}}
		if got := enemyColor(e); got != tc.want {
			t.Errorf("%v at %d/50 = %v, want %v", tc.behavior, tc.health, got, tc.want)
		}
	}
}

func TestPointerAimsAtArenaCell(t *testing.T) {
	g := newTestGame(t, 1)
	g.Render(core.NewScreen(80, 24))

	in := core.NewInputFrame()
	in.Aim(1, 3) // first arena cell
	aim := g.aim(in)
	if aim == nil || aim.X <= 0 || aim.X >= 800.0/78 || aim.Y <= 0 || aim.Y >= 600.0/19 {
		t.Errorf("aim = %v, want inside the top-left cell", aim)
	}

	in.Aim(0, 0) // HUD
	if g.aim(in) != nil {
		t.Error("pointer on the HUD produced an aim point")
	}
}

func hostileAt(r *Round) *combat.Projectile {
	return &combat.Projectile{
		Pos: r.Pos, Damage: 50, TTL: time.Second,
		Faction: combat.FactionEnemy, Radius: 3, Active: true,
	}
}

func containsText(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}
