package ai

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
)

const ms = time.Millisecond

type player struct {
	pos   core.Vec
	alive bool
}

func (p *player) Position() core.Vec { return p.pos }
func (p *player) Alive() bool        { return p.alive }

type gate struct{ ready bool }

func (g *gate) Ready() bool { return g.ready }

type sink struct{ shots []*combat.Projectile }

func (s *sink) Spawn(p *combat.Projectile) { s.shots = append(s.shots, p) }

// scripted returns queued values for Intn and falls back to 0.
type scripted struct{ ints []int }

func (r *scripted) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (r *scripted) Float64() float64 { return 0 }

type fixture struct {
	s      *sched.Scheduler
	player *player
	gate   *gate
	sink   *sink
	deps   Deps
}

func newFixture(r core.Rand) *fixture {
	f := &fixture{
		s:      sched.New(),
		player: &player{pos: core.V(400, 300), alive: true},
		gate:   &gate{ready: true},
		sink:   &sink{},
	}
	f.deps = Deps{Target: f.player, Gate: f.gate, Spawner: f.sink, Rand: r}
	return f
}

func roundSquad(t *testing.T, f *fixture, round int) *Squad {
	t.Helper()
	rc, ok := config.DefaultConfig().Round(round)
	if !ok {
		t.Fatalf("round %d missing", round)
	}
	return NewSquad(f.s, SquadConfigFrom(rc.Enemies), f.deps)
}

func TestStationaryVolleyOneShooterPerInterval(t *testing.T) {
	f := newFixture(core.NewRNG(4))
	q := roundSquad(t, f, 1)
	q.Deploy(arena.Default)
	if len(q.Enemies()) != 5 {
		t.Fatalf("deployed %d enemies, want 5", len(q.Enemies()))
	}
	for _, e := range q.Enemies() {
		if e.Vitals.Health != 100 || e.Vitals.Armor != 100 {
			t.Fatalf("round 1 enemy vitals = %+v", e.Vitals)
		}
		if e.Pos.X < 50 || e.Pos.X > 750 || e.Pos.Y < 50 || e.Pos.Y > 550 {
			t.Errorf("enemy outside spawn margin: %v", e.Pos)
		}
	}

	q.Start()
	f.s.Advance(433 * 3 * ms)
	if len(f.sink.shots) != 3 {
		t.Fatalf("shots = %d, want 3", len(f.sink.shots))
	}
	for _, s := range f.sink.shots {
		if math.Abs(s.Vel.Len()-150) > 1e-9 || s.Damage != 20 || s.Faction != combat.FactionEnemy {
			t.Errorf("shot = %+v", s)
		}
		if s.TTL != 2000*ms {
			t.Errorf("TTL = %v, want 2s", s.TTL)
		}
	}
}

func TestVolleyGatedByReadyAndPlayer(t *testing.T) {
	f := newFixture(core.NewRNG(1))
	q := roundSquad(t, f, 1)
	q.Deploy(arena.Default)
	q.Start()

	f.gate.ready = false
	f.s.Advance(2 * time.Second)
	if len(f.sink.shots) != 0 {
		t.Fatalf("fired %d shots before ready", len(f.sink.shots))
	}

	f.gate.ready = true
	f.player.alive = false
	f.s.Advance(2 * time.Second)
	if len(f.sink.shots) != 0 {
		t.Fatalf("fired %d shots at a dead player", len(f.sink.shots))
	}
}

func TestKillCancelsTimers(t *testing.T) {
	f := newFixture(core.NewRNG(2))
	q := roundSquad(t, f, 2)
	q.Deploy(arena.Default)
	q.Start()

	enemies := q.Enemies()
	if len(enemies) != 16 {
		t.Fatalf("deployed %d, want 16", len(enemies))
	}
	mobiles := 0
	for _, e := range enemies {
		if e.Behavior == Mobile {
			mobiles++
		}
		if e.Vitals.Armor != 0 || e.Vitals.Health != 50 {
			t.Errorf("round 2 enemy vitals = %+v", e.Vitals)
		}
	}
	if mobiles != 3 {
		t.Fatalf("mobiles = %d, want 3", mobiles)
	}

	// 1 volley + 2 timers for each mobile enemy.
	if got := f.s.Pending(); got != 7 {
		t.Fatalf("Pending = %d, want 7", got)
	}

	kills := 0
	for _, e := range enemies {
		if q.Hit(e, 50).Killed {
			kills++
		}
		if q.Hit(e, 50).Killed {
			t.Fatalf("enemy %d killed twice", e.ID)
		}
	}
	if kills != 16 || q.Remaining() != 0 {
		t.Fatalf("kills=%d remaining=%d", kills, q.Remaining())
	}
	if got := f.s.Pending(); got != 0 {
		t.Errorf("Pending after wipe = %d, want 0", got)
	}
}

func TestMobileChasesAndFires(t *testing.T) {
	f := newFixture(core.NewRNG(3))
	cfg := SquadConfigFrom(mustRound(t, 2).Enemies)
	q := NewSquad(f.s, cfg, f.deps)
	e := q.Add(core.V(100, 300), Mobile)
	q.Start()

	f.s.Advance(200 * ms)
	if math.Abs(e.Vel.X-100) > 1e-9 || math.Abs(e.Vel.Y) > 1e-9 {
		t.Fatalf("velocity = %v, want {100 0}", e.Vel)
	}
	q.Update(time.Second, arena.Default)
	if math.Abs(e.Pos.X-200) > 1e-9 {
		t.Errorf("moved to %v, want x=200", e.Pos)
	}

	f.s.Advance(800 * ms)
	if len(f.sink.shots) != 1 {
		t.Fatalf("mobile shots = %d, want 1", len(f.sink.shots))
	}

	// The shot keeps its launch velocity when the player moves.
	shot := f.sink.shots[0]
	before := shot.Vel
	f.player.pos = core.V(400, 100)
	f.s.Advance(100 * ms)
	if shot.Vel != before {
		t.Error("enemy projectile retargeted after launch")
	}
}

func mustRound(t *testing.T, n int) config.RoundConfig {
	t.Helper()
	rc, ok := config.DefaultConfig().Round(n)
	if !ok {
		t.Fatalf("round %d missing", n)
	}
	return rc
}

func TestMobileStopsAtTarget(t *testing.T) {
	f := newFixture(core.NewRNG(3))
	cfg := SquadConfigFrom(mustRound(t, 2).Enemies)
	q := NewSquad(f.s, cfg, f.deps)
	e := q.Add(core.V(100, 300), Mobile)
	q.Start()

	f.s.Advance(cfg.MobileRetarget)
	q.Update(4*time.Second, arena.Default)
	if e.Pos != core.V(400, 300) || e.Vel != (core.Vec{}) {
		t.Fatalf("after overshooting step: pos=%v vel=%v, want stopped at {400 300}", e.Pos, e.Vel)
	}
	q.Update(time.Second, arena.Default)
	if e.Pos != core.V(400, 300) {
		t.Errorf("drifted past the target to %v", e.Pos)
	}

	f.player.pos = core.V(400, 100)
	f.s.Advance(cfg.MobileRetarget)
	if e.Vel == (core.Vec{}) {
		t.Error("no new heading after retarget")
	}
}

func TestEnemyHealthFraction(t *testing.T) {
	f := newFixture(core.NewRNG(1))
	q := roundSquad(t, f, 2)
	e := q.Add(core.V(200, 200), Stationary)
	if got := e.HealthFraction(); got != 1 {
		t.Fatalf("fresh enemy = %v, want 1", got)
	}
	q.Hit(e, 20)
	if got := e.HealthFraction(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("after 20 damage = %v, want 0.6", got)
	}
	q.Hit(e, 100)
	if got := e.HealthFraction(); got != 0 {
		t.Errorf("dead enemy = %v, want 0", got)
	}
}
