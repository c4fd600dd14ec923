// Package campaign runs the three-round progression: the round state
// machine that resolves combat each tick, the loadout handoff between
// rounds, persisted records, and the host-facing Game.
package campaign

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/park-guardian/internal/ai"
	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
)

// Phase is the lifecycle of a round.
type Phase int

const (
	PhaseNotReady Phase = iota // grace period, nobody shoots
	PhaseReady
	PhaseCleared
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotReady:
		return "not_ready"
	case PhaseReady:
		return "ready"
	case PhaseCleared:
		return "cleared"
	default:
		return "failed"
	}
}

const pickupRadius = 14

// Pickup is a weapon tier lying in the arena. Touching it unlocks the tier.
type Pickup struct {
	Power  combat.Power
	Pos    core.Vec
	Radius float64
	Active bool
}

// Round is one round of the campaign. It owns the player body, the weapon,
// the enemies or the boss, every projectile, and the round's timers.
type Round struct {
	Player *combat.PlayerState
	Pos    core.Vec

	// OnBossDefeated runs once when the boss death sequence ends.
	OnBossDefeated func()

	cfg    config.GuardianConfig
	rc     config.RoundConfig
	bounds arena.Bounds
	rng    core.Rand
	hooks  Hooks

	s      *sched.Scheduler
	timers *sched.Group

	weapon  *combat.Weapon
	squad   *ai.Squad
	boss    *ai.Boss
	shots   []*combat.Projectile
	pickups []*Pickup

	phase    Phase
	spawned  bool
	clearing bool
	defeated bool
}

// NewRound sets up round n for the given player. The grace and spawn
// timers start at once; nothing moves until Step is called.
func NewRound(n int, cfg config.GuardianConfig, player *combat.PlayerState, rng core.Rand, hooks Hooks) (*Round, error) {
	rc, ok := cfg.Round(n)
	if !ok {
		return nil, fmt.Errorf("campaign: round %d is not configured", n)
	}
	if hooks == nil {
		hooks = NopHooks{}
	}

	s := sched.New()
	r := &Round{
		Player: player,
		cfg:    cfg,
		rc:     rc,
		bounds: arena.Bounds{W: cfg.Arena.Width, H: cfg.Arena.Height},
		rng:    rng,
		hooks:  hooks,
		s:      s,
		timers: s.NewGroup(),
	}
	r.Pos = r.bounds.Clamp(core.V(rc.Spawn.X, rc.Spawn.Y), cfg.Player.Radius)
	r.weapon = combat.NewWeapon(combat.NewArsenal(rc.Weapons), r, rng)

	if rc.Pickups {
		for idx, p := range combat.AllPowers {
			if player.Powers.Has(p) {
				continue
			}
			r.pickups = append(r.pickups, &Pickup{
				Power:  p,
				Pos:    core.V(100+float64(idx)*150, 100),
				Radius: pickupRadius,
				Active: true,
			})
		}
	}

	r.timers.After(config.Ms(rc.GraceMS), r.ready)
	if rc.SpawnDelayMS > 0 {
		r.timers.After(config.Ms(rc.SpawnDelayMS), r.spawn)
	} else {
		r.spawn()
	}
	hooks.Banner(fmt.Sprintf("Round %d: %s", rc.Number, rc.Name))
	return r, nil
}

func (r *Round) ready() {
	if r.phase != PhaseNotReady {
		return
	}
	r.phase = PhaseReady
	r.hooks.Banner("Fight!")
}

func (r *Round) spawn() {
	if r.spawned {
		return
	}
	r.spawned = true
	deps := ai.Deps{Target: r, Gate: r, Spawner: r, Rand: r.rng}
	if r.rc.Boss {
		r.boss = ai.NewBoss(r.s, ai.BossConfigFrom(r.cfg.Boss, r.cfg.Rewards.BossCredits), deps, r.hooks)
		r.boss.OnDefeated = r.bossDefeated
		r.boss.Activate()
		return
	}
	r.squad = ai.NewSquad(r.s, ai.SquadConfigFrom(r.rc.Enemies), deps)
	r.squad.Deploy(r.bounds)
	r.squad.Start()
}

// Position is the player's position in the arena.
func (r *Round) Position() core.Vec { return r.Pos }

// Alive reports whether the player is alive.
func (r *Round) Alive() bool { return r.Player.Alive() }

// Ready reports whether combat has started.
func (r *Round) Ready() bool { return r.phase == PhaseReady }

// Spawn adds a hostile projectile.
func (r *Round) Spawn(p *combat.Projectile) {
	r.shots = append(r.shots, p)
}

// Step advances the round by dt. Fire aims at aim when given, else at the
// nearest enemy, else straight up.
func (r *Round) Step(dt time.Duration, in core.InputFrame, aim *core.Vec) {
	if r.Done() {
		return
	}

	r.move(dt, in)
	for i, a := range []core.Action{core.ActionPower1, core.ActionPower2, core.ActionPower3} {
		if in.Has(a) {
			r.Player.Select(combat.AllPowers[i])
		}
	}
	if in.Has(core.ActionFire) {
		r.fire(aim)
	}

	r.s.Advance(dt)
	if r.Done() {
		return
	}

	if r.squad != nil {
		r.squad.Update(dt, r.bounds)
	}
	if r.boss != nil {
		r.boss.Update(dt, r.bounds)
	}
	for _, p := range r.shots {
		p.Tick(dt)
		if !r.bounds.Contains(p.Pos) {
			p.Active = false
		}
	}

	r.collide()
	r.shots = combat.Compact(r.shots)
	r.checkClear()
}

func (r *Round) move(dt time.Duration, in core.InputFrame) {
	var dir core.Vec
	if in.Has(core.ActionLeft) {
		dir.X--
	}
	if in.Has(core.ActionRight) {
		dir.X++
	}
	if in.Has(core.ActionUp) {
		dir.Y--
	}
	if in.Has(core.ActionDown) {
		dir.Y++
	}
	if dir == (core.Vec{}) || !r.Player.Alive() {
		return
	}
	step := dir.Norm().Scale(r.cfg.Player.Speed * dt.Seconds())
	r.Pos = r.bounds.Clamp(r.Pos.Add(step), r.cfg.Player.Radius)
}

func (r *Round) fire(aim *core.Vec) {
	if !r.Player.Alive() {
		return
	}
	target := r.Pos
	if aim != nil {
		target = *aim
	} else if t, ok := r.nearestHostile(); ok {
		target = t
	}
	shots := r.weapon.Fire(combat.FireRequest{
		Time:       r.s.Now(),
		Origin:     r.Pos,
		Target:     target,
		Power:      r.Player.Current,
		FastCommon: r.Player.FastCommon,
	})
	if len(shots) == 0 {
		return
	}
	r.shots = append(r.shots, shots...)
	r.hooks.Shot(r.Pos, r.Player.Current)
}

func (r *Round) nearestHostile() (core.Vec, bool) {
	if r.boss != nil && r.boss.Alive() {
		return r.boss.Pos, true
	}
	if r.squad == nil {
		return core.Vec{}, false
	}
	best, found := math.Inf(1), false
	var at core.Vec
	for _, e := range r.squad.Enemies() {
		if !e.Active {
			continue
		}
		if d := r.Pos.Dist(e.Pos); d < best {
			best, at, found = d, e.Pos, true
		}
	}
	return at, found
}

func (r *Round) collide() {
	now := r.s.Now()
	body := arena.Circle{Pos: r.Pos, Radius: r.cfg.Player.Radius}

	var mine, hostile []arena.Circle
	for i, p := range r.shots {
		if !p.Active {
			continue
		}
		c := arena.Circle{ID: i, Pos: p.Pos, Radius: p.Radius}
		if p.Hostile() {
			hostile = append(hostile, c)
		} else {
			mine = append(mine, c)
		}
	}

	if r.squad != nil {
		enemies := r.squad.Enemies()
		var targets []arena.Circle
		for i, e := range enemies {
			if e.Active {
				targets = append(targets, arena.Circle{ID: i, Pos: e.Pos, Radius: e.Radius})
			}
		}
		for _, pr := range arena.Pairs(mine, targets) {
			shot, e := r.shots[pr.A], enemies[pr.B]
			if !e.Active || !shot.Consume() {
				continue
			}
			res := r.squad.Hit(e, shot.Damage)
			r.hooks.Hit(e.Pos, shot.Damage)
			if res.Killed {
				r.Player.AddCredits(r.cfg.Rewards.KillCredits)
			}
		}
	}

	if r.boss != nil && r.boss.Alive() {
		target := arena.Circle{Pos: r.boss.Pos, Radius: r.boss.Radius}
		for _, pr := range arena.Pairs(mine, []arena.Circle{target}) {
			shot := r.shots[pr.A]
			if !r.boss.Alive() || !shot.Consume() {
				continue
			}
			r.boss.TakeDamage(shot.Damage)
			r.hooks.Hit(r.boss.Pos, shot.Damage)
		}
		if r.Player.Alive() && arena.Overlaps(body, target) {
			if dmg, ok := r.boss.Contact(now); ok {
				r.hurt(dmg)
			}
		}
	}

	for _, pr := range arena.Pairs(hostile, []arena.Circle{body}) {
		if !r.Player.Alive() {
			break
		}
		if shot := r.shots[pr.A]; shot.Consume() {
			r.hurt(shot.Damage)
		}
	}

	for _, pk := range r.pickups {
		if !pk.Active || !r.Player.Alive() {
			continue
		}
		if arena.Overlaps(body, arena.Circle{Pos: pk.Pos, Radius: pk.Radius}) {
			pk.Active = false
			r.Player.Unlock(pk.Power)
			r.hooks.Banner("Unlocked " + pk.Power.String())
		}
	}
}

func (r *Round) hurt(dmg int) {
	res := r.Player.TakeDamage(dmg)
	r.hooks.Hit(r.Pos, dmg)
	r.hooks.Shake(float64(dmg) / 100)
	if res.Killed {
		r.fail()
	}
}

func (r *Round) fail() {
	r.phase = PhaseFailed
	r.halt()
	r.hooks.Banner("Game Over")
}

func (r *Round) checkClear() {
	if r.phase != PhaseReady || r.clearing || r.squad == nil {
		return
	}
	if r.squad.Remaining() == 0 && r.Player.Credits >= r.rc.CreditGate {
		r.beginClear()
	}
}

func (r *Round) bossDefeated(reward int) {
	if r.defeated {
		return
	}
	r.defeated = true
	r.Player.AddCredits(reward)
	r.hooks.Banner("BOSS DEFEATED!")
	if r.OnBossDefeated != nil {
		r.OnBossDefeated()
	}
	r.beginClear()
}

func (r *Round) beginClear() {
	r.clearing = true
	r.dropHostile()
	if r.squad != nil {
		r.squad.Stop()
	}
	delay := config.Ms(r.rc.ClearDelayMS)
	if delay <= 0 {
		r.clear()
		return
	}
	r.timers.After(delay, r.clear)
}

func (r *Round) clear() {
	if r.Done() {
		return
	}
	r.phase = PhaseCleared
	r.halt()
}

// halt cancels every timer of the round and drops hostile projectiles.
func (r *Round) halt() {
	r.timers.Cancel()
	if r.squad != nil {
		r.squad.Stop()
	}
	if r.boss != nil {
		r.boss.Stop()
	}
	r.dropHostile()
}

func (r *Round) dropHostile() {
	for _, p := range r.shots {
		if p.Hostile() {
			p.Active = false
		}
	}
	r.shots = combat.Compact(r.shots)
}

// Abandon stops the round without an outcome.
func (r *Round) Abandon() {
	r.halt()
}

// Done reports whether the round has an outcome.
func (r *Round) Done() bool {
	return r.phase == PhaseCleared || r.phase == PhaseFailed
}

func (r *Round) Number() int          { return r.rc.Number }
func (r *Round) Name() string         { return r.rc.Name }
func (r *Round) Phase() Phase         { return r.phase }
func (r *Round) Clearing() bool       { return r.clearing }
func (r *Round) Now() time.Duration   { return r.s.Now() }
func (r *Round) Bounds() arena.Bounds { return r.bounds }
func (r *Round) Boss() *ai.Boss       { return r.boss }
func (r *Round) Pickups() []*Pickup   { return r.pickups }

// Projectiles returns the live projectiles.
func (r *Round) Projectiles() []*combat.Projectile {
	return r.shots
}

// Enemies returns the regular enemies, nil before they spawn and in the
// boss round.
func (r *Round) Enemies() []*ai.Enemy {
	if r.squad == nil {
		return nil
	}
	return r.squad.Enemies()
}

// Remaining counts living enemies, or 1 while the boss lives.
func (r *Round) Remaining() int {
	switch {
	case r.squad != nil:
		return r.squad.Remaining()
	case r.boss != nil && r.boss.Alive():
		return 1
	}
	return 0
}

// Countdown returns the time left in the grace period.
func (r *Round) Countdown() time.Duration {
	if r.phase != PhaseNotReady {
		return 0
	}
	return max(config.Ms(r.rc.GraceMS)-r.s.Now(), 0)
}
