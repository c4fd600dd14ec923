package ai

import (
	"time"

	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
)

// SquadConfig holds the timings and projectile of one round's enemies.
type SquadConfig struct {
	Stationary int
	Mobile     int
	Health     int
	Armor      int
	Radius     float64
	Margin     float64

	FireInterval       time.Duration
	MobileFireInterval time.Duration
	MobileRetarget     time.Duration
	MobileSpeed        float64

	ProjectileSpeed    float64
	ProjectileDamage   int
	ProjectileLifetime time.Duration
}

// ProjectileRadius is the size of enemy bullets.
const ProjectileRadius = 3

// SquadConfigFrom converts a round's YAML enemy section.
func SquadConfigFrom(e config.EnemyConfig) SquadConfig {
	return SquadConfig{
		Stationary:         e.Stationary,
		Mobile:             e.Mobile,
		Health:             e.Health,
		Armor:              e.Armor,
		Radius:             e.Radius,
		Margin:             e.Margin,
		FireInterval:       config.Ms(e.FireIntervalMS),
		MobileFireInterval: config.Ms(e.MobileFireIntervalMS),
		MobileRetarget:     config.Ms(e.MobileRetargetMS),
		MobileSpeed:        e.MobileSpeed,
		ProjectileSpeed:    e.ProjectileSpeed,
		ProjectileDamage:   e.ProjectileDamage,
		ProjectileLifetime: config.Ms(e.ProjectileLifetimeMS),
	}
}

// Squad owns every regular enemy of a round and their timers.
type Squad struct {
	cfg     SquadConfig
	deps    Deps
	s       *sched.Scheduler
	enemies []*Enemy
	volley  *sched.Timer
	started bool
	stopped bool
}

// NewSquad creates an empty squad.
func NewSquad(s *sched.Scheduler, cfg SquadConfig, deps Deps) *Squad {
	return &Squad{cfg: cfg, deps: deps, s: s}
}

// Deploy places the configured enemies at random positions inside bounds,
// mobile enemies first.
func (q *Squad) Deploy(b arena.Bounds) {
	total := q.cfg.Mobile + q.cfg.Stationary
	for i := 0; i < total; i++ {
		behavior := Stationary
		if i < q.cfg.Mobile {
			behavior = Mobile
		}
		pos := core.Vec{
			X: core.FloatBetween(q.deps.Rand, q.cfg.Margin, b.W-q.cfg.Margin),
			Y: core.FloatBetween(q.deps.Rand, q.cfg.Margin, b.H-q.cfg.Margin),
		}
		q.Add(pos, behavior)
	}
}

// Add places one enemy. Enemies added after Start get their timers at once.
func (q *Squad) Add(pos core.Vec, behavior Behavior) *Enemy {
	e := &Enemy{
		ID:       len(q.enemies) + 1,
		Pos:      pos,
		Radius:   q.cfg.Radius,
		Vitals:   combat.Vitals{Health: q.cfg.Health, Armor: q.cfg.Armor},
		MaxHP:    q.cfg.Health,
		Behavior: behavior,
		Active:   true,
		timers:   q.s.NewGroup(),
	}
	if behavior == Mobile {
		e.Speed = q.cfg.MobileSpeed
	}
	q.enemies = append(q.enemies, e)
	if q.started && !q.stopped {
		q.arm(e)
	}
	return e
}

// Start begins the volley timer and every mobile enemy's timers.
func (q *Squad) Start() {
	if q.started || q.stopped {
		return
	}
	q.started = true
	if q.cfg.FireInterval > 0 && q.stationaryAlive() > 0 {
		q.volley = q.s.Every(q.cfg.FireInterval, q.fireVolley)
	}
	for _, e := range q.enemies {
		if e.Active {
			q.arm(e)
		}
	}
}

func (q *Squad) arm(e *Enemy) {
	if e.Behavior != Mobile {
		return
	}
	e.timers.Every(q.cfg.MobileRetarget, func() {
		if !e.Active || !q.deps.canAct() {
			return
		}
		dest := q.deps.Target.Position()
		e.dest = &dest
		e.Vel = core.Toward(e.Pos, dest, e.Speed)
	})
	e.timers.Every(q.cfg.MobileFireInterval, func() {
		if !e.Active || !q.deps.canAct() {
			return
		}
		q.shoot(e)
	})
}

// fireVolley makes one random living stationary enemy shoot.
func (q *Squad) fireVolley() {
	if !q.deps.canAct() {
		return
	}
	var alive []*Enemy
	for _, e := range q.enemies {
		if e.Active && e.Behavior == Stationary {
			alive = append(alive, e)
		}
	}
	if len(alive) == 0 {
		return
	}
	q.shoot(alive[q.deps.Rand.Intn(len(alive))])
}

func (q *Squad) shoot(e *Enemy) {
	q.deps.Spawner.Spawn(&combat.Projectile{
		Pos:     e.Pos,
		Vel:     core.Toward(e.Pos, q.deps.Target.Position(), q.cfg.ProjectileSpeed),
		Damage:  q.cfg.ProjectileDamage,
		TTL:     q.cfg.ProjectileLifetime,
		Faction: combat.FactionEnemy,
		Radius:  ProjectileRadius,
		Active:  true,
	})
}

// Hit applies damage to an enemy. A kill deactivates the enemy and cancels
// its timers, and the volley timer once no stationary enemy is left.
func (q *Squad) Hit(e *Enemy, dmg int) combat.DamageResult {
	res := combat.ApplyDamage(&e.Vitals, dmg)
	if !res.Killed {
		return res
	}
	e.Active = false
	e.Vel = core.Vec{}
	e.dest = nil
	e.timers.Cancel()
	if q.stationaryAlive() == 0 {
		q.volley.Cancel()
	}
	return res
}

// Update integrates mobile movement for dt. An enemy that reaches the
// point it was sent to stops there until the next retarget.
func (q *Squad) Update(dt time.Duration, b arena.Bounds) {
	for _, e := range q.enemies {
		if !e.Active || e.Vel == (core.Vec{}) {
			continue
		}
		step := e.Vel.Scale(dt.Seconds())
		if e.dest != nil && e.Pos.Dist(*e.dest) <= step.Len() {
			e.Pos = b.Clamp(*e.dest, e.Radius)
			e.Vel = core.Vec{}
			e.dest = nil
			continue
		}
		e.Pos = b.Clamp(e.Pos.Add(step), e.Radius)
	}
}

// Remaining counts living enemies.
func (q *Squad) Remaining() int {
	n := 0
	for _, e := range q.enemies {
		if e.Active {
			n++
		}
	}
	return n
}

func (q *Squad) stationaryAlive() int {
	n := 0
	for _, e := range q.enemies {
		if e.Active && e.Behavior == Stationary {
			n++
		}
	}
	return n
}

// Enemies returns all enemies, dead ones included.
func (q *Squad) Enemies() []*Enemy {
	return q.enemies
}

// Stop cancels every timer of the squad.
func (q *Squad) Stop() {
	q.stopped = true
	q.volley.Cancel()
	for _, e := range q.enemies {
		e.timers.Cancel()
	}
}
