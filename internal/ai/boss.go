package ai

import (
	"time"

	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
)

// BossState is the lifecycle of the boss.
type BossState int

const (
	BossIdle BossState = iota
	BossActive
	BossDying
	BossDead
)

func (s BossState) String() string {
	switch s {
	case BossIdle:
		return "idle"
	case BossActive:
		return "active"
	case BossDying:
		return "dying"
	default:
		return "dead"
	}
}

// BossConfig holds the boss encounter values.
type BossConfig struct {
	MaxHealth          int
	Radius             float64
	Spawn              core.Vec
	MoveInterval       time.Duration
	AttackInterval     time.Duration
	DesperationDelay   time.Duration
	EnrageRatio        float64
	DesperationRatio   float64
	SpeedMultiplier    float64
	ProjectileDamage   int
	ProjectileLifetime time.Duration
	ContactDamage      int
	ContactCooldown    time.Duration
	DeathSequence      time.Duration
	Reward             int
}

// BossConfigFrom converts the YAML boss section. reward is the credit
// payout on defeat.
func BossConfigFrom(b config.BossConfig, reward int) BossConfig {
	return BossConfig{
		MaxHealth:          b.Health,
		Radius:             b.Radius,
		Spawn:              core.V(b.X, b.Y),
		MoveInterval:       config.Ms(b.MoveIntervalMS),
		AttackInterval:     config.Ms(b.AttackIntervalMS),
		DesperationDelay:   config.Ms(b.DesperationDelayMS),
		EnrageRatio:        b.EnrageRatio,
		DesperationRatio:   b.DesperationRatio,
		SpeedMultiplier:    b.SpeedMultiplier,
		ProjectileDamage:   b.ProjectileDamage,
		ProjectileLifetime: config.Ms(b.ProjectileLifetimeMS),
		ContactDamage:      b.ContactDamage,
		ContactCooldown:    config.Ms(b.ContactCooldownMS),
		DeathSequence:      config.Ms(b.DeathSequenceMS),
		Reward:             reward,
	}
}

// BossHooks receives presentation cues. Calls must not block.
type BossHooks interface {
	Telegraph(pos core.Vec)
	BossDying(pos core.Vec)
}

type nopBossHooks struct{}

func (nopBossHooks) Telegraph(core.Vec) {}
func (nopBossHooks) BossDying(core.Vec) {}

// Boss is the round-3 encounter.
type Boss struct {
	Pos    core.Vec
	Vel    core.Vec
	Vitals combat.Vitals
	Radius float64

	// OnDefeated runs once when the death sequence ends.
	OnDefeated func(reward int)

	cfg      BossConfig
	deps     Deps
	hooks    BossHooks
	s        *sched.Scheduler
	patterns *sched.Group // movement, attack and their follow-ups
	life     *sched.Group // death sequence
	state    BossState
	movement Movement
	dest     *core.Vec

	lastContact time.Duration
	touched     bool
}

// NewBoss creates an idle boss at its spawn point.
func NewBoss(s *sched.Scheduler, cfg BossConfig, deps Deps, hooks BossHooks) *Boss {
	if hooks == nil {
		hooks = nopBossHooks{}
	}
	return &Boss{
		Pos:      cfg.Spawn,
		Vitals:   combat.Vitals{Health: cfg.MaxHealth},
		Radius:   cfg.Radius,
		cfg:      cfg,
		deps:     deps,
		hooks:    hooks,
		s:        s,
		patterns: s.NewGroup(),
		life:     s.NewGroup(),
		movement: HoldPosition,
	}
}

// State returns the lifecycle state.
func (b *Boss) State() BossState {
	return b.state
}

// Alive reports whether the boss can still fight.
func (b *Boss) Alive() bool {
	return b.state == BossIdle || b.state == BossActive
}

// Movement returns the current movement pattern.
func (b *Boss) Movement() Movement {
	return b.movement
}

// MaxHealth returns the configured maximum.
func (b *Boss) MaxHealth() int {
	return b.cfg.MaxHealth
}

// Enraged reports health below the enrage ratio of the maximum.
func (b *Boss) Enraged() bool {
	return float64(b.Vitals.Health) < float64(b.cfg.MaxHealth)*b.cfg.EnrageRatio
}

// Desperate reports health below the desperation ratio of the maximum.
func (b *Boss) Desperate() bool {
	return float64(b.Vitals.Health) < float64(b.cfg.MaxHealth)*b.cfg.DesperationRatio
}

// Activate starts the movement and attack timers. It has no effect unless
// the boss is idle.
func (b *Boss) Activate() {
	if b.state != BossIdle {
		return
	}
	b.state = BossActive
	b.patterns.Every(b.cfg.MoveInterval, func() {
		b.Move(Movement(b.deps.Rand.Intn(movementCount)))
	})
	b.patterns.Every(b.cfg.AttackInterval, b.attackTick)
}

func (b *Boss) attackTick() {
	if b.state != BossActive || !b.deps.canAct() {
		return
	}
	b.Attack(Attack(b.deps.Rand.Intn(attackCount)))
	if b.Desperate() {
		b.patterns.After(b.cfg.DesperationDelay, func() {
			if b.state != BossActive || !b.deps.canAct() {
				return
			}
			b.Desperation(Desperation(b.deps.Rand.Intn(desperationCount)))
		})
	}
}

// TakeDamage applies damage through the shared damage rule. The killing
// hit starts the death sequence; later hits are ignored.
func (b *Boss) TakeDamage(n int) combat.DamageResult {
	if !b.Alive() {
		return combat.DamageResult{Health: b.Vitals.Health, Armor: b.Vitals.Armor, Dead: true}
	}
	res := combat.ApplyDamage(&b.Vitals, n)
	if res.Killed {
		b.die()
	}
	return res
}

func (b *Boss) die() {
	b.state = BossDying
	b.patterns.Cancel()
	b.Vel = core.Vec{}
	b.dest = nil
	b.hooks.BossDying(b.Pos)
	b.life.After(b.cfg.DeathSequence, func() {
		b.state = BossDead
		if b.OnDefeated != nil {
			b.OnDefeated(b.cfg.Reward)
		}
	})
}

// Contact returns the body-contact damage to deal to the player at time
// now, honoring the contact cooldown.
func (b *Boss) Contact(now time.Duration) (int, bool) {
	if !b.Alive() {
		return 0, false
	}
	if b.touched && now < b.lastContact+b.cfg.ContactCooldown {
		return 0, false
	}
	b.touched = true
	b.lastContact = now
	return b.cfg.ContactDamage, true
}

// Update integrates movement for dt and keeps the boss in bounds.
func (b *Boss) Update(dt time.Duration, bounds arena.Bounds) {
	if !b.Alive() || b.Vel == (core.Vec{}) {
		return
	}
	step := b.Vel.Scale(dt.Seconds())
	if b.dest != nil && b.Pos.Dist(*b.dest) <= step.Len() {
		b.Pos = *b.dest
		b.Vel = core.Vec{}
		b.dest = nil
		return
	}
	b.Pos = bounds.Clamp(b.Pos.Add(step), b.Radius)
}

// Stop cancels every boss timer, including a running death sequence.
func (b *Boss) Stop() {
	b.patterns.Cancel()
	b.life.Cancel()
}
