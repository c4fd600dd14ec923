package ai

import (
	"math"
	"time"

	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/core"
)

// Movement is a boss movement pattern.
type Movement int

const (
	MoveToPoint Movement = iota
	ChasePlayer
	Strafe
	HoldPosition
	movementCount = 4
)

func (m Movement) String() string {
	switch m {
	case MoveToPoint:
		return "move"
	case ChasePlayer:
		return "chase"
	case Strafe:
		return "strafe"
	default:
		return "hold"
	}
}

// Attack is a boss attack pattern.
type Attack int

const (
	AimedShot Attack = iota
	TripleSpread
	CircleBurst
	ChaseShot
	attackCount = 4
)

// Desperation is the extra attack of a badly hurt boss.
type Desperation int

const (
	TrackingShot Desperation = iota
	ScatterShot
	desperationCount = 2
)

// Pattern constants.
const (
	moveSpeed      = 300
	chaseSpeed     = 360
	strafeSpeed    = 400
	patternHold    = 1500 * time.Millisecond
	aimedSpeed     = 200
	spreadAngle    = 0.3
	burstSpeed     = 150
	burstWays      = 8
	chaseShotSpeed = 250
	rageShotSpeed  = 300
	trackingSpeed  = 280
	scatterShots   = 3
	scatterOffset  = 100
	shotRadius     = 6
	rageShotRadius = 8
	destXMin       = 100
	destXMax       = 700
	destYMin       = 100
	destYMax       = 200
)

// Move switches to a movement pattern.
func (b *Boss) Move(m Movement) {
	if b.state != BossActive {
		return
	}
	b.movement = m
	b.dest = nil

	switch m {
	case MoveToPoint:
		dest := core.V(
			float64(core.Between(b.deps.Rand, destXMin, destXMax)),
			float64(core.Between(b.deps.Rand, destYMin, destYMax)),
		)
		b.dest = &dest
		b.Vel = core.Toward(b.Pos, dest, moveSpeed)
	case ChasePlayer:
		b.Vel = core.Toward(b.Pos, b.deps.Target.Position(), chaseSpeed)
		b.patterns.After(patternHold, func() {
			if b.state == BossActive && b.movement == ChasePlayer {
				b.Vel = core.Vec{}
			}
		})
	case Strafe:
		b.Vel = core.V(strafeSpeed, 0)
		b.patterns.After(patternHold, func() {
			if b.state == BossActive && b.movement == Strafe {
				b.Vel = core.V(-strafeSpeed, 0)
			}
		})
	default:
		b.movement = HoldPosition
		b.Vel = core.Vec{}
		b.hooks.Telegraph(b.Pos)
	}
}

// Attack performs one attack pattern. Unknown patterns fall back to an
// aimed shot.
func (b *Boss) Attack(a Attack) {
	if b.state != BossActive {
		return
	}
	player := b.deps.Target.Position()
	aim := b.Pos.AngleTo(player)

	switch a {
	case TripleSpread:
		for _, off := range []float64{0, -spreadAngle, spreadAngle} {
			b.fireAngle(aim+off, aimedSpeed, combat.TintNone, shotRadius)
		}
	case CircleBurst:
		for i := 0; i < burstWays; i++ {
			b.fireAngle(2*math.Pi/burstWays*float64(i), burstSpeed, combat.TintNone, shotRadius)
		}
	case ChaseShot:
		if b.Enraged() {
			b.fireAngle(aim, rageShotSpeed, combat.TintRage, rageShotRadius)
		} else {
			b.fireAngle(aim, chaseShotSpeed, combat.TintNone, shotRadius)
		}
	default:
		b.fireAngle(aim, aimedSpeed, combat.TintNone, shotRadius)
	}
}

// Desperation performs one desperation attack.
func (b *Boss) Desperation(d Desperation) {
	if b.state != BossActive {
		return
	}
	player := b.deps.Target.Position()
	if d == ScatterShot {
		for i := 0; i < scatterShots; i++ {
			p := player.Add(core.V(
				float64(core.Between(b.deps.Rand, -scatterOffset, scatterOffset)),
				float64(core.Between(b.deps.Rand, -scatterOffset, scatterOffset)),
			))
			b.fireAngle(b.Pos.AngleTo(p), aimedSpeed, combat.TintNone, shotRadius)
		}
		return
	}
	b.fireAngle(b.Pos.AngleTo(player), trackingSpeed, combat.TintTracking, shotRadius)
}

func (b *Boss) fireAngle(angle, speed float64, tint combat.Tint, radius float64) {
	b.deps.Spawner.Spawn(&combat.Projectile{
		Pos:     b.Pos,
		Vel:     core.FromAngle(angle, speed*b.cfg.SpeedMultiplier),
		Damage:  b.cfg.ProjectileDamage,
		TTL:     b.cfg.ProjectileLifetime,
		Faction: combat.FactionBoss,
		Radius:  radius,
		Tint:    tint,
		Active:  true,
	})
}
