// Package ai drives hostile combatants: the squads of stationary and
// mobile enemies of rounds 1 and 2 and the round-3 boss. All decisions run
// on sched timers and check liveness before acting.
package ai

import (
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/sched"
)

// Target is the player as seen by the AI.
type Target interface {
	Position() core.Vec
	Alive() bool
}

// Spawner receives hostile projectiles.
type Spawner interface {
	Spawn(p *combat.Projectile)
}

// Deps bundles what every AI component consumes.
type Deps struct {
	Target  Target
	Gate    combat.Gate
	Spawner Spawner
	Rand    core.Rand
}

func (d Deps) canAct() bool {
	return d.Target.Alive() && (d.Gate == nil || d.Gate.Ready())
}

// Behavior selects how an enemy acts.
type Behavior int

const (
	Stationary Behavior = iota
	Mobile
)

func (b Behavior) String() string {
	if b == Mobile {
		return "mobile"
	}
	return "stationary"
}

// Enemy is one regular hostile.
type Enemy struct {
	ID       int
	Pos      core.Vec
	Vel      core.Vec
	Radius   float64
	Vitals   combat.Vitals
	MaxHP    int
	Behavior Behavior
	Speed    float64
	Active   bool

	dest   *core.Vec // where a mobile enemy stops
	timers *sched.Group
}

// HealthFraction is the share of starting health left, in [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return core.ClampF(float64(e.Vitals.Health)/float64(e.MaxHP), 0, 1)
}
