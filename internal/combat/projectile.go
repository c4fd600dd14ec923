package combat

import (
	"time"

	"github.com/vovakirdan/park-guardian/internal/core"
)

// Faction identifies who fired a projectile.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionBoss
)

// Tint is a presentation hint for a projectile.
type Tint int

const (
	TintNone Tint = iota
	TintRage
	TintTracking
)

// Projectile is a moving damage carrier. Damage is rolled at spawn.
type Projectile struct {
	ID      int
	Pos     core.Vec
	Vel     core.Vec
	Damage  int
	Power   Power
	TTL     time.Duration
	Faction Faction
	Radius  float64
	Tint    Tint
	Active  bool
}

// Tick moves the projectile and expires it when its lifetime runs out.
func (p *Projectile) Tick(dt time.Duration) {
	if !p.Active {
		return
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt.Seconds()))
	p.TTL -= dt
	if p.TTL <= 0 {
		p.Active = false
	}
}

// Consume deactivates the projectile and reports whether it was still
// live, so that one projectile resolves at most one hit.
func (p *Projectile) Consume() bool {
	if !p.Active {
		return false
	}
	p.Active = false
	return true
}

// Hostile reports whether the projectile can hurt the player.
func (p *Projectile) Hostile() bool {
	return p.Faction != FactionPlayer
}

// Compact drops inactive projectiles in place.
func Compact(ps []*Projectile) []*Projectile {
	live := ps[:0]
	for _, p := range ps {
		if p.Active {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(ps); i++ {
		ps[i] = nil
	}
	return live
}
