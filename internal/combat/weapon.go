package combat

import (
	"math"
	"time"

	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
)

// DamageRoll is either a uniform pick among Choices or a uniform integer
// in [Min, Max] when Choices is empty.
type DamageRoll struct {
	Choices []int
	Min     int
	Max     int
}

// Roll draws one damage value.
func (d DamageRoll) Roll(r core.Rand) int {
	if len(d.Choices) > 0 {
		return core.Pick(r, d.Choices)
	}
	return core.Between(r, d.Min, d.Max)
}

// WeaponSpec is the firing rule of one tier.
type WeaponSpec struct {
	Cooldown time.Duration
	Speed    float64
	Count    int
	Spread   float64
	Damage   DamageRoll
	Lifetime time.Duration
	Radius   float64
}

// SpecFromConfig converts a YAML weapon entry.
func SpecFromConfig(c config.WeaponConfig) WeaponSpec {
	return WeaponSpec{
		Cooldown: config.Ms(c.CooldownMS),
		Speed:    c.Speed,
		Count:    max(c.Count, 1),
		Spread:   c.Spread,
		Damage: DamageRoll{
			Choices: append([]int(nil), c.DamageChoices...),
			Min:     c.DamageMin,
			Max:     c.DamageMax,
		},
		Lifetime: config.Ms(c.LifetimeMS),
		Radius:   c.Radius,
	}
}

// Arsenal is the weapon table of one round.
type Arsenal struct {
	Common     WeaponSpec
	CommonFast WeaponSpec
	Blue       WeaponSpec
	Gold       WeaponSpec
}

// NewArsenal builds the table from a round's configuration.
func NewArsenal(t config.WeaponTable) Arsenal {
	return Arsenal{
		Common:     SpecFromConfig(t.Common),
		CommonFast: SpecFromConfig(t.CommonFast),
		Blue:       SpecFromConfig(t.Blue),
		Gold:       SpecFromConfig(t.Gold),
	}
}

// Spec returns the rule for a tier. Unknown tiers use the common rule.
func (a Arsenal) Spec(p Power, fastCommon bool) WeaponSpec {
	switch p {
	case PowerBlue:
		return a.Blue
	case PowerGold:
		return a.Gold
	default:
		if fastCommon {
			return a.CommonFast
		}
		return a.Common
	}
}

// Gate reports whether combat has started.
type Gate interface {
	Ready() bool
}

// FireRequest is one trigger pull.
type FireRequest struct {
	Time       time.Duration
	Origin     core.Vec
	Target     core.Vec
	Power      Power
	FastCommon bool
}

// Weapon applies the cooldown shared by all tiers and spawns projectiles.
type Weapon struct {
	arsenal  Arsenal
	gate     Gate
	rng      core.Rand
	lastShot time.Duration
	fired    bool
	nextID   int
}

// NewWeapon creates a weapon that fires only while gate is ready.
func NewWeapon(a Arsenal, gate Gate, rng core.Rand) *Weapon {
	return &Weapon{arsenal: a, gate: gate, rng: rng}
}

// Fire handles a trigger pull. It returns nil when combat has not started
// or the cooldown has not elapsed.
func (w *Weapon) Fire(req FireRequest) []*Projectile {
	if w.gate != nil && !w.gate.Ready() {
		return nil
	}
	spec := w.arsenal.Spec(req.Power, req.FastCommon)
	if w.fired && req.Time < w.lastShot+spec.Cooldown {
		return nil
	}
	w.lastShot = req.Time
	w.fired = true

	center := req.Origin.AngleTo(req.Target)
	if req.Target == req.Origin {
		center = -math.Pi / 2
	}

	angles := fan(center, spec.Spread, max(spec.Count, 1))

	shots := make([]*Projectile, 0, len(angles))
	for _, a := range angles {
		w.nextID++
		shots = append(shots, &Projectile{
			ID:      w.nextID,
			Pos:     req.Origin,
			Vel:     core.FromAngle(a, spec.Speed),
			Damage:  spec.Damage.Roll(w.rng),
			Power:   req.Power,
			TTL:     spec.Lifetime,
			Faction: FactionPlayer,
			Radius:  spec.Radius,
			Active:  true,
		})
	}
	return shots
}

// LastShot returns the time of the last accepted request.
func (w *Weapon) LastShot() (time.Duration, bool) {
	return w.lastShot, w.fired
}

// fan spreads n angles symmetrically around center, step apart. Three
// shots give center-step, center, center+step.
func fan(center, step float64, n int) []float64 {
	out := make([]float64, n)
	first := center - step*float64(n-1)/2
	for i := range out {
		out[i] = first + step*float64(i)
	}
	return out
}
