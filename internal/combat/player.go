package combat

import "github.com/vovakirdan/park-guardian/internal/core"

// Stat limits.
const (
	MaxHealth = 100
	MaxArmor  = 100
)

// Baseline loadout of a fresh run.
const (
	BaseHealth  = 100
	BaseArmor   = 50
	BaseCredits = 0
)

// PlayerState is the player's combat state that survives round transitions.
type PlayerState struct {
	Vitals
	Credits    int
	Powers     PowerSet
	Current    Power
	FastCommon bool
}

// NewPlayerState returns the baseline loadout.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Vitals:  Vitals{Health: BaseHealth, Armor: BaseArmor},
		Credits: BaseCredits,
		Powers:  NewPowerSet(),
		Current: PowerCommon,
	}
}

// Alive reports whether health is above zero.
func (p *PlayerState) Alive() bool {
	return !p.Dead()
}

// SetHealth sets health clamped to [0, MaxHealth].
func (p *PlayerState) SetHealth(h int) {
	p.Health = core.Clamp(h, 0, MaxHealth)
}

// SetArmor sets armor clamped to [0, MaxArmor].
func (p *PlayerState) SetArmor(a int) {
	p.Armor = core.Clamp(a, 0, MaxArmor)
}

// AddCredits adds n credits, never going below zero.
func (p *PlayerState) AddCredits(n int) {
	p.Credits = max(p.Credits+n, 0)
}

// Unlock adds a tier to the unlocked set.
func (p *PlayerState) Unlock(pw Power) {
	p.Powers = p.Powers.With(pw)
}

// Select switches the current tier. Selecting a locked tier does nothing
// and returns false.
func (p *PlayerState) Select(pw Power) bool {
	if !p.Powers.Has(pw) {
		return false
	}
	p.Current = pw
	return true
}

// TakeDamage applies the armor-then-health rule to the player.
func (p *PlayerState) TakeDamage(amount int) DamageResult {
	return ApplyDamage(&p.Vitals, amount)
}

// Clone returns an independent copy.
func (p *PlayerState) Clone() *PlayerState {
	c := *p
	return &c
}
