// Package combat holds the player's persistent combat state, the
// armor-then-health damage rule shared by every combatant, and the
// per-tier weapon that turns fire requests into projectiles.
package combat

import "strings"

// Power is a weapon tier.
type Power int

const (
	PowerCommon Power = iota
	PowerBlue
	PowerGold
)

// AllPowers lists the tiers in selection order (keys 1, 2, 3).
var AllPowers = []Power{PowerCommon, PowerBlue, PowerGold}

var powerNames = [...]string{"common", "blue", "gold"}

// String returns the persisted name of the tier.
func (p Power) String() string {
	if p < 0 || int(p) >= len(powerNames) {
		return "common"
	}
	return powerNames[p]
}

// ParsePower maps a persisted name back to a tier.
func ParsePower(s string) (Power, bool) {
	for i, name := range powerNames {
		if strings.EqualFold(s, name) {
			return Power(i), true
		}
	}
	return PowerCommon, false
}

// PowerSet is the set of unlocked tiers. Common is always a member.
type PowerSet uint8

// NewPowerSet builds a set from the given tiers plus common.
func NewPowerSet(powers ...Power) PowerSet {
	s := PowerSet(1 << PowerCommon)
	for _, p := range powers {
		s = s.With(p)
	}
	return s
}

// Has reports whether the tier is unlocked.
func (s PowerSet) Has(p Power) bool {
	if p == PowerCommon {
		return true
	}
	return p >= 0 && int(p) < len(powerNames) && s&(1<<p) != 0
}

// With returns the set with p added. Unknown tiers are ignored.
func (s PowerSet) With(p Power) PowerSet {
	if p < 0 || int(p) >= len(powerNames) {
		return s | 1<<PowerCommon
	}
	return s | 1<<PowerCommon | 1<<p
}

// List returns the members in tier order.
func (s PowerSet) List() []Power {
	out := make([]Power, 0, len(AllPowers))
	for _, p := range AllPowers {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Strings returns the member names in tier order.
func (s PowerSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.String()
	}
	return out
}

// ParsePowerSet builds a set from persisted names, dropping unknown ones.
func ParsePowerSet(names []string) PowerSet {
	s := NewPowerSet()
	for _, n := range names {
		if p, ok := ParsePower(n); ok {
			s = s.With(p)
		}
	}
	return s
}
