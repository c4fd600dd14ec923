package campaign

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/core"
)

// Snapshot is the persisted loadout handed from one round to the next.
// The JSON layout is shared by every round transition and the final stats.
type Snapshot struct {
	Powers     []string `json:"powers"`
	Health     int      `json:"health"`
	Armor      int      `json:"armor"`
	Credits    int      `json:"credits"`
	FastCommon bool     `json:"fastCommonUnlocked"`
	Current    string   `json:"currentPower"`
}

// rawSnapshot detects fields missing from stored JSON.
type rawSnapshot struct {
	Powers     []string `json:"powers"`
	Health     *int     `json:"health"`
	Armor      *int     `json:"armor"`
	Credits    *int     `json:"credits"`
	FastCommon bool     `json:"fastCommonUnlocked"`
	Current    string   `json:"currentPower"`
}

// FromPlayer captures the player state.
func FromPlayer(p *combat.PlayerState) Snapshot {
	return Snapshot{
		Powers:     p.Powers.Strings(),
		Health:     p.Health,
		Armor:      p.Armor,
		Credits:    p.Credits,
		FastCommon: p.FastCommon,
		Current:    p.Current.String(),
	}
}

// Player rebuilds a player state. Out-of-range stats are clamped, unknown
// tiers dropped, and a current tier that is not unlocked falls back to
// common.
func (s Snapshot) Player() *combat.PlayerState {
	p := &combat.PlayerState{
		Powers:     combat.ParsePowerSet(s.Powers),
		Current:    combat.PowerCommon,
		FastCommon: s.FastCommon,
	}
	p.SetHealth(s.Health)
	p.SetArmor(s.Armor)
	p.AddCredits(s.Credits)
	if cur, ok := combat.ParsePower(s.Current); ok {
		p.Select(cur)
	}
	return p
}

// Normalized returns the snapshot after the same repairs Player applies.
func (s Snapshot) Normalized() Snapshot {
	return FromPlayer(s.Player())
}

// Encode serializes the snapshot.
func (s Snapshot) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("campaign: encode snapshot: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored snapshot. Empty or corrupt input returns false.
// Missing stats take the baseline values.
func Decode(raw string) (Snapshot, bool) {
	if raw == "" {
		return Snapshot{}, false
	}
	var r rawSnapshot
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Snapshot{}, false
	}
	s := Snapshot{
		Powers:     r.Powers,
		Health:     combat.BaseHealth,
		Armor:      combat.BaseArmor,
		Credits:    combat.BaseCredits,
		FastCommon: r.FastCommon,
		Current:    r.Current,
	}
	if r.Health != nil {
		s.Health = *r.Health
	}
	if r.Armor != nil {
		s.Armor = *r.Armor
	}
	if r.Credits != nil {
		s.Credits = *r.Credits
	}
	return s.Normalized(), true
}

// Baseline is the loadout of a fresh run as configured.
func Baseline(health, armor, credits int) Snapshot {
	return Snapshot{
		Powers:  []string{combat.PowerCommon.String()},
		Health:  core.Clamp(health, 0, combat.MaxHealth),
		Armor:   core.Clamp(armor, 0, combat.MaxArmor),
		Credits: max(credits, 0),
		Current: combat.PowerCommon.String(),
	}
}
