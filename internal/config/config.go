// Package config provides YAML-based configuration for the campaign:
// arena size, player baseline, rewards, the per-round weapon and enemy
// tables, and the boss encounter.
package config

import "time"

// GuardianConfig contains all tunable values of a campaign.
type GuardianConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Player  PlayerConfig  `yaml:"player"`
	Rewards RewardConfig  `yaml:"rewards"`
	Rounds  []RoundConfig `yaml:"rounds"`
	Boss    BossConfig    `yaml:"boss"`
	Timings TimingConfig  `yaml:"timings"`
}

// ArenaConfig defines the world size in arena units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player body and the baseline loadout used when
// no persisted snapshot is available.
type PlayerConfig struct {
	Speed   float64 `yaml:"speed"`
	Radius  float64 `yaml:"radius"`
	Health  int     `yaml:"health"`
	Armor   int     `yaml:"armor"`
	Credits int     `yaml:"credits"`
}

// RewardConfig defines credit payouts.
type RewardConfig struct {
	KillCredits int `yaml:"kill_credits"`
	BossCredits int `yaml:"boss_credits"`
}

// RoundConfig describes one round of the campaign.
type RoundConfig struct {
	Number       int         `yaml:"number"`
	Name         string      `yaml:"name"`
	GraceMS      int         `yaml:"grace_ms"`       // NotReady -> Ready
	SpawnDelayMS int         `yaml:"spawn_delay_ms"` // enemies or boss appear
	ClearDelayMS int         `yaml:"clear_delay_ms"` // last kill -> transition
	CreditGate   int         `yaml:"credit_gate"`    // 0 disables the gate
	Spawn        SpawnConfig `yaml:"spawn"`
	Enemies      EnemyConfig `yaml:"enemies"`
	Weapons      WeaponTable `yaml:"weapons"`
	Pickups      bool        `yaml:"pickups"` // offer tiers not yet unlocked
	Boss         bool        `yaml:"boss"`
}

// SpawnConfig places the player at round start.
type SpawnConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EnemyConfig describes the regular enemies of a round.
type EnemyConfig struct {
	Stationary int     `yaml:"stationary"`
	Mobile     int     `yaml:"mobile"`
	Health     int     `yaml:"health"`
	Armor      int     `yaml:"armor"`
	Radius     float64 `yaml:"radius"`
	Margin     float64 `yaml:"margin"` // spawn distance from the arena edge

	FireIntervalMS       int     `yaml:"fire_interval_ms"` // squad volley of one stationary shooter
	MobileFireIntervalMS int     `yaml:"mobile_fire_interval_ms"`
	MobileRetargetMS     int     `yaml:"mobile_retarget_ms"`
	MobileSpeed          float64 `yaml:"mobile_speed"`

	ProjectileSpeed      float64 `yaml:"projectile_speed"`
	ProjectileDamage     int     `yaml:"projectile_damage"`
	ProjectileLifetimeMS int     `yaml:"projectile_lifetime_ms"`
}

// WeaponTable holds the player weapon for every tier in one round.
type WeaponTable struct {
	Common     WeaponConfig `yaml:"common"`
	CommonFast WeaponConfig `yaml:"common_fast"`
	Blue       WeaponConfig `yaml:"blue"`
	Gold       WeaponConfig `yaml:"gold"`
}

// WeaponConfig describes one weapon tier. Damage is either a pick among
// DamageChoices or a uniform integer in [DamageMin, DamageMax].
type WeaponConfig struct {
	CooldownMS    int     `yaml:"cooldown_ms"`
	Speed         float64 `yaml:"speed"`
	Count         int     `yaml:"count"`
	Spread        float64 `yaml:"spread"` // radians between adjacent shots
	DamageChoices []int   `yaml:"damage_choices,omitempty"`
	DamageMin     int     `yaml:"damage_min,omitempty"`
	DamageMax     int     `yaml:"damage_max,omitempty"`
	LifetimeMS    int     `yaml:"lifetime_ms"`
	Radius        float64 `yaml:"radius"`
}

// BossConfig describes the round-3 boss.
type BossConfig struct {
	Health               int     `yaml:"health"`
	Radius               float64 `yaml:"radius"`
	X                    float64 `yaml:"x"`
	Y                    float64 `yaml:"y"`
	MoveIntervalMS       int     `yaml:"move_interval_ms"`
	AttackIntervalMS     int     `yaml:"attack_interval_ms"`
	DesperationDelayMS   int     `yaml:"desperation_delay_ms"`
	EnrageRatio          float64 `yaml:"enrage_ratio"`
	DesperationRatio     float64 `yaml:"desperation_ratio"`
	SpeedMultiplier      float64 `yaml:"speed_multiplier"`
	ProjectileDamage     int     `yaml:"projectile_damage"`
	ProjectileLifetimeMS int     `yaml:"projectile_lifetime_ms"`
	ContactDamage        int     `yaml:"contact_damage"`
	ContactCooldownMS    int     `yaml:"contact_cooldown_ms"`
	DeathSequenceMS      int     `yaml:"death_sequence_ms"`
}

// TimingConfig holds delays of the outer game flow.
type TimingConfig struct {
	GameOverMS int `yaml:"game_over_ms"`
}

// Ms converts a millisecond count from the YAML to a duration.
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Round returns the configuration of round n (1-based).
func (c GuardianConfig) Round(n int) (RoundConfig, bool) {
	for _, r := range c.Rounds {
		if r.Number == n {
			return r, true
		}
	}
	return RoundConfig{}, false
}

// LastRound returns the highest round number.
func (c GuardianConfig) LastRound() int {
	last := 0
	for _, r := range c.Rounds {
		if r.Number > last {
			last = r.Number
		}
	}
	return last
}
