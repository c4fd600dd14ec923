package config

import (
	_ "embed"
)

//go:embed defaults/guardian.yaml
var defaultGuardianYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGuardianYAML
}

func pick2050(cooldown int, speed float64) WeaponConfig {
	return WeaponConfig{
		CooldownMS:    cooldown,
		Speed:         speed,
		Count:         1,
		DamageChoices: []int{20, 50},
		LifetimeMS:    1400,
		Radius:        4,
	}
}

func ranged(cooldown int, speed float64, lo, hi, lifetime int, radius float64) WeaponConfig {
	return WeaponConfig{
		CooldownMS: cooldown,
		Speed:      speed,
		Count:      1,
		DamageMin:  lo,
		DamageMax:  hi,
		LifetimeMS: lifetime,
		Radius:     radius,
	}
}

func spread(cooldown int, speed, angle float64, lo, hi int) WeaponConfig {
	w := ranged(cooldown, speed, lo, hi, 1400, 6)
	w.Count = 3
	w.Spread = angle
	return w
}

// DefaultConfig returns the hardcoded campaign configuration. It mirrors
// defaults/guardian.yaml and is used when no YAML can be parsed.
func DefaultConfig() GuardianConfig {
	return GuardianConfig{
		Arena: ArenaConfig{Width: 800, Height: 600},
		Player: PlayerConfig{
			Speed:   200,
			Radius:  20,
			Health:  100,
			Armor:   50,
			Credits: 0,
		},
		Rewards: RewardConfig{KillCredits: 10, BossCredits: 100},
		Rounds: []RoundConfig{
			{
				Number:     1,
				Name:       "Grass",
				GraceMS:    10000,
				CreditGate: 50,
				Spawn:      SpawnConfig{X: 400, Y: 300},
				Enemies: EnemyConfig{
					Stationary:           5,
					Health:               100,
					Armor:                100,
					Radius:               16,
					Margin:               50,
					FireIntervalMS:       433,
					ProjectileSpeed:      150,
					ProjectileDamage:     20,
					ProjectileLifetimeMS: 2000,
				},
				Weapons: WeaponTable{
					Common:     pick2050(500, 100),
					CommonFast: pick2050(250, 200),
					Blue:       ranged(250, 200, 40, 60, 1176, 5),
					Gold:       spread(3000, 200, 0.2, 40, 60),
				},
			},
			{
				Number:       2,
				Name:         "Forest",
				GraceMS:      4000,
				SpawnDelayMS: 11000,
				ClearDelayMS: 1000,
				Spawn:        SpawnConfig{X: 400, Y: 300},
				Enemies: EnemyConfig{
					Stationary:           13,
					Mobile:               3,
					Health:               50,
					Radius:               22,
					Margin:               50,
					FireIntervalMS:       1000,
					MobileFireIntervalMS: 1000,
					MobileRetargetMS:     200,
					MobileSpeed:          100,
					ProjectileSpeed:      150,
					ProjectileDamage:     24,
					ProjectileLifetimeMS: 2000,
				},
				Weapons: WeaponTable{
					Common:     pick2050(500, 200),
					CommonFast: pick2050(250, 300),
					Blue:       ranged(300, 400, 40, 60, 1176, 5),
					Gold:       spread(1000, 300, 0.1, 40, 60),
				},
				Pickups: true,
			},
			{
				Number:       3,
				Name:         "Lair",
				GraceMS:      10000,
				SpawnDelayMS: 11000,
				ClearDelayMS: 3000,
				Spawn:        SpawnConfig{X: 400, Y: 450},
				Weapons: WeaponTable{
					Common:     pick2050(500, 200),
					CommonFast: ranged(250, 300, 15, 30, 1400, 4),
					Blue:       ranged(300, 400, 40, 60, 1176, 5),
					Gold:       spread(1000, 300, 0.1, 50, 70),
				},
				Boss: true,
			},
		},
		Boss: BossConfig{
			Health:               900,
			Radius:               35,
			X:                    400,
			Y:                    150,
			MoveIntervalMS:       3000,
			AttackIntervalMS:     2000,
			DesperationDelayMS:   500,
			EnrageRatio:          0.5,
			DesperationRatio:     0.3,
			SpeedMultiplier:      1.2,
			ProjectileDamage:     15,
			ProjectileLifetimeMS: 3000,
			ContactDamage:        25,
			ContactCooldownMS:    1000,
			DeathSequenceMS:      1000,
		},
		Timings: TimingConfig{GameOverMS: 2000},
	}
}
