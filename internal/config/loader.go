package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for on disk.
const FileName = "guardian.yaml"

// Load loads the campaign configuration.
// Search order: customPath -> ~/.guardian/configs/guardian.yaml ->
// ./configs/guardian.yaml -> embedded default -> DefaultConfig.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func Load(customPath string) (GuardianConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GuardianConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GuardianConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(FileName), filepath.Join("configs", FileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := Parse(defaultGuardianYAML); err == nil {
		return cfg, nil
	}
	return DefaultConfig(), nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (GuardianConfig, error) {
	var cfg GuardianConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".guardian", "configs", filename)
}

// Validate checks the structural rules the campaign relies on.
func (c GuardianConfig) Validate() error {
	var errs []error

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, errors.New("arena size must be positive"))
	}
	if c.Player.Speed <= 0 || c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player speed and radius must be positive"))
	}
	if len(c.Rounds) != 3 {
		errs = append(errs, fmt.Errorf("expected 3 rounds, got %d", len(c.Rounds)))
	}

	for i, r := range c.Rounds {
		if r.Number != i+1 {
			errs = append(errs, fmt.Errorf("round %d: number must be %d", r.Number, i+1))
		}
		if r.GraceMS < 0 || r.SpawnDelayMS < 0 || r.ClearDelayMS < 0 {
			errs = append(errs, fmt.Errorf("round %d: delays must not be negative", r.Number))
		}
		tiers := []struct {
			name string
			w    WeaponConfig
		}{
			{"common", r.Weapons.Common},
			{"common_fast", r.Weapons.CommonFast},
			{"blue", r.Weapons.Blue},
			{"gold", r.Weapons.Gold},
		}
		for _, tier := range tiers {
			if err := tier.w.validate(); err != nil {
				errs = append(errs, fmt.Errorf("round %d %s: %w", r.Number, tier.name, err))
			}
		}
		if r.Boss {
			continue
		}
		e := r.Enemies
		if e.Stationary+e.Mobile == 0 {
			errs = append(errs, fmt.Errorf("round %d: no enemies and no boss", r.Number))
		}
		if e.Stationary > 0 && e.FireIntervalMS <= 0 {
			errs = append(errs, fmt.Errorf("round %d: fire_interval_ms must be positive", r.Number))
		}
		if e.Mobile > 0 && (e.MobileFireIntervalMS <= 0 || e.MobileRetargetMS <= 0) {
			errs = append(errs, fmt.Errorf("round %d: mobile intervals must be positive", r.Number))
		}
	}

	if len(c.Rounds) > 0 && !c.Rounds[len(c.Rounds)-1].Boss {
		errs = append(errs, errors.New("the last round must be the boss round"))
	}
	if c.Boss.Health <= 0 {
		errs = append(errs, errors.New("boss health must be positive"))
	}
	if c.Boss.MoveIntervalMS <= 0 || c.Boss.AttackIntervalMS <= 0 {
		errs = append(errs, errors.New("boss intervals must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (w WeaponConfig) validate() error {
	switch {
	case w.CooldownMS <= 0:
		return errors.New("cooldown_ms must be positive")
	case w.Speed <= 0:
		return errors.New("speed must be positive")
	case w.Count <= 0:
		return errors.New("count must be positive")
	case len(w.DamageChoices) == 0 && w.DamageMax < w.DamageMin:
		return errors.New("damage_max below damage_min")
	case len(w.DamageChoices) == 0 && w.DamageMax <= 0:
		return errors.New("no damage configured")
	}
	return nil
}
