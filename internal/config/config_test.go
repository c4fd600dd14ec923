package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded YAML and DefaultConfig() diverged\nyaml: %+v\ncode: %+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestWeaponTables(t *testing.T) {
	cfg := DefaultConfig()

	r1, _ := cfg.Round(1)
	if r1.Weapons.Common.CooldownMS != 500 || r1.Weapons.Common.Speed != 100 {
		t.Errorf("round 1 common = %+v", r1.Weapons.Common)
	}
	if r1.Weapons.Gold.CooldownMS != 3000 || r1.Weapons.Gold.Count != 3 {
		t.Errorf("round 1 gold = %+v", r1.Weapons.Gold)
	}

	r3, _ := cfg.Round(3)
	fast := r3.Weapons.CommonFast
	if fast.DamageMin != 15 || fast.DamageMax != 30 || len(fast.DamageChoices) != 0 {
		t.Errorf("round 3 fast common = %+v, want [15,30]", fast)
	}
	if r3.Weapons.Blue.LifetimeMS != 1176 {
		t.Errorf("blue lifetime = %d, want 1176", r3.Weapons.Blue.LifetimeMS)
	}
	if !r3.Boss || cfg.LastRound() != 3 {
		t.Error("round 3 should be the boss round")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	data := strings.Replace(string(DefaultYAML()), "kill_credits: 10", "kill_credits: 25", 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Rewards.KillCredits != 25 {
		t.Errorf("KillCredits = %d, want 25", cfg.Rewards.KillCredits)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rounds: [{number: 1}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid custom file should be an error")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GuardianConfig)
	}{
		{"two rounds", func(c *GuardianConfig) { c.Rounds = c.Rounds[:2] }},
		{"zero cooldown", func(c *GuardianConfig) { c.Rounds[0].Weapons.Blue.CooldownMS = 0 }},
		{"no boss last", func(c *GuardianConfig) { c.Rounds[2].Boss = false }},
		{"zero fire interval", func(c *GuardianConfig) { c.Rounds[0].Enemies.FireIntervalMS = 0 }},
		{"inverted damage", func(c *GuardianConfig) { c.Rounds[1].Weapons.Blue.DamageMin = 90 }},
		{"boss without health", func(c *GuardianConfig) { c.Boss.Health = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateErrorOrderStable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rounds[0].Weapons.Gold.Speed = 0
	cfg.Rounds[0].Weapons.Blue.Count = 0
	cfg.Rounds[0].Weapons.Common.CooldownMS = 0

	first := cfg.Validate()
	if first == nil {
		t.Fatal("Validate() = nil, want error")
	}
	msg := first.Error()
	common := strings.Index(msg, "round 1 common:")
	blue := strings.Index(msg, "round 1 blue:")
	gold := strings.Index(msg, "round 1 gold:")
	if common < 0 || blue < common || gold < blue {
		t.Errorf("tiers out of order:\n%s", msg)
	}
	for i := 0; i < 20; i++ {
		if got := cfg.Validate().Error(); got != msg {
			t.Fatalf("Validate() changed between calls:\n%s\n---\n%s", msg, got)
		}
	}
}
