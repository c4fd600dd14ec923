package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/park-guardian/internal/config"
)

var flagRoundsConfig string

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Print the per-round weapon and enemy tables",
	Long: `Shows the rounds of the active configuration: enemies, clear
conditions, and the player weapon table of every round.`,
	Args: cobra.NoArgs,
	Run:  runRounds,
}

func init() {
	roundsCmd.Flags().StringVar(&flagRoundsConfig, "config", "", "Path to custom campaign config YAML")
}

func runRounds(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagRoundsConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, r := range cfg.Rounds {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Round %d: %s\n", r.Number, r.Name)
		fmt.Printf("  Grace %s, clear delay %s", config.Ms(r.GraceMS), config.Ms(r.ClearDelayMS))
		if r.CreditGate > 0 {
			fmt.Printf(", needs %d credits", r.CreditGate)
		}
		fmt.Println()

		if r.Boss {
			b := cfg.Boss
			fmt.Printf("  Boss: %d HP, moves every %s, attacks every %s, %d damage (contact %d)\n",
				b.Health, config.Ms(b.MoveIntervalMS), config.Ms(b.AttackIntervalMS), b.ProjectileDamage, b.ContactDamage)
		} else {
			e := r.Enemies
			fmt.Printf("  Enemies: %d stationary, %d mobile, %d HP, %d armor, %d damage shots\n",
				e.Stationary, e.Mobile, e.Health, e.Armor, e.ProjectileDamage)
		}
		if r.Pickups {
			fmt.Println("  Weapon pickups for tiers not yet unlocked")
		}

		fmt.Printf("  %-12s  %-9s  %-6s  %-5s  %s\n", "Weapon", "Cooldown", "Speed", "Shots", "Damage")
		fmt.Printf("  %-12s  %-9s  %-6s  %-5s  %s\n", "------", "--------", "-----", "-----", "------")
		rows := []struct {
			name string
			w    config.WeaponConfig
		}{
			{"common", r.Weapons.Common},
			{"common fast", r.Weapons.CommonFast},
			{"blue", r.Weapons.Blue},
			{"gold", r.Weapons.Gold},
		}
		for _, row := range rows {
			fmt.Printf("  %-12s  %-9s  %-6.0f  %-5d  %s\n",
				row.name, config.Ms(row.w.CooldownMS), row.w.Speed, max(row.w.Count, 1), damage(row.w))
		}
	}
}

func damage(w config.WeaponConfig) string {
	if len(w.DamageChoices) > 0 {
		return fmt.Sprintf("one of %v", w.DamageChoices)
	}
	return fmt.Sprintf("%d-%d", w.DamageMin, w.DamageMax)
}
