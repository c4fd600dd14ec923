// guardian is a top-down arena shooter played in the terminal: clear the
// meadow, push through the forest, and bring down the commander.
//
// Usage:
//
//	guardian play            - Play the campaign
//	guardian serve           - Start SSH server for remote play
//	guardian stats           - Show the campaign record and fastest runs
//	guardian runs            - Browse the run history interactively
//	guardian rounds          - Print the per-round tables
//	guardian reset           - Forget the campaign record
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.guardian/guardian.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "guardian",
	Short: "Central Park Guardian - a terminal arena shooter",
	Long: `Central Park Guardian is a three-round arena shooter for the terminal.
Your health, armor, credits and weapons carry over from round to round.

Available commands:
  play     - Play the campaign
  serve    - Start SSH server for remote play
  stats    - Show the campaign record and fastest runs
  runs     - Browse the run history interactively
  rounds   - Print the per-round weapon and enemy tables
  reset    - Forget the campaign record

Examples:
  guardian play
  guardian play --round 3
  guardian serve --ssh :2222
  guardian stats`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.guardian/guardian.db", "Path to campaign database (empty = in memory)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(resetCmd)
}
