package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/platform/tui"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

var (
	flagUser      string
	flagTop       int
	flagResetRuns bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the campaign record and fastest runs",
	Long: `Display whether the commander has been defeated, the best and last run
times, the loadouts saved between rounds, and the fastest completed runs.

Examples:
  guardian stats
  guardian stats --user alice   # record of an SSH player
  guardian stats --top 20`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run history",
	Long:  `Open an interactive table of completed campaigns, fastest first.`,
	Args:  cobra.NoArgs,
	Run:   runRuns,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the campaign record",
	Long: `Delete saved loadouts, completion flag, run times and settings.
The shared run history is kept unless --runs is given.

Examples:
  guardian reset
  guardian reset --user alice
  guardian reset --runs`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	for _, c := range []*cobra.Command{statsCmd, runsCmd, resetCmd} {
		c.Flags().StringVar(&flagUser, "user", "", "SSH user whose record to use (empty = local player)")
	}
	statsCmd.Flags().IntVar(&flagTop, "top", 10, "Number of runs to list")
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also clear the run history")
}

func recordsFor(store *storage.Store) *campaign.Records {
	if flagUser == "" {
		return campaign.NewRecords(store, log.New(io.Discard))
	}
	return campaign.NewRecords(storage.Namespace(store, flagUser), log.New(io.Discard))
}

func runStats(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()
	rec := recordsFor(store)

	cfg, err := config.Load("")
	if err != nil {
		cfg = config.DefaultConfig()
	}

	fmt.Println("Campaign")
	fmt.Println()
	killed := "No"
	if rec.Completed() {
		killed = "Yes"
	}
	fmt.Printf("  Killed commander:  %s\n", killed)
	fmt.Printf("  Best time:         %s\n", clockOr(rec.BestTime()))
	fmt.Printf("  Last run:          %s\n", clockOr(rec.LastRunTime()))
	if final, ok := rec.FinalStats(); ok {
		fmt.Printf("  Final stats:       %s\n", describe(final))
	}
	for n := 1; n < cfg.LastRound(); n++ {
		if snap, ok := rec.LoadLoadout(n); ok {
			fmt.Printf("  After round %d:     %s\n", n, describe(snap))
		}
	}

	runs, err := store.TopRuns(flagTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Fastest runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No completed campaigns yet.")
		fmt.Println()
		fmt.Println("Run 'guardian play' and defeat the commander to set a time!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "Rank", "Time", "Player", "CR", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "----", "----", "------", "--", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-12s  %-6d  %s\n",
			i+1, campaign.FormatClock(r.Elapsed), r.Player, r.Credits, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(); err == nil && st.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Average: %s  Credits earned: %d\n",
			st.Runs, campaign.FormatClock(st.Average), st.TotalCredits)
	}
}

func clockOr(d time.Duration, ok bool) string {
	if !ok {
		return "--:--"
	}
	return campaign.FormatClock(d)
}

func describe(s campaign.Snapshot) string {
	return fmt.Sprintf("HP %d  AR %d  CR %d  weapons %v (using %s)",
		s.Health, s.Armor, s.Credits, s.Powers, s.Current)
}

func runRuns(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if err := tui.RunScoreboard(store, recordsFor(store), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReset(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	cfg, err := config.Load("")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := recordsFor(store).Reset(cfg.LastRound()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagResetRuns {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("Campaign record cleared.")
}
