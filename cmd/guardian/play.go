package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/platform/tui"
)

var (
	flagConfig string
	flagRound  int
	flagLog    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the campaign menu, or jump straight into a round.

Controls:
  WASD/Arrows   - Move
  Space/Click   - Fire (the mouse aims)
  1/2/3         - Select common, blue or gold weapon
  P/Esc         - Pause
  Enter         - Select
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Starting at round 2 or 3 uses the loadout saved when the previous round
was cleared, or the baseline loadout if there is none.

Examples:
  guardian play
  guardian play --round 2
  guardian play --config ./my-guardian.yaml --log ./guardian.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom campaign config YAML")
	playCmd.Flags().IntVar(&flagRound, "round", 0, "Start directly in this round (0 = menu)")
	playCmd.Flags().StringVar(&flagLog, "log", "", "Write logs to this file (default: discard)")
}

// newFileLogger logs to path, or discards when path is empty. The TUI owns
// the terminal, so logs never go to stderr while playing.
func newFileLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "guardian",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagRound < 0 || flagRound > cfg.LastRound() {
		fmt.Fprintf(os.Stderr, "Error: round must be between 1 and %d\n", cfg.LastRound())
		os.Exit(1)
	}

	logger, logFile, err := newFileLogger(flagLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open campaign database: %v\n", err)
		store = nil
	}

	opts := campaign.Options{
		Config:  cfg,
		Records: campaign.NewRecords(kvOf(store, logger), logger),
		Logger:  logger,
		Player:  os.Getenv("USER"),
		Round:   flagRound,
	}
	if store != nil {
		opts.Runs = store
	}

	runErr := tui.Run(campaign.New(opts), core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
