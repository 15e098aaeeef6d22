package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Open the birthday page in this terminal.

Controls:
  S/Enter    - Start popping
  Click      - Pop a balloon
  1-9        - Pop the n-th balloon (for terminals without mouse support)
  R          - Reset
  ?          - More help
  Q/Ctrl+C   - Quit

Examples:
  celebration play
  celebration play --seed 42
  celebration play --config ./party.yaml --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := newLogger("play", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	recorder, journal := openRecorder(logger)
	if journal != nil {
		defer journal.Close()
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.FrameRate = gameCfg.FrameRate
	cfg.Seed = flagSeed

	runErr := tui.Run(cfg, gameCfg, tui.ModelOptions{
		SessionID: uuid.NewString(),
		Recorder:  recorder,
		Logger:    logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
