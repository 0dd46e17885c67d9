package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-plus/internal/core"
	"github.com/vovakirdan/flappy-plus/internal/games/flappy"
	"github.com/vovakirdan/flappy-plus/internal/platform/tui"
	"github.com/vovakirdan/flappy-plus/internal/storage"
)

var flagAutoplay bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Flappy Plus",
	Long: `Start a game in the terminal.

Controls:
  Space/Up   - Flap (also starts the run)
  P/Esc      - Pause
  R          - Restart
  A          - Toggle autoplay
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Pickups:
  o  coin      +5 points
  S  shield    absorbs one pipe hit
  Z  slow-mo   half speed for a few seconds
  X  2x score  doubles every point for a few seconds

Examples:
  flappy play
  flappy play --autoplay
  flappy play --config ./my-flappy.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start with the autopilot flying")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "flappy")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game := flappy.New(gameCfg)
	game.SetAutoplay(flagAutoplay)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
