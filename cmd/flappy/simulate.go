package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-plus/internal/core"
	"github.com/vovakirdan/flappy-plus/internal/games/flappy"
	"github.com/vovakirdan/flappy-plus/internal/storage"
)

var (
	flagDuration time.Duration
	flagVerify   bool
	flagNoSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the autopilot headless",
	Long: `Run the game with the autopilot at a fixed frame step, without a
terminal UI, and print a summary. Runs are recorded in the database.

With --verify the final world hash is compared against the last recorded
run with the same seed, duration, frame rate and config; a mismatch exits
with status 1.

Examples:
  flappy simulate
  flappy simulate --duration 10m --seed 7
  flappy simulate --seed 7 --verify`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", time.Minute, "Simulated time to run")
	simulateCmd.Flags().BoolVar(&flagVerify, "verify", false, "Compare against the last run with the same seed, duration, fps and config")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record this run")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, "flappy-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	digest, err := gameCfg.Digest()
	if err != nil {
		return err
	}
	key := storage.RunKey{Seed: seed, Duration: flagDuration, FPS: flagFPS, Config: digest}

	game := flappy.New(gameCfg)
	game.SetLogger(logger)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})
	game.SetAutoplay(true)

	frames := int(flagDuration.Seconds() * float64(flagFPS))
	start := time.Now()
	st := flappy.RunHeadless(game, frames)
	logger.Debug("simulation finished", "frames", frames, "elapsed", time.Since(start))

	fmt.Printf("seed      %d\n", seed)
	fmt.Printf("simulated %s (%d frames at %d fps)\n", flagDuration, frames, flagFPS)
	fmt.Printf("config    %s\n", digest)
	fmt.Printf("deaths    %d\n", st.Deaths)
	fmt.Printf("best      %d\n", st.BestScore)
	fmt.Printf("flaps     %d\n", st.Flaps)
	fmt.Printf("hash      %016x\n", st.Final.Hash)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		if flagVerify {
			return err
		}
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	defer store.Close()

	if flagVerify {
		if err := verifyRun(store, key, st); err != nil {
			return err
		}
	}

	if flagNoSave {
		return nil
	}
	_, err = store.SaveRun(storage.RunRecord{
		Seed:      key.Seed,
		Duration:  key.Duration,
		FPS:       key.FPS,
		Config:    key.Config,
		Deaths:    st.Deaths,
		BestScore: st.BestScore,
		Flaps:     st.Flaps,
		Hash:      st.Final.Hash,
	})
	if err != nil {
		logger.Error("could not record run", "error", err)
	}
	return nil
}

// verifyRun compares the run against the last one recorded with the same key.
func verifyRun(store *storage.Store, key storage.RunKey, st flappy.RunStats) error {
	prev, err := store.LastRun(key)
	if err != nil {
		return err
	}
	if prev == nil {
		fmt.Println("verify    no previous run with this seed, duration, fps and config")
		return nil
	}
	if prev.Hash != st.Final.Hash {
		return fmt.Errorf("verify failed: hash %016x, previous run %016x", st.Final.Hash, prev.Hash)
	}
	fmt.Println("verify    ok")
	return nil
}
