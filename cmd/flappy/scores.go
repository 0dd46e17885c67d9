package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-plus/internal/games/flappy"
	"github.com/vovakirdan/flappy-plus/internal/platform/tui"
	"github.com/vovakirdan/flappy-plus/internal/storage"
)

var (
	flagClear bool
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Browse high scores and simulation runs.

Examples:
  flappy scores
  flappy scores --plain
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 instead of the interactive table")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(flappy.ID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printScores(store)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, width, height)
}

func printScores(store *storage.Store) error {
	scores, err := store.TopScores(flappy.ID, 10)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Flappy Plus")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Pilot", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		pilot := "human"
		if entry.Autoplay {
			pilot = "auto"
		}
		fmt.Printf("  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, pilot, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}
