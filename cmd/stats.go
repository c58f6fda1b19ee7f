package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print practice statistics without opening the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := resolveCollection(cmd)
		if err != nil {
			return err
		}

		attempts, cleanup, err := openAttempts(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := progress.ComputeStats(cmd.Context(), attempts, collection)
		if err != nil {
			return err
		}

		b, err := bank.LoadCollection(collection)
		if err != nil {
			return err
		}

		fmt.Printf("Collection  %s\n", collection)
		fmt.Printf("Attempted   %d / %d\n", stats.Attempted, b.QuestionCount())
		fmt.Printf("Correct     %d (%.0f%%)\n", stats.Correct, stats.Accuracy()*100)
		fmt.Printf("Score       %+d\n", stats.Score)
		for _, ls := range stats.ByLevel {
			fmt.Printf("  Level %d   %d/%d correct, score %+d\n",
				ls.Level, ls.Correct, ls.Attempted, ls.Score)
		}
		return nil
	},
}

// openAttempts opens the attempt repository honoring --db and
// --ephemeral, returning a cleanup func.
func openAttempts(cmd *cobra.Command) (progress.AttemptRepo, func(), error) {
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		return progress.NewMemoryStore().Attempts(), func() {}, nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := progress.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open progress store: %w", err)
	}
	return st.Attempts(), func() { _ = st.Close() }, nil
}
