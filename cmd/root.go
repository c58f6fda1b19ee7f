package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "prepdeck",
	Short: "Terminal practice-question viewer for JEE preparation",
	Long: "Prepdeck — browse bundled question banks by subject and chapter,\n" +
		"answer questions with exam-style scoring, and track progress locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPDECK_DB env var)")
	rootCmd.PersistentFlags().String("collection", "dpp", "Question collection to open (dpp or pyq)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep progress in memory only, nothing written to disk")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then PREPDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, progress.EnsureDir(p)
	}
	return progress.DefaultDBPath()
}

// resolveCollection validates the --collection flag against the
// bundled banks.
func resolveCollection(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("collection")
	for _, c := range bank.Collections() {
		if c.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q (bundled: dpp, pyq)", id)
}

// loadBanks loads every bundled collection up front. They are embedded,
// so a load failure is a build defect, not a user error.
func loadBanks() (map[string]*bank.Bank, error) {
	banks := make(map[string]*bank.Bank)
	for _, c := range bank.Collections() {
		b, err := bank.LoadCollection(c.ID)
		if err != nil {
			return nil, fmt.Errorf("load collection %s: %w", c.ID, err)
		}
		banks[c.ID] = b
	}
	return banks, nil
}

// runApp wires the banks and progress store together and starts the TUI.
func runApp(cmd *cobra.Command) error {
	collection, err := resolveCollection(cmd)
	if err != nil {
		return err
	}

	banks, err := loadBanks()
	if err != nil {
		return err
	}

	opts := app.Options{
		Banks:      banks,
		Collection: collection,
	}

	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		mem := progress.NewMemoryStore()
		opts.Attempts = mem.Attempts()
		opts.Bookmarks = mem.Bookmarks()
		return app.Run(opts)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := progress.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open progress store: %w", err)
	}
	defer st.Close()

	opts.Attempts = st.Attempts()
	opts.Bookmarks = st.Bookmarks()
	return app.Run(opts)
}
