package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded attempts for a collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := resolveCollection(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Delete all attempts for collection %q? This cannot be undone. [y/N] ", collection)
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		attempts, cleanup, err := openAttempts(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := attempts.ClearAll(cmd.Context(), collection); err != nil {
			return err
		}
		fmt.Printf("Cleared attempts for %s.\n", collection)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
