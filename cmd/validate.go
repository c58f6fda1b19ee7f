package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/bank"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bank.json>",
	Short: "Check a question bank file against the schema and normalizer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		if err := bank.ValidateDocument(data); err != nil {
			return fmt.Errorf("schema validation: %w", err)
		}

		b, err := bank.Load("validate", data)
		if err != nil {
			var verr *bank.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("question %s: %s", verr.QuestionID, verr.Reason)
			}
			return err
		}

		fmt.Printf("OK: %d subjects, %d questions\n", len(b.Subjects()), b.QuestionCount())
		return nil
	},
}
