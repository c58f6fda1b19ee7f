package cmd

import (
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Open the question browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
