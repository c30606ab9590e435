package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashdeck/flashdeck/internal/csvimport"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var setID int64
	var batchSize int

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV file into a flashcard set",
		Long: `Import the cards in a CSV file into an existing flashcard set.

The file must have question and answer columns. Cards whose question
already exists in the set are skipped. Example:

  flashdeckctl import cards.csv --set 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if setID <= 0 {
				return fmt.Errorf("a positive --set ID is required")
			}

			st, release, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			report, err := csvimport.NewProcessor(st, batchSize).
				Process(cmd.Context(), args[0], setID)

			if report != nil {
				for _, entry := range report.Log {
					fmt.Printf("[%s] %s\n", entry.Severity, entry.Message)
				}
				for _, msg := range report.DisplayMessages() {
					fmt.Fprintln(os.Stderr, msg)
				}
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&setID, "set", 0, "target flashcard set ID (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", csvimport.DefaultBatchSize,
		"cards accumulated before each save")
	return cmd
}
