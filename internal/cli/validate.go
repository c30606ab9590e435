package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashdeck/flashdeck/internal/csvimport"
)

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Check a CSV file against the import schema",
		Long: `Validate a CSV file without touching the database.

Reports the detected headers, the data row count, and any problems that
would block an import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := csvimport.NewValidator().Validate(args[0])

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			if result.Valid {
				fmt.Printf("OK: %d data rows, columns: %v\n", result.RowCount, result.Headers)
				return nil
			}

			for _, msg := range result.Errors {
				fmt.Fprintln(os.Stderr, msg)
			}
			return fmt.Errorf("validation failed")
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
