package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for file-level and set-level failures. Row-level defects
// are never returned as errors; they accumulate in the Report.
var (
	// ErrMissingFile means the path does not exist.
	ErrMissingFile = errors.New("file not found")

	// ErrInvalidExtension means the file is not a .csv.
	ErrInvalidExtension = errors.New("invalid file type")

	// ErrEmptyFile means the file has no header row.
	ErrEmptyFile = errors.New("csv file is empty")

	// ErrUnreadableFile means the file exists but could not be opened or read.
	ErrUnreadableFile = errors.New("unable to read file")

	// ErrInvalidTargetSet means the target card set does not exist.
	ErrInvalidTargetSet = errors.New("invalid flashcard set")
)

// MissingColumnsError reports required header columns absent after
// normalization, along with the columns that were actually found.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %s. Found columns: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// userMessage translates a pipeline error into the operator-facing string
// surfaced by validation results and import reports.
func userMessage(err error) string {
	var mc *MissingColumnsError
	switch {
	case errors.As(err, &mc):
		return mc.Error()
	case errors.Is(err, ErrMissingFile):
		return "File not found."
	case errors.Is(err, ErrInvalidExtension):
		return "Invalid file type. Only CSV files are allowed."
	case errors.Is(err, ErrEmptyFile):
		return "CSV file is empty."
	case errors.Is(err, ErrUnreadableFile):
		return "Unable to read file."
	case errors.Is(err, ErrInvalidTargetSet):
		return "Invalid flashcard set."
	default:
		return err.Error()
	}
}
