package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionExpired means no staged upload exists for the owner, either
	// because it was never created, already consumed, or timed out.
	ErrSessionExpired = errors.New("import session expired")

	// ErrFileTooLarge means the upload exceeded the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ValidationFailedError carries the operator-facing messages from a failed
// pre-import validation. The staged file is already discarded when this is
// returned.
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}
