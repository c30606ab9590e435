package csvimport

import (
	"fmt"
	"time"
)

// Severity classifies a log entry in an import report.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEntry is one line of the ordered import log.
type LogEntry struct {
	Time     time.Time `json:"timestamp"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// maxDisplayedErrors caps how many row errors DisplayMessages returns
// verbatim; the remainder is summarized as a count.
const maxDisplayedErrors = 10

// Report aggregates the outcome of one processing run. It is returned to the
// caller and never persisted.
//
// TotalRows counts every physical data row read, including rows later
// skipped for being entirely blank; that keeps the count auditable against
// the raw file. Created, Skipped, and Errors partition the non-blank rows.
type Report struct {
	TotalRows     int        `json:"total_rows"`
	Created       int        `json:"created"`
	Skipped       int        `json:"skipped"`
	Errors        int        `json:"errors"`
	ErrorMessages []string   `json:"error_messages"`
	Log           []LogEntry `json:"log"`
}

// Logf appends a timestamped entry to the report log.
func (r *Report) Logf(sev Severity, format string, args ...any) {
	r.Log = append(r.Log, LogEntry{
		Time:     time.Now(),
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

// rowError records a row-level defect: counted, messaged, never fatal.
func (r *Report) rowError(format string, args ...any) {
	r.Errors++
	r.ErrorMessages = append(r.ErrorMessages, fmt.Sprintf(format, args...))
}

// DisplayMessages returns the error messages capped for display: the first
// maxDisplayedErrors verbatim, the rest summarized as a count. The Errors
// counter always reflects the full total.
func (r *Report) DisplayMessages() []string {
	if len(r.ErrorMessages) <= maxDisplayedErrors {
		return r.ErrorMessages
	}

	out := make([]string, 0, maxDisplayedErrors+1)
	out = append(out, r.ErrorMessages[:maxDisplayedErrors]...)
	out = append(out, fmt.Sprintf("...and %d more errors.", len(r.ErrorMessages)-maxDisplayedErrors))
	return out
}
