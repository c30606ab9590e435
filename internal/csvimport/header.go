package csvimport

import "strings"

// RequiredColumns are the header tokens every import file must carry,
// case-insensitively, after normalization. Additional columns are tolerated
// and ignored.
var RequiredColumns = []string{"question", "answer"}

// headerCutset mirrors the characters trimmed from raw header cells:
// whitespace, NUL, vertical tab, and surrounding quotes.
const headerCutset = " \t\n\r\x00\v\"'"

// NormalizeHeaders canonicalizes raw header fields: a leading byte-order-mark
// is stripped, surrounding whitespace and quote characters are trimmed, and
// the result is lowercased. Order is preserved because column mapping is
// positional. Duplicate names are not collapsed; lookups are first-match-wins
// (see columnIndex).
func NormalizeHeaders(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		f = strings.TrimPrefix(f, "\uFEFF")
		f = strings.Trim(f, headerCutset)
		out[i] = strings.ToLower(f)
	}
	return out
}

// columnIndex returns the position of name in headers, or -1. When a
// normalized name appears more than once the first occurrence wins; that is
// a policy choice, and irrelevant in the expected case of unique names.
func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// missingColumns returns the members of required absent from headers.
func missingColumns(headers []string, required []string) []string {
	var missing []string
	for _, col := range required {
		if columnIndex(headers, col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}
