package csvimport

import "strings"

// delimiters are the candidate field separators, in tie-break order.
var delimiters = []rune{',', ';', '\t'}

// DetectDelimiter inspects a single sample line (normally the header) and
// returns the candidate separator occurring most often. Ties are broken by
// declaration order: comma, then semicolon, then tab. An empty line, or one
// containing no candidate at all, defaults to comma.
//
// Sniffing one line is O(1) and good enough: a wrong guess only makes rows
// fail the required-column check downstream, it never corrupts data.
func DetectDelimiter(line string) rune {
	best := ','
	bestCount := 0

	for _, d := range delimiters {
		if n := strings.Count(line, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}

	return best
}
